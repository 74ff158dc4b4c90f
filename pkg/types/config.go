package types

import "errors"

// Config holds storage parameters for opening a Store.
type Config struct {
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// Config validation errors.
var (
	ErrDataDirEmpty = errors.New("data directory must not be empty")
)

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrDataDirEmpty
	}
	return nil
}
