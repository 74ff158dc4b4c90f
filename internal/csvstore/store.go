// Package csvstore persists users, expenses, and backlog tasks as CSV
// tables under one data directory. The files are the source of truth:
// every read reloads its table in full and every mutation rewrites the
// whole file atomically, so concurrent processes race last-write-wins at
// file granularity.
package csvstore

import (
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/cofferhq/coffer/pkg/types"
)

// Store provides access to the CSV tables. Operations within one process
// are serialized by an RW mutex; queries share the lock, mutations hold it
// exclusively.
type Store struct {
	mu      sync.RWMutex
	open    bool
	dataDir string
	log     *zap.SugaredLogger
}

// Open validates the configuration, creates the data directory if needed,
// and makes sure every table file exists with its declared header row.
// Pre-existing files are left untouched; drift is surfaced at load time.
func Open(config types.Config, log *zap.SugaredLogger) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	if err := os.MkdirAll(config.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	s := &Store{
		open:    true,
		dataDir: config.DataDir,
		log:     log,
	}
	for _, schema := range tableSchemas {
		if err := s.ensureTable(schema); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Close marks the store closed. Idempotent; after Close every operation
// returns ErrStoreClosed. There is nothing to flush: mutations persist
// before their call returns.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open = false
	return nil
}

// DataDir returns the directory holding the table files.
func (s *Store) DataDir() string {
	return s.dataDir
}
