// CSV read/write helpers with atomic persistence.
package csvstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
)

func (s *Store) tablePath(schema tableSchema) string {
	return filepath.Join(s.dataDir, schema.file)
}

// ensureTable creates the table file with its header row when missing.
// An existing file is never rewritten here, whatever its content.
func (s *Store) ensureTable(schema tableSchema) error {
	path := s.tablePath(schema)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	return writeTable(path, schema, nil)
}

// readTable loads a CSV table and returns its data rows. A missing or
// empty file is an empty table. The header row must match the declared
// schema exactly; rows with the wrong field count are skipped with a
// logged warning rather than failing the whole load.
func (s *Store) readTable(schema tableSchema) ([][]string, error) {
	path := s.tablePath(schema)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s header: %w", schema.file, err)
	}
	if !slices.Equal(header, schema.header) {
		return nil, fmt.Errorf("%s: header %v does not match declared schema %v", schema.file, header, schema.header)
	}

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.log.Warnw("skipping unreadable row", "table", schema.file, "error", err)
			continue
		}
		if len(row) != len(schema.header) {
			s.log.Warnw("skipping malformed row", "table", schema.file, "fields", len(row))
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// writeTable atomically replaces a table file using the temp-file, fsync,
// rename pattern. The header row always comes first.
func writeTable(path string, schema tableSchema, rows [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".csv-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	if err := w.Write(schema.header); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing rows: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
