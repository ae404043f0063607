// Package csvstore is the flat-file row store behind every repository.
// A table is one CSV file under the data directory; the first line is the
// header. The only contract is ReadAll/WriteAll of a whole table: each call
// is atomic (write to a temp file, then rename), but nothing is atomic
// across calls.
package csvstore

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Row is one record keyed by column name. Every value is text; numeric
// fields are parsed by the repositories on read.
type Row map[string]string

type Store struct {
	dir string
	mu  sync.Mutex
}

func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(table string) string {
	return filepath.Join(s.dir, table+".csv")
}

// ReadAll returns every row of the table. A table whose file does not
// exist yet is an empty table, not an error.
func (s *Store) ReadAll(table string) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path(table))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("csvstore: open %s: %w", table, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("csvstore: read %s header: %w", table, err)
	}

	var rows []Row
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csvstore: read %s: %w", table, err)
		}
		row := make(Row, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteAll replaces the whole table. Column order in the file follows the
// columns argument; values missing from a row are written empty.
func (s *Store) WriteAll(table string, columns []string, rows []Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("csvstore: mkdir %s: %w", s.dir, err)
	}

	tmp, err := os.CreateTemp(s.dir, table+"-*.tmp")
	if err != nil {
		return fmt.Errorf("csvstore: temp for %s: %w", table, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(columns); err != nil {
		tmp.Close()
		return fmt.Errorf("csvstore: write %s header: %w", table, err)
	}
	rec := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			rec[i] = row[col]
		}
		if err := w.Write(rec); err != nil {
			tmp.Close()
			return fmt.Errorf("csvstore: write %s: %w", table, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("csvstore: flush %s: %w", table, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("csvstore: close %s: %w", table, err)
	}
	if err := os.Rename(tmp.Name(), s.path(table)); err != nil {
		return fmt.Errorf("csvstore: rename %s: %w", table, err)
	}
	return nil
}
