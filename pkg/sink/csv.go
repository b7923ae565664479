// Package sink writes extraction results to their destinations: CSV
// files or stdout, a Postgres table, and a compressed on-disk cache of
// previous runs.
package sink

import (
	"fmt"
	"os"

	"github.com/dd0wney/gruptree/pkg/gruptree"
)

// WriteCSV serializes the table to the given path. A path of "-" writes
// to stdout.
func WriteCSV(t *gruptree.Table, path string) error {
	if path == "-" {
		return t.WriteCSV(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
