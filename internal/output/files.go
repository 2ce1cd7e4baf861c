package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"laravel-migration/internal/laravel"
)

// PersistenceError is the failure to write one migration file. It never
// stops the remaining files.
type PersistenceError struct {
	Table string
	Path  string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("could not save migration for '%s' to %s: %v", e.Table, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// SaveReport lists what Save did, file by file.
type SaveReport struct {
	Created     []string
	Overwritten []string
	Errors      []*PersistenceError
}

// Err joins the per-file failures, nil when every file was written.
func (r *SaveReport) Err() error {
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

const (
	migrationGlob = "*_table.php"
	dateLayout    = "2006_01_02"
)

// Save writes units into dir in order. A file already matching
// *_create_<table>_table.php is overwritten in place; otherwise a new
// YYYY_MM_DD_NNNNNN_create_<table>_table.php is created, numbered from the
// count of existing *_table.php files.
func Save(dir string, units []*laravel.MigrationUnit, now time.Time) (*SaveReport, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create migrations dir: %w", err)
	}

	existing, err := filepath.Glob(filepath.Join(escapeGlob(dir), migrationGlob))
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	counter := len(existing)
	stamp := now.Format(dateLayout)

	report := &SaveReport{}
	for _, u := range units {
		data := []byte(u.Text())

		pattern := filepath.Join(escapeGlob(dir), "*_"+escapeGlob(u.FileSuffix()))
		matches, err := filepath.Glob(pattern)
		if err != nil {
			report.Errors = append(report.Errors, &PersistenceError{Table: u.Table, Path: pattern, Err: err})
			continue
		}

		for _, path := range matches {
			if err := os.WriteFile(path, data, 0o644); err != nil {
				report.Errors = append(report.Errors, &PersistenceError{Table: u.Table, Path: path, Err: err})
				continue
			}
			report.Overwritten = append(report.Overwritten, path)
		}
		if len(matches) > 0 {
			continue
		}

		path := filepath.Join(dir, fmt.Sprintf("%s_%06d_%s", stamp, counter, u.FileSuffix()))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			report.Errors = append(report.Errors, &PersistenceError{Table: u.Table, Path: path, Err: err})
			continue
		}
		report.Created = append(report.Created, path)
		counter++
	}
	return report, nil
}

// escapeGlob makes glob metacharacters in s match literally.
func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[':
			b.WriteByte('[')
			b.WriteRune(r)
			b.WriteByte(']')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
