package engine

import (
	"errors"
	"strings"

	"laravel-migration/internal/laravel"
	"laravel-migration/internal/schema"
)

type Status string

const (
	StatusOK      Status = "OK"
	StatusCycle   Status = "UNORDERED"
	StatusSkipped Status = "SKIPPED"
	StatusFailed  Status = "FAILED"
)

// Advisory is a non-blocking note about one table.
type Advisory struct {
	Table   string
	Message string
}

// SchemaResult is everything one schema pass produced.
type SchemaResult struct {
	Schema     string
	Order      []string // emission order that was used
	Units      []*laravel.MigrationUnit
	Cycle      *schema.CycleError
	Warnings   []IndexSizeWarning
	Advisories []Advisory
	Err        error // wraps ErrEmptySchema, or a *TableRenderError
}

func (r *SchemaResult) Status() Status {
	switch {
	case errors.Is(r.Err, ErrEmptySchema):
		return StatusSkipped
	case r.Err != nil:
		return StatusFailed
	case r.Cycle != nil:
		return StatusCycle
	}
	return StatusOK
}

// Unit returns the migration of table, or nil.
func (r *SchemaResult) Unit(table string) *laravel.MigrationUnit {
	for _, u := range r.Units {
		if u.Table == table {
			return u
		}
	}
	return nil
}

// Text joins every unit of the schema with a blank line, in emission order.
// Each unit already ends with a newline.
func (r *SchemaResult) Text() string {
	texts := make([]string, len(r.Units))
	for i, u := range r.Units {
		texts[i] = u.Text()
	}
	return strings.Join(texts, "\n")
}

// Session holds the results of one export invocation until they are
// reviewed and saved.
type Session struct {
	Results []*SchemaResult
}

func (s *Session) add(r *SchemaResult) {
	s.Results = append(s.Results, r)
}

// Result returns the result of the named schema, or nil.
func (s *Session) Result(name string) *SchemaResult {
	for _, r := range s.Results {
		if r.Schema == name {
			return r
		}
	}
	return nil
}

// Review maps every exported schema to its concatenated migration text.
// Skipped schemas are left out.
func (s *Session) Review() map[string]string {
	review := make(map[string]string)
	for _, r := range s.Results {
		if r.Status() == StatusSkipped {
			continue
		}
		review[r.Schema] = r.Text()
	}
	return review
}

// Warnings collects the index size warnings of every schema.
func (s *Session) Warnings() []IndexSizeWarning {
	var all []IndexSizeWarning
	for _, r := range s.Results {
		all = append(all, r.Warnings...)
	}
	return all
}

// Failed returns the schemas that were skipped or aborted.
func (s *Session) Failed() []*SchemaResult {
	var failed []*SchemaResult
	for _, r := range s.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}
	return failed
}
