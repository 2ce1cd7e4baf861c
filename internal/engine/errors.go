package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSchemaData is fatal: there is nothing to export at all.
	ErrMissingSchemaData = errors.New("no schema found in the model")
	// ErrEmptySchema is recorded per schema, which is then skipped.
	ErrEmptySchema = errors.New("schema has no tables")
)

// TableRenderError aborts the remaining tables of one schema.
type TableRenderError struct {
	Schema string
	Table  string
	Err    error
}

func (e *TableRenderError) Error() string {
	return fmt.Sprintf("error exporting schema '%s' at table '%s': %v", e.Schema, e.Table, e.Err)
}

func (e *TableRenderError) Unwrap() error {
	return e.Err
}
