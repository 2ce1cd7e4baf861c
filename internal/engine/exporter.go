package engine

import (
	"errors"
	"fmt"
	"log"

	"laravel-migration/internal/laravel"
	"laravel-migration/internal/schema"
)

type Options struct {
	DefaultEngine string // InnoDB when empty
	CharsetBytes  int    // DefaultCharsetBytes when <= 0
	// OnProgress is called after each rendered table.
	OnProgress func(schemaName, table string)
}

// Export renders every schema of cat. Only a catalog without schemata is an
// error; per-schema problems are recorded on the session.
func Export(cat *schema.Catalog, opts Options) (*Session, error) {
	if cat == nil || len(cat.Schemas) == 0 {
		return nil, ErrMissingSchemaData
	}

	sess := &Session{}
	for _, s := range cat.Schemas {
		sess.add(ExportSchema(s, opts))
	}
	return sess, nil
}

// ExportSchema validates, orders and renders one schema. The first table
// that fails to render stops the schema.
func ExportSchema(s *schema.Schema, opts Options) *SchemaResult {
	res := &SchemaResult{Schema: s.Name}
	if len(s.Tables) == 0 {
		res.Err = fmt.Errorf("schema '%s': %w", s.Name, ErrEmptySchema)
		log.Printf("Skipping schema %s: %v", s.Name, ErrEmptySchema)
		return res
	}

	log.Printf("Processing schema: %s", s.Name)
	res.Warnings = ValidateIndexSizes(s, opts.CharsetBytes)

	ordered, err := schema.OrderTables(s.Tables)
	if err != nil {
		var cycle *schema.CycleError
		if errors.As(err, &cycle) {
			res.Cycle = cycle
		}
		log.Printf("Warning: %v", err)
	}
	res.Order = schema.TableNames(ordered)
	log.Printf("Order of processed tables: %v", res.Order)

	renderOpts := laravel.RenderOptions{DefaultEngine: opts.DefaultEngine}
	for _, t := range ordered {
		log.Printf("Exporting table: %s", t.Name)

		unit, err := laravel.RenderTable(t, renderOpts)
		if err != nil {
			res.Err = &TableRenderError{Schema: s.Name, Table: t.Name, Err: err}
			log.Printf("%v", res.Err)
			return res
		}
		res.Units = append(res.Units, unit)

		if unit.TimestampMismatch {
			res.Advisories = append(res.Advisories, Advisory{
				Table:   t.Name,
				Message: "created_at and updated_at disagree on nullability, rendered as timestamps()",
			})
		}

		if opts.OnProgress != nil {
			opts.OnProgress(s.Name, t.Name)
		}
	}
	return res
}

// CountTables returns the number of tables Export will render.
func CountTables(cat *schema.Catalog) int {
	n := 0
	for _, s := range cat.Schemas {
		n += len(s.Tables)
	}
	return n
}
