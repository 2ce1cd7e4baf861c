package engine

import (
	"fmt"

	"laravel-migration/internal/schema"
)

// MySQL index prefix limits in bytes: COMPACT/REDUNDANT rows and
// DYNAMIC/COMPRESSED rows with large prefixes.
const (
	IndexPrefixLimit      = 767
	LargeIndexPrefixLimit = 3072

	// DefaultCharsetBytes is the width of a utf8mb4 character.
	DefaultCharsetBytes = 4
)

// IndexSizeWarning is an advisory about a VARCHAR too wide for a UNIQUE
// index. It never blocks the export.
type IndexSizeWarning struct {
	Schema string
	Table  string
	Index  string
	Column string
	Length int
	Bytes  int
	Limit  int
}

func (w IndexSizeWarning) String() string {
	return fmt.Sprintf("Table `%s`, column `%s` (VARCHAR(%d)) exceeds the maximum allowed size for UNIQUE indexes (%d bytes).",
		w.Table, w.Column, w.Length, w.Limit)
}

// ValidateIndexSizes checks every VARCHAR member of every UNIQUE index,
// assuming bytesPerChar bytes per character (DefaultCharsetBytes when <= 0).
func ValidateIndexSizes(s *schema.Schema, bytesPerChar int) []IndexSizeWarning {
	if bytesPerChar <= 0 {
		bytesPerChar = DefaultCharsetBytes
	}

	var warnings []IndexSizeWarning
	for _, t := range s.Tables {
		for _, idx := range t.Indexes {
			if idx.Kind != schema.IndexUnique {
				continue
			}
			for _, name := range idx.Columns {
				col := t.Column(name)
				if col == nil || col.DataType != "VARCHAR" {
					continue
				}
				total := col.Length * bytesPerChar
				if total <= IndexPrefixLimit {
					continue
				}
				limit := IndexPrefixLimit
				if total > LargeIndexPrefixLimit {
					limit = LargeIndexPrefixLimit
				}
				warnings = append(warnings, IndexSizeWarning{
					Schema: s.Name,
					Table:  t.Name,
					Index:  idx.Name,
					Column: col.Name,
					Length: col.Length,
					Bytes:  total,
					Limit:  limit,
				})
			}
		}
	}
	return warnings
}
