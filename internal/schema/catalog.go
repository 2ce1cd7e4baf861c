package schema

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog is wrapped by every structural problem Validate finds.
var ErrInvalidCatalog = errors.New("invalid catalog")

// LoadCatalog reads a catalog snapshot from the YAML file at path.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes, normalizes and validates a YAML catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	cat := &Catalog{}
	if err := yaml.Unmarshal(data, cat); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	cat.normalize()
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// normalize upper-cases types and maps rule and index kind spellings onto
// their constants, so hand-written catalogs may use "varchar" or "set null".
func (c *Catalog) normalize() {
	for _, s := range c.Schemas {
		if s == nil {
			continue
		}
		for _, t := range s.Tables {
			if t == nil {
				continue
			}
			for _, col := range t.Columns {
				if col == nil {
					continue
				}
				col.DataType = strings.ToUpper(strings.TrimSpace(col.DataType))
			}
			for _, idx := range t.Indexes {
				if idx == nil {
					continue
				}
				idx.Kind = ParseIndexKind(string(idx.Kind))
			}
			for _, fk := range t.ForeignKeys {
				if fk == nil {
					continue
				}
				fk.OnDelete = fk.DeleteRule()
				fk.OnUpdate = fk.UpdateRule()
			}
		}
	}
}

// Validate checks the uniqueness of table names per schema and column names
// per table, and that every index lists at least one column.
func (c *Catalog) Validate() error {
	for _, s := range c.Schemas {
		if s == nil {
			return fmt.Errorf("%w: empty schema entry", ErrInvalidCatalog)
		}
		tables := make(map[string]bool, len(s.Tables))
		for _, t := range s.Tables {
			if t == nil || t.Name == "" {
				return fmt.Errorf("%w: schema %q has a table without a name", ErrInvalidCatalog, s.Name)
			}
			if tables[t.Name] {
				return fmt.Errorf("%w: duplicate table %q in schema %q", ErrInvalidCatalog, t.Name, s.Name)
			}
			tables[t.Name] = true

			columns := make(map[string]bool, len(t.Columns))
			for _, col := range t.Columns {
				if col == nil || col.Name == "" {
					return fmt.Errorf("%w: table %q has a column without a name", ErrInvalidCatalog, t.Name)
				}
				if columns[col.Name] {
					return fmt.Errorf("%w: duplicate column %q in table %q", ErrInvalidCatalog, col.Name, t.Name)
				}
				columns[col.Name] = true
			}
			for _, idx := range t.Indexes {
				if idx == nil || len(idx.Columns) == 0 {
					return fmt.Errorf("%w: table %q has an index without columns", ErrInvalidCatalog, t.Name)
				}
			}
			for _, fk := range t.ForeignKeys {
				if fk == nil || fk.Column == "" {
					return fmt.Errorf("%w: table %q has a foreign key without a column", ErrInvalidCatalog, t.Name)
				}
			}
		}
	}
	return nil
}

// Marshal encodes the catalog as YAML.
func (c *Catalog) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal catalog: %w", err)
	}
	return data, nil
}

// Save writes the catalog to path, creating parent directories.
func (c *Catalog) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create catalog dir: %w", err)
		}
	}
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	return nil
}

// Schema looks a schema up by name.
func (c *Catalog) Schema(name string) *Schema {
	for _, s := range c.Schemas {
		if s.Name == name {
			return s
		}
	}
	return nil
}
