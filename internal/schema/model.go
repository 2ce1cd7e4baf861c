package schema

import "strings"

// Catalog is the full input model: every schema read from the source.
type Catalog struct {
	Schemas []*Schema `yaml:"schemas"`
}

type Schema struct {
	Name   string   `yaml:"name"`
	Tables []*Table `yaml:"tables"`
}

type Table struct {
	Name        string        `yaml:"name"`
	Engine      string        `yaml:"engine,omitempty"`
	Columns     []*Column     `yaml:"columns"`
	Indexes     []*Index      `yaml:"indexes,omitempty"`
	ForeignKeys []*ForeignKey `yaml:"foreign_keys,omitempty"`
}

type Column struct {
	Name           string   `yaml:"name"`
	DataType       string   `yaml:"type"` // upper-case raw type, e.g. VARCHAR
	Length         int      `yaml:"length,omitempty"`
	IsNullable     bool     `yaml:"nullable,omitempty"`
	Flags          []string `yaml:"flags,omitempty"`
	Default        string   `yaml:"default,omitempty"` // SQL literal, empty means none
	ExplicitParams string   `yaml:"params,omitempty"`  // e.g. ('a','b') for ENUM/SET
	Comment        string   `yaml:"comment,omitempty"`
}

type IndexKind string

const (
	IndexPrimary IndexKind = "PRIMARY"
	IndexUnique  IndexKind = "UNIQUE"
	IndexPlain   IndexKind = "INDEX"
)

type Index struct {
	Name    string    `yaml:"name,omitempty"`
	Kind    IndexKind `yaml:"kind"`
	Columns []string  `yaml:"columns"`
}

// ParseIndexKind maps "PRIMARY KEY", "unique", ... onto IndexKind. Anything
// unrecognized is a plain index.
func ParseIndexKind(s string) IndexKind {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PRIMARY", "PRIMARY KEY", "PK":
		return IndexPrimary
	case "UNIQUE", "UNIQUE KEY":
		return IndexUnique
	default:
		return IndexPlain
	}
}

// Rule is a referential action of a foreign key.
type Rule string

const (
	RuleCascade    Rule = "CASCADE"
	RuleRestrict   Rule = "RESTRICT"
	RuleSetNull    Rule = "SET_NULL"
	RuleNoAction   Rule = "NO_ACTION"
	RuleSetDefault Rule = "SET_DEFAULT"
)

type ForeignKey struct {
	Name      string `yaml:"name,omitempty"`
	Column    string `yaml:"column"`
	RefTable  string `yaml:"ref_table"`
	RefColumn string `yaml:"ref_column"`
	OnDelete  Rule   `yaml:"on_delete,omitempty"`
	OnUpdate  Rule   `yaml:"on_update,omitempty"`
}

// ParseRule maps the spellings used by information_schema and Workbench
// ("SET NULL", "no action", ...) onto Rule. Empty input yields RESTRICT.
func ParseRule(s string) Rule {
	norm := strings.ToUpper(strings.TrimSpace(s))
	norm = strings.ReplaceAll(norm, " ", "_")
	switch Rule(norm) {
	case RuleCascade, RuleSetNull, RuleNoAction, RuleSetDefault:
		return Rule(norm)
	default:
		return RuleRestrict
	}
}

// DeleteRule returns the effective ON DELETE action.
func (fk *ForeignKey) DeleteRule() Rule {
	return ParseRule(string(fk.OnDelete))
}

// UpdateRule returns the effective ON UPDATE action.
func (fk *ForeignKey) UpdateRule() Rule {
	return ParseRule(string(fk.OnUpdate))
}

// HasFlag reports whether the column carries flag, ignoring case.
func (c *Column) HasFlag(flag string) bool {
	for _, f := range c.Flags {
		if strings.EqualFold(f, flag) {
			return true
		}
	}
	return false
}

// Column looks a column up by name.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// PrimaryIndex returns the first PRIMARY index, or nil.
func (t *Table) PrimaryIndex() *Index {
	for _, idx := range t.Indexes {
		if idx.Kind == IndexPrimary {
			return idx
		}
	}
	return nil
}

// Dependencies lists the distinct tables referenced by foreign keys,
// in foreign key order, excluding self references.
func (t *Table) Dependencies() []string {
	seen := make(map[string]bool)
	var deps []string
	for _, fk := range t.ForeignKeys {
		if fk.RefTable == "" || fk.RefTable == t.Name || seen[fk.RefTable] {
			continue
		}
		seen[fk.RefTable] = true
		deps = append(deps, fk.RefTable)
	}
	return deps
}

// Table looks a table up by name.
func (s *Schema) Table(name string) *Table {
	for _, t := range s.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}
