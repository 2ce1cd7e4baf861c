package laravel

import (
	"errors"
	"fmt"
	"strings"

	"laravel-migration/internal/schema"
)

// DefaultEngine is the storage engine Laravel assumes; other engines get an
// explicit override statement.
const DefaultEngine = "InnoDB"

var (
	ErrUnknownColumn   = errors.New("unknown column")
	ErrMissingRefTable = errors.New("foreign key without referenced table")
)

type RenderOptions struct {
	DefaultEngine string
}

// renderContext is the per-table working state of one render.
type renderContext struct {
	table   *schema.Table
	roles   *Roles
	primary *schema.Column // sole column of a single-column primary key
}

// emitRule decides the statement of one column. emit returns "" to skip the
// column.
type emitRule struct {
	match func(rc *renderContext, col *schema.Column) bool
	emit  func(rc *renderContext, col *schema.Column) string
}

func skipColumn(*renderContext, *schema.Column) string { return "" }

// emitRules is evaluated in order, first match wins.
var emitRules = []emitRule{
	{
		// collapsed into timestamps()/nullableTimestamps()
		match: func(rc *renderContext, col *schema.Column) bool {
			role := rc.roles.RoleOf(col)
			return role == RoleCreatedAt || role == RoleUpdatedAt
		},
		emit: skipColumn,
	},
	{
		// collapsed into softDeletes()
		match: func(rc *renderContext, col *schema.Column) bool {
			return rc.roles.RoleOf(col) == RoleSoftDelete
		},
		emit: skipColumn,
	},
	{
		match: func(rc *renderContext, col *schema.Column) bool {
			return rc.roles.RoleOf(col) == RoleMorphType
		},
		emit: skipColumn,
	},
	{
		match: func(rc *renderContext, col *schema.Column) bool {
			return rc.roles.RoleOf(col) == RoleMorphID
		},
		emit: emitMorphs,
	},
	{
		match: func(*renderContext, *schema.Column) bool { return true },
		emit:  emitColumn,
	},
}

// RenderTable renders one table into a migration unit.
func RenderTable(t *schema.Table, opts RenderOptions) (*MigrationUnit, error) {
	rc := &renderContext{
		table: t,
		roles: DetectRoles(t.Columns),
	}
	if pk := t.PrimaryIndex(); pk != nil && len(pk.Columns) == 1 {
		rc.primary = t.Column(pk.Columns[0])
	}

	var up []string

	defaultEngine := opts.DefaultEngine
	if defaultEngine == "" {
		defaultEngine = DefaultEngine
	}
	if t.Engine != "" && !strings.EqualFold(t.Engine, defaultEngine) {
		up = append(up, fmt.Sprintf("$table->engine = '%s';", t.Engine))
	}

	for _, col := range t.Columns {
		for _, rule := range emitRules {
			if !rule.match(rc, col) {
				continue
			}
			if stmt := rule.emit(rc, col); stmt != "" {
				up = append(up, stmt+";")
			}
			break
		}
	}

	switch rc.roles.Timestamps() {
	case TimestampsStandard:
		up = append(up, "$table->timestamps();")
	case TimestampsNullable:
		up = append(up, "$table->nullableTimestamps();")
	}
	if rc.roles.SoftDeletes() {
		up = append(up, "$table->softDeletes();")
	}

	for _, idx := range t.Indexes {
		stmt, err := indexStatement(t, idx)
		if err != nil {
			return nil, err
		}
		if stmt != "" {
			up = append(up, stmt)
		}
	}

	for _, fk := range t.ForeignKeys {
		stmt, err := foreignKeyStatement(t, fk)
		if err != nil {
			return nil, err
		}
		up = append(up, stmt)
	}

	return &MigrationUnit{
		Table:             t.Name,
		Up:                up,
		Down:              fmt.Sprintf("Schema::dropIfExists('%s');", t.Name),
		TimestampMismatch: rc.roles.TimestampMismatch(),
	}, nil
}

func emitColumn(rc *renderContext, col *schema.Column) string {
	c := Classify(col, col == rc.primary)

	var b strings.Builder
	if c.Params != "" {
		fmt.Fprintf(&b, "$table->%s('%s', %s)", c.Method, col.Name, c.Params)
	} else {
		fmt.Fprintf(&b, "$table->%s('%s')", c.Method, col.Name)
	}
	if col.IsNullable {
		b.WriteString("->nullable()")
	}
	writeModifiers(&b, rc, col, c.Tag)
	return b.String()
}

// emitMorphs replaces the _id half of a pair with morphs(); the pair is
// never nullable itself, nullableMorphs() carries that instead.
func emitMorphs(rc *renderContext, col *schema.Column) string {
	tag := "MORPHS"
	if col.IsNullable {
		tag = "NULLABLE_MORPHS"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "$table->%s('%s')", Method(tag), morphBase(col.Name, morphIDSuffix))
	writeModifiers(&b, rc, col, tag)
	return b.String()
}

func writeModifiers(b *strings.Builder, rc *renderContext, col *schema.Column, tag string) {
	if soleIndexMember(rc.table, schema.IndexPrimary, col.Name) {
		b.WriteString("->primary()")
	}
	if soleIndexMember(rc.table, schema.IndexUnique, col.Name) {
		b.WriteString("->unique()")
	}
	if col.Default != "" {
		switch {
		case temporalTags[tag] && strings.EqualFold(col.Default, "CURRENT_TIMESTAMP"):
			b.WriteString("->useCurrent()")
		case tag == "BOOLEAN" || tag == "BOOL":
			if isTrue(col.Default) {
				b.WriteString("->default(TRUE)")
			} else {
				b.WriteString("->default(FALSE)")
			}
		default:
			fmt.Fprintf(b, "->default(%s)", col.Default)
		}
	}
	if col.Comment != "" {
		fmt.Fprintf(b, "->comment('%s')", escapePHP(col.Comment))
	}
}

func isTrue(def string) bool {
	d := strings.ToLower(strings.Trim(strings.TrimSpace(def), "'"))
	return d == "1" || d == "true"
}

// soleIndexMember reports whether some single-column index of kind covers
// exactly column.
func soleIndexMember(t *schema.Table, kind schema.IndexKind, column string) bool {
	for _, idx := range t.Indexes {
		if idx.Kind == kind && len(idx.Columns) == 1 && idx.Columns[0] == column {
			return true
		}
	}
	return false
}

func indexStatement(t *schema.Table, idx *schema.Index) (string, error) {
	quoted := make([]string, len(idx.Columns))
	for i, name := range idx.Columns {
		if t.Column(name) == nil {
			return "", fmt.Errorf("index %q on table %q: %w %q", idx.Name, t.Name, ErrUnknownColumn, name)
		}
		quoted[i] = "'" + name + "'"
	}
	list := strings.Join(quoted, ", ")

	switch idx.Kind {
	case schema.IndexPrimary:
		if len(idx.Columns) > 1 {
			return fmt.Sprintf("$table->primary([%s]);", list), nil
		}
	case schema.IndexUnique:
		if len(idx.Columns) > 1 {
			return fmt.Sprintf("$table->unique([%s]);", list), nil
		}
	default:
		return fmt.Sprintf("$table->index([%s]);", list), nil
	}
	// single-column keys are rendered as column modifiers
	return "", nil
}

func foreignKeyStatement(t *schema.Table, fk *schema.ForeignKey) (string, error) {
	if t.Column(fk.Column) == nil {
		return "", fmt.Errorf("foreign key %q on table %q: %w %q", fk.Name, t.Name, ErrUnknownColumn, fk.Column)
	}
	if fk.RefTable == "" {
		return "", fmt.Errorf("foreign key %q on table %q: %w", fk.Name, t.Name, ErrMissingRefTable)
	}
	return fmt.Sprintf("$table->foreign('%s')->references('%s')->on('%s')->onDelete('%s')->onUpdate('%s');",
		fk.Column, fk.RefColumn, fk.RefTable, ruleText(fk.DeleteRule()), ruleText(fk.UpdateRule())), nil
}

// ruleText spells a referential action the way Laravel expects it.
func ruleText(r schema.Rule) string {
	return strings.ToLower(strings.ReplaceAll(string(r), "_", " "))
}

func escapePHP(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
