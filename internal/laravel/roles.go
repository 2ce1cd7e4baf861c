package laravel

import (
	"strings"

	"laravel-migration/internal/schema"
)

const (
	CreatedAtColumn = "created_at"
	UpdatedAtColumn = "updated_at"
	DeletedAtColumn = "deleted_at"

	morphIDSuffix   = "_id"
	morphTypeSuffix = "_type"
)

// TimestampMode says how created_at/updated_at collapse into one statement.
type TimestampMode int

const (
	TimestampsNone TimestampMode = iota
	TimestampsStandard
	TimestampsNullable
)

// Roles is the per-table summary of naming conventions. It never removes
// columns; the renderer decides what to skip.
type Roles struct {
	CreatedAt *schema.Column
	UpdatedAt *schema.Column
	DeletedAt *schema.Column

	// Morphs holds the confirmed polymorphic base names, in the order of
	// their _id columns.
	Morphs []string

	idBases   []string
	typeBases map[string]bool
	morphSet  map[string]bool
}

// roleRule is one naming convention: when match accepts a column, apply
// records it on the summary.
type roleRule struct {
	match func(name string) bool
	apply func(r *Roles, col *schema.Column)
}

// roleRules is evaluated in order, first match wins.
var roleRules = []roleRule{
	{
		match: func(name string) bool { return name == CreatedAtColumn },
		apply: func(r *Roles, col *schema.Column) { r.CreatedAt = col },
	},
	{
		match: func(name string) bool { return name == UpdatedAtColumn },
		apply: func(r *Roles, col *schema.Column) { r.UpdatedAt = col },
	},
	{
		match: func(name string) bool { return name == DeletedAtColumn },
		apply: func(r *Roles, col *schema.Column) { r.DeletedAt = col },
	},
	{
		match: func(name string) bool { return morphBase(name, morphIDSuffix) != "" },
		apply: func(r *Roles, col *schema.Column) {
			r.idBases = append(r.idBases, morphBase(col.Name, morphIDSuffix))
		},
	},
	{
		match: func(name string) bool { return morphBase(name, morphTypeSuffix) != "" },
		apply: func(r *Roles, col *schema.Column) {
			r.typeBases[morphBase(col.Name, morphTypeSuffix)] = true
		},
	},
}

func morphBase(name, suffix string) string {
	if len(name) <= len(suffix) || !strings.HasSuffix(name, suffix) {
		return ""
	}
	return strings.TrimSuffix(name, suffix)
}

// DetectRoles scans columns once and intersects the morph candidates.
func DetectRoles(columns []*schema.Column) *Roles {
	r := &Roles{
		typeBases: make(map[string]bool),
		morphSet:  make(map[string]bool),
	}
	for _, col := range columns {
		for _, rule := range roleRules {
			if rule.match(col.Name) {
				rule.apply(r, col)
				break
			}
		}
	}
	for _, base := range r.idBases {
		if r.typeBases[base] && !r.morphSet[base] {
			r.morphSet[base] = true
			r.Morphs = append(r.Morphs, base)
		}
	}
	return r
}

// Timestamps reports whether the created_at/updated_at pair is present and
// which statement replaces it.
func (r *Roles) Timestamps() TimestampMode {
	if r.CreatedAt == nil || r.UpdatedAt == nil {
		return TimestampsNone
	}
	if r.CreatedAt.IsNullable && r.UpdatedAt.IsNullable {
		return TimestampsNullable
	}
	return TimestampsStandard
}

// TimestampMismatch is true when the pair is present but only one of the
// two columns allows null. The pair is still rendered as timestamps().
func (r *Roles) TimestampMismatch() bool {
	return r.Timestamps() == TimestampsStandard && r.CreatedAt.IsNullable != r.UpdatedAt.IsNullable
}

// SoftDeletes reports whether a deleted_at marker exists.
func (r *Roles) SoftDeletes() bool {
	return r.DeletedAt != nil
}

// IsMorph reports whether base is a confirmed polymorphic pair.
func (r *Roles) IsMorph(base string) bool {
	return r.morphSet[base]
}

// RoleOf returns the convention role of col within the table.
func (r *Roles) RoleOf(col *schema.Column) Role {
	switch {
	case col.Name == CreatedAtColumn && r.Timestamps() != TimestampsNone:
		return RoleCreatedAt
	case col.Name == UpdatedAtColumn && r.Timestamps() != TimestampsNone:
		return RoleUpdatedAt
	case col.Name == DeletedAtColumn && r.SoftDeletes():
		return RoleSoftDelete
	case r.IsMorph(morphBase(col.Name, morphIDSuffix)):
		return RoleMorphID
	case r.IsMorph(morphBase(col.Name, morphTypeSuffix)):
		return RoleMorphType
	}
	return RolePlain
}
