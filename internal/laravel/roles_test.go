package laravel_test

import (
	"reflect"
	"testing"

	"laravel-migration/internal/laravel"
	"laravel-migration/internal/schema"
)

func columns(specs ...schema.Column) []*schema.Column {
	cols := make([]*schema.Column, len(specs))
	for i := range specs {
		c := specs[i]
		cols[i] = &c
	}
	return cols
}

func TestDetectRoles_Timestamps(t *testing.T) {
	cases := []struct {
		name         string
		cols         []*schema.Column
		wantMode     laravel.TimestampMode
		wantMismatch bool
	}{
		{
			name:     "none",
			cols:     columns(schema.Column{Name: "id", DataType: "INT"}),
			wantMode: laravel.TimestampsNone,
		},
		{
			name:     "only created_at",
			cols:     columns(schema.Column{Name: "created_at", DataType: "TIMESTAMP"}),
			wantMode: laravel.TimestampsNone,
		},
		{
			name: "standard",
			cols: columns(
				schema.Column{Name: "created_at", DataType: "TIMESTAMP"},
				schema.Column{Name: "updated_at", DataType: "TIMESTAMP"},
			),
			wantMode: laravel.TimestampsStandard,
		},
		{
			name: "nullable",
			cols: columns(
				schema.Column{Name: "created_at", DataType: "TIMESTAMP", IsNullable: true},
				schema.Column{Name: "updated_at", DataType: "TIMESTAMP", IsNullable: true},
			),
			wantMode: laravel.TimestampsNullable,
		},
		{
			name: "mismatch",
			cols: columns(
				schema.Column{Name: "created_at", DataType: "TIMESTAMP", IsNullable: true},
				schema.Column{Name: "updated_at", DataType: "TIMESTAMP"},
			),
			wantMode:     laravel.TimestampsStandard,
			wantMismatch: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := laravel.DetectRoles(tc.cols)
			if got := r.Timestamps(); got != tc.wantMode {
				t.Errorf("Expected mode %d, got %d", tc.wantMode, got)
			}
			if got := r.TimestampMismatch(); got != tc.wantMismatch {
				t.Errorf("Expected mismatch %v, got %v", tc.wantMismatch, got)
			}
		})
	}
}

func TestDetectRoles_SoftDeletes(t *testing.T) {
	r := laravel.DetectRoles(columns(schema.Column{Name: "deleted_at", DataType: "TIMESTAMP", IsNullable: true}))
	if !r.SoftDeletes() {
		t.Error("Expected soft deletes")
	}
	if r := laravel.DetectRoles(columns(schema.Column{Name: "removed_at", DataType: "TIMESTAMP"})); r.SoftDeletes() {
		t.Error("Unexpected soft deletes")
	}
}

func TestDetectRoles_Morphs(t *testing.T) {
	cols := columns(
		schema.Column{Name: "id", DataType: "INT"},
		schema.Column{Name: "taggable_type", DataType: "VARCHAR"},
		schema.Column{Name: "user_id", DataType: "INT"},
		schema.Column{Name: "taggable_id", DataType: "INT"},
		schema.Column{Name: "owner_id", DataType: "INT"},
		schema.Column{Name: "owner_type", DataType: "VARCHAR"},
		schema.Column{Name: "_type", DataType: "VARCHAR"},
	)
	r := laravel.DetectRoles(cols)

	want := []string{"taggable", "owner"}
	if !reflect.DeepEqual(r.Morphs, want) {
		t.Errorf("Expected morphs %v, got %v", want, r.Morphs)
	}
	if r.IsMorph("user") {
		t.Error("user_id without user_type must not be a morph")
	}

	roles := map[string]laravel.Role{
		"taggable_id":   laravel.RoleMorphID,
		"taggable_type": laravel.RoleMorphType,
		"user_id":       laravel.RolePlain,
		"id":            laravel.RolePlain,
		"_type":         laravel.RolePlain,
	}
	for _, col := range cols {
		want, ok := roles[col.Name]
		if !ok {
			continue
		}
		if got := r.RoleOf(col); got != want {
			t.Errorf("%s: expected %s, got %s", col.Name, want, got)
		}
	}
}

func TestRoleOf_LoneTimestampStaysPlain(t *testing.T) {
	cols := columns(schema.Column{Name: "updated_at", DataType: "TIMESTAMP"})
	r := laravel.DetectRoles(cols)
	if got := r.RoleOf(cols[0]); got != laravel.RolePlain {
		t.Errorf("Expected plain, got %s", got)
	}
}
