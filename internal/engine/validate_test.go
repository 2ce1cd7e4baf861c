package engine_test

import (
	"testing"

	"laravel-migration/internal/engine"
	"laravel-migration/internal/schema"
)

func uniqueEmail(length int) *schema.Schema {
	return &schema.Schema{
		Name: "app",
		Tables: []*schema.Table{{
			Name: "users",
			Columns: []*schema.Column{
				{Name: "id", DataType: "INT"},
				{Name: "email", DataType: "VARCHAR", Length: length},
			},
			Indexes: []*schema.Index{
				{Name: "PRIMARY", Kind: schema.IndexPrimary, Columns: []string{"id"}},
				{Name: "users_email_unique", Kind: schema.IndexUnique, Columns: []string{"email"}},
			},
		}},
	}
}

func TestValidateIndexSizes(t *testing.T) {
	cases := []struct {
		length    int
		wantCount int
		wantLimit int
	}{
		{length: 100, wantCount: 0},
		{length: 191, wantCount: 0},
		{length: 192, wantCount: 1, wantLimit: engine.IndexPrefixLimit},
		{length: 200, wantCount: 1, wantLimit: engine.IndexPrefixLimit},
		{length: 768, wantCount: 1, wantLimit: engine.IndexPrefixLimit},
		{length: 800, wantCount: 1, wantLimit: engine.LargeIndexPrefixLimit},
	}

	for _, tc := range cases {
		warnings := engine.ValidateIndexSizes(uniqueEmail(tc.length), 0)
		if len(warnings) != tc.wantCount {
			t.Errorf("VARCHAR(%d): expected %d warnings, got %d", tc.length, tc.wantCount, len(warnings))
			continue
		}
		if tc.wantCount == 0 {
			continue
		}
		w := warnings[0]
		if w.Limit != tc.wantLimit || w.Bytes != tc.length*engine.DefaultCharsetBytes {
			t.Errorf("VARCHAR(%d): unexpected warning %+v", tc.length, w)
		}
		if w.Table != "users" || w.Column != "email" || w.Index != "users_email_unique" {
			t.Errorf("VARCHAR(%d): unexpected location %+v", tc.length, w)
		}
	}
}

func TestValidateIndexSizes_CharsetBytes(t *testing.T) {
	// 200 latin1 characters fit
	if warnings := engine.ValidateIndexSizes(uniqueEmail(200), 1); len(warnings) != 0 {
		t.Errorf("Expected no warnings, got %v", warnings)
	}
	// 300 utf8mb3 characters do not
	if warnings := engine.ValidateIndexSizes(uniqueEmail(300), 3); len(warnings) != 1 {
		t.Errorf("Expected 1 warning, got %v", warnings)
	}
}

func TestValidateIndexSizes_IgnoresPlainIndexes(t *testing.T) {
	s := uniqueEmail(500)
	s.Tables[0].Indexes[1].Kind = schema.IndexPlain
	if warnings := engine.ValidateIndexSizes(s, 0); len(warnings) != 0 {
		t.Errorf("Expected no warnings for a plain index, got %v", warnings)
	}
}

func TestIndexSizeWarning_String(t *testing.T) {
	w := engine.ValidateIndexSizes(uniqueEmail(200), 0)[0]
	want := "Table `users`, column `email` (VARCHAR(200)) exceeds the maximum allowed size for UNIQUE indexes (767 bytes)."
	if got := w.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}
