package output_test

import (
	"bytes"
	"strings"
	"testing"

	"laravel-migration/internal/engine"
	"laravel-migration/internal/output"
	"laravel-migration/internal/schema"
)

func TestHighlightPHP_NoColor(t *testing.T) {
	output.SetColor(false)

	src := unit("users", "$table->increments('id');").Text()
	if got := output.HighlightPHP(src); got != src {
		t.Errorf("Expected source unchanged, got %q", got)
	}
	if got := output.Header("Title"); got != "Title" {
		t.Errorf("Expected plain header, got %q", got)
	}
}

func TestIndexSizeNotice(t *testing.T) {
	if got := output.IndexSizeNotice(nil); got != "" {
		t.Errorf("Expected empty notice, got %q", got)
	}

	notice := output.IndexSizeNotice([]engine.IndexSizeWarning{
		{Table: "users", Column: "email", Length: 200, Limit: engine.IndexPrefixLimit},
	})
	for _, want := range []string{
		"The following UNIQUE indexes may cause errors in Laravel:",
		"Table `users`, column `email` (VARCHAR(200)) exceeds the maximum allowed size for UNIQUE indexes (767 bytes).",
		"Schema::defaultStringLength(191);",
		"`utf8` instead of `utf8mb4`",
	} {
		if !strings.Contains(notice, want) {
			t.Errorf("Notice lacks %q:\n%s", want, notice)
		}
	}
}

func TestWriteReview(t *testing.T) {
	output.SetColor(false)

	cat := &schema.Catalog{Schemas: []*schema.Schema{
		{Name: "empty"},
		{
			Name: "blog",
			Tables: []*schema.Table{
				{
					Name:        "a",
					Columns:     []*schema.Column{{Name: "b_id", DataType: "INT"}},
					ForeignKeys: []*schema.ForeignKey{{Column: "b_id", RefTable: "b", RefColumn: "id"}},
				},
				{
					Name:        "b",
					Columns:     []*schema.Column{{Name: "a_id", DataType: "INT"}},
					ForeignKeys: []*schema.ForeignKey{{Column: "a_id", RefTable: "a", RefColumn: "id"}},
				},
			},
		},
	}}
	sess, err := engine.Export(cat, engine.Options{})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var buf bytes.Buffer
	output.WriteReview(&buf, sess)
	got := buf.String()

	if strings.Contains(got, "'empty'") {
		t.Error("skipped schema must not be reviewed")
	}
	for _, want := range []string{
		"Review migrations for 'blog' schema:",
		"Schema::create('a', function (Blueprint $table) {",
		"unresolved: a, b",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Review lacks %q:\n%s", want, got)
		}
	}
}
