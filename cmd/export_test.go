package cmd

import (
	"io"
	"path/filepath"
	"testing"

	"laravel-migration/internal/engine"
	"laravel-migration/internal/laravel"
)

func migration(table string) *laravel.MigrationUnit {
	return &laravel.MigrationUnit{
		Table: table,
		Up:    []string{"$table->increments('id');"},
		Down:  "Schema::dropIfExists('" + table + "');",
	}
}

func artifacts(t *testing.T, dir, table string) []string {
	t.Helper()
	var found []string
	for _, pattern := range []string{
		filepath.Join(dir, "*_create_"+table+"_table.php"),
		filepath.Join(dir, "*", "*_create_"+table+"_table.php"),
	} {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			t.Fatalf("glob: %v", err)
		}
		found = append(found, matches...)
	}
	return found
}

func TestSaveSession_LayoutStableAcrossRuns(t *testing.T) {
	dir := t.TempDir()

	first := &engine.Session{Results: []*engine.SchemaResult{
		{Schema: "app", Units: []*laravel.MigrationUnit{migration("users")}},
		{Schema: "audit", Units: []*laravel.MigrationUnit{migration("logs")}},
	}}
	if errs := saveSession(io.Discard, first, dir, true); len(errs) != 0 {
		t.Fatalf("Unexpected errors: %v", errs)
	}

	// audit now fails at its first table and renders nothing
	second := &engine.Session{Results: []*engine.SchemaResult{
		{Schema: "app", Units: []*laravel.MigrationUnit{migration("users")}},
		{Schema: "audit"},
	}}
	if errs := saveSession(io.Discard, second, dir, true); len(errs) != 0 {
		t.Fatalf("Unexpected errors: %v", errs)
	}

	users := artifacts(t, dir, "users")
	if len(users) != 1 {
		t.Fatalf("Expected users to be overwritten in place, got %v", users)
	}
	if got := filepath.Dir(users[0]); got != filepath.Join(dir, "app") {
		t.Errorf("Expected users under %s, got %s", filepath.Join(dir, "app"), got)
	}
	if logs := artifacts(t, dir, "logs"); len(logs) != 1 {
		t.Errorf("Expected the earlier logs migration to stay, got %v", logs)
	}
}

func TestSaveSession_SingleSchemaUsesDir(t *testing.T) {
	dir := t.TempDir()

	sess := &engine.Session{Results: []*engine.SchemaResult{
		{Schema: "app", Units: []*laravel.MigrationUnit{migration("users")}},
	}}
	for run := 0; run < 2; run++ {
		if errs := saveSession(io.Discard, sess, dir, false); len(errs) != 0 {
			t.Fatalf("run %d: unexpected errors: %v", run, errs)
		}
	}

	users := artifacts(t, dir, "users")
	if len(users) != 1 || filepath.Dir(users[0]) != dir {
		t.Errorf("Expected a single users migration directly in %s, got %v", dir, users)
	}
}
