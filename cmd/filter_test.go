package cmd

import (
	"strings"
	"testing"

	"laravel-migration/internal/schema"
)

func filterCatalog() *schema.Catalog {
	return &schema.Catalog{Schemas: []*schema.Schema{
		{Name: "app", Tables: []*schema.Table{{Name: "users"}, {Name: "posts"}, {Name: "user_roles"}}},
		{Name: "audit", Tables: []*schema.Table{{Name: "events"}}},
	}}
}

func TestFilterTables(t *testing.T) {
	got, err := filterTables(filterCatalog(), []string{"USERS", "events"})
	if err != nil {
		t.Fatalf("filterTables failed: %v", err)
	}
	if len(got.Schemas) != 2 {
		t.Fatalf("Expected 2 schemas, got %d", len(got.Schemas))
	}
	if names := schema.TableNames(got.Schemas[0].Tables); len(names) != 1 || names[0] != "users" {
		t.Errorf("Expected [users], got %v", names)
	}

	onlyPosts, err := filterTables(filterCatalog(), []string{"posts"})
	if err != nil {
		t.Fatalf("filterTables failed: %v", err)
	}
	if len(onlyPosts.Schemas) != 1 || onlyPosts.Schemas[0].Name != "app" {
		t.Errorf("Schemas without a match must be dropped, got %+v", onlyPosts.Schemas)
	}
}

func TestFilterTables_NoFilter(t *testing.T) {
	cat := filterCatalog()
	got, err := filterTables(cat, nil)
	if err != nil || got != cat {
		t.Errorf("Expected the catalog unchanged, got %v, %v", got, err)
	}
}

func TestFilterTables_UnknownSuggests(t *testing.T) {
	_, err := filterTables(filterCatalog(), []string{"usr"})
	if err == nil {
		t.Fatal("Expected an error for an unknown table")
	}
	msg := err.Error()
	if !strings.Contains(msg, "no matching tables found for inputs") || !strings.Contains(msg, "did you mean") {
		t.Errorf("Unexpected message: %s", msg)
	}
	if !strings.Contains(msg, "users") {
		t.Errorf("Expected users among the suggestions: %s", msg)
	}
}

func TestSuggestTables_Limit(t *testing.T) {
	tables := []string{"order_a", "order_b", "order_c", "order_d", "posts"}
	hints := suggestTables("order", tables)
	if len(hints) != maxSuggestions {
		t.Errorf("Expected %d suggestions, got %v", maxSuggestions, hints)
	}
	for _, h := range hints {
		if h == "posts" {
			t.Error("posts does not match order")
		}
	}
}
