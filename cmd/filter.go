package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/viper"

	"laravel-migration/internal/schema"
)

// targetTableNames applies the filter precedence: --tables flag, then
// settings.tables, then nothing (all tables).
func targetTableNames(flagTables []string) []string {
	if len(flagTables) > 0 {
		return flagTables
	}
	return viper.GetStringSlice("settings.tables")
}

// filterTables keeps only the requested tables (case-insensitive). Schemas
// left without tables are dropped. Unknown names are rejected with the
// closest table names as suggestions.
func filterTables(cat *schema.Catalog, names []string) (*schema.Catalog, error) {
	if len(names) == 0 {
		return cat, nil
	}

	// Create a map for requested tables for O(1) lookup
	reqTables := make(map[string]bool)
	for _, t := range names {
		reqTables[strings.ToLower(t)] = true
	}

	found := make(map[string]bool)
	filtered := &schema.Catalog{}
	var all []string
	for _, s := range cat.Schemas {
		var tables []*schema.Table
		for _, t := range s.Tables {
			all = append(all, t.Name)
			if reqTables[strings.ToLower(t.Name)] {
				tables = append(tables, t)
				found[strings.ToLower(t.Name)] = true
			}
		}
		if len(tables) > 0 {
			filtered.Schemas = append(filtered.Schemas, &schema.Schema{Name: s.Name, Tables: tables})
		}
	}

	var problems []string
	for _, name := range names {
		if found[strings.ToLower(name)] {
			continue
		}
		msg := fmt.Sprintf("unknown table %q", name)
		if hints := suggestTables(name, all); len(hints) > 0 {
			msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(hints, ", "))
		}
		problems = append(problems, msg)
	}
	if len(problems) > 0 {
		return nil, fmt.Errorf("no matching tables found for inputs: %s", strings.Join(problems, "; "))
	}
	return filtered, nil
}

const maxSuggestions = 3

// suggestTables returns up to maxSuggestions table names fuzzy-matching name.
func suggestTables(name string, tables []string) []string {
	lower := make([]string, len(tables))
	for i, t := range tables {
		lower[i] = strings.ToLower(t)
	}

	matches := fuzzy.Find(strings.ToLower(name), lower)
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	var hints []string
	seen := make(map[string]bool)
	for _, m := range matches {
		t := tables[m.Index]
		if seen[t] {
			continue
		}
		seen[t] = true
		hints = append(hints, t)
		if len(hints) == maxSuggestions {
			break
		}
	}
	return hints
}
