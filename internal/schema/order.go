package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCyclicDependency is matched by every *CycleError.
var ErrCyclicDependency = errors.New("cyclic dependency among foreign key tables")

// CycleError reports the tables whose foreign keys could not be satisfied
// by any emission order.
type CycleError struct {
	Tables []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCyclicDependency, strings.Join(e.Tables, ", "))
}

func (e *CycleError) Unwrap() error {
	return ErrCyclicDependency
}

// OrderTables sorts tables so that every table referenced by a foreign key
// comes before the tables referencing it. Each round takes every table whose
// remaining dependencies are all emitted, in input order.
//
// When a cycle stalls the sort, the tables are returned in their input order
// together with a *CycleError naming the unresolved tables. The caller is
// expected to log it and carry on.
func OrderTables(tables []*Table) ([]*Table, error) {
	known := make(map[string]bool, len(tables))
	for _, t := range tables {
		known[t.Name] = true
	}

	remaining := make(map[string]map[string]bool, len(tables))
	for _, t := range tables {
		deps := make(map[string]bool)
		for _, dep := range t.Dependencies() {
			// References outside the schema can never be emitted here
			if known[dep] {
				deps[dep] = true
			}
		}
		remaining[t.Name] = deps
	}

	sorted := make([]*Table, 0, len(tables))
	processed := make(map[string]bool, len(tables))

	for len(sorted) < len(tables) {
		var acyclic []*Table
		for _, t := range tables {
			if !processed[t.Name] && len(remaining[t.Name]) == 0 {
				acyclic = append(acyclic, t)
			}
		}

		if len(acyclic) == 0 {
			var stuck []string
			for _, t := range tables {
				if !processed[t.Name] {
					stuck = append(stuck, t.Name)
				}
			}
			fallback := make([]*Table, len(tables))
			copy(fallback, tables)
			return fallback, &CycleError{Tables: stuck}
		}

		for _, t := range acyclic {
			sorted = append(sorted, t)
			processed[t.Name] = true
		}
		for _, deps := range remaining {
			for _, t := range acyclic {
				delete(deps, t.Name)
			}
		}
	}

	return sorted, nil
}

// TableNames returns the names of tables in order.
func TableNames(tables []*Table) []string {
	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.Name
	}
	return names
}
