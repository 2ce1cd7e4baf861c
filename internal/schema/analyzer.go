package schema

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"laravel-migration/internal/dialect"
)

// ResolveSchemaName returns the schema to introspect: the explicit input
// when given, otherwise the connection's current schema.
func ResolveSchemaName(ctx context.Context, db *sql.DB, d dialect.Dialect, input string) (string, error) {
	if input != "" {
		return d.GetSchemaName(input), nil
	}
	q := d.CurrentSchemaQuery()
	if q == "" {
		return d.GetSchemaName(""), nil
	}
	var name sql.NullString
	if err := db.QueryRowContext(ctx, q).Scan(&name); err != nil {
		return "", fmt.Errorf("failed to query current schema: %w", err)
	}
	if !name.Valid || name.String == "" {
		return d.GetSchemaName(""), nil
	}
	return d.GetSchemaName(name.String), nil
}

// Analyze reads tables, columns, indexes and foreign keys of one schema.
// Tables are returned in the order the dialect lists them.
func Analyze(ctx context.Context, db *sql.DB, d dialect.Dialect, schemaName string) (*Schema, error) {
	target, err := ResolveSchemaName(ctx, db, d, schemaName)
	if err != nil {
		return nil, err
	}

	// Normalized keys (UPPERCASE) so lookups survive Oracle's case folding
	tableMap := make(map[string]*Table)
	s := &Schema{Name: target}

	// --- Step 1: Fetch Tables ---
	rows, err := db.QueryContext(ctx, d.GetTablesQuery(target), target)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, engine sql.NullString
		if err := rows.Scan(&name, &engine); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		if !name.Valid {
			continue
		}
		t := &Table{Name: name.String, Engine: engine.String}
		tableMap[strings.ToUpper(t.Name)] = t
		s.Tables = append(s.Tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	// --- Step 2: Fetch Columns ---
	if err := scanColumns(ctx, db, d, target, tableMap); err != nil {
		return nil, err
	}

	// --- Step 3: Fetch Indexes ---
	if err := scanIndexes(ctx, db, d, target, tableMap); err != nil {
		return nil, err
	}

	// --- Step 4: Fetch Foreign Keys ---
	if err := scanForeignKeys(ctx, db, d, target, tableMap); err != nil {
		return nil, err
	}

	return s, nil
}

func scanColumns(ctx context.Context, db *sql.DB, d dialect.Dialect, target string, tableMap map[string]*Table) error {
	rows, err := db.QueryContext(ctx, d.GetColumnsQuery(target), target)
	if err != nil {
		return fmt.Errorf("failed to query columns: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tName, cName, dType, cType, cLen, isNull, cDefault, extra, comment sql.NullString
		if err := rows.Scan(&tName, &cName, &dType, &cType, &cLen, &isNull, &cDefault, &extra, &comment); err != nil {
			return fmt.Errorf("failed to scan column (table: %s): %w", tName.String, err)
		}
		if !tName.Valid || !cName.Valid {
			continue
		}

		t, ok := tableMap[strings.ToUpper(tName.String)]
		if !ok {
			continue
		}

		col := &Column{
			Name:       cName.String,
			DataType:   d.NormalizeType(dType.String),
			IsNullable: strings.EqualFold(isNull.String, "YES"),
			Comment:    comment.String,
		}

		fullType := strings.ToLower(cType.String)
		if strings.Contains(fullType, "unsigned") {
			col.Flags = append(col.Flags, "UNSIGNED")
		}
		if strings.Contains(fullType, "zerofill") {
			col.Flags = append(col.Flags, "ZEROFILL")
		}
		extraLower := strings.ToLower(extra.String)
		if strings.Contains(extraLower, "auto_increment") || strings.Contains(extraLower, "identity") {
			col.Flags = append(col.Flags, "AUTO_INCREMENT")
		}

		if col.DataType == "ENUM" || col.DataType == "SET" {
			if i := strings.Index(cType.String, "("); i >= 0 {
				col.ExplicitParams = cType.String[i:]
			}
		}

		col.Length = parseLength(cLen, cType.String)

		if cDefault.Valid {
			col.Default = d.NormalizeDefault(cDefault.String, col.DataType)
		}

		t.Columns = append(t.Columns, col)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating columns: %w", err)
	}
	return nil
}

// parseLength prefers CHARACTER_MAXIMUM_LENGTH and falls back to the size
// in the full column type, e.g. varchar(100).
func parseLength(cLen sql.NullString, columnType string) int {
	if cLen.Valid && cLen.String != "" {
		if n, err := strconv.Atoi(cLen.String); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(cLen.String, 64); err == nil {
			return int(f)
		}
	}
	open := strings.Index(columnType, "(")
	if open < 0 {
		return 0
	}
	rest := columnType[open+1:]
	end := strings.IndexAny(rest, ",)")
	if end < 0 {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest[:end]))
	if err != nil {
		return 0
	}
	return n
}

func scanIndexes(ctx context.Context, db *sql.DB, d dialect.Dialect, target string, tableMap map[string]*Table) error {
	rows, err := db.QueryContext(ctx, d.GetIndexesQuery(target), target)
	if err != nil {
		return fmt.Errorf("failed to query indexes: %w", err)
	}
	defer rows.Close()

	// Rows arrive one per indexed column; group by (table, index) in the
	// order they are first seen.
	byKey := make(map[string]*Index)
	for rows.Next() {
		var tName, iName, kind, cName sql.NullString
		if err := rows.Scan(&tName, &iName, &kind, &cName); err != nil {
			return fmt.Errorf("failed to scan index: %w", err)
		}
		if !tName.Valid || !cName.Valid {
			continue
		}
		t, ok := tableMap[strings.ToUpper(tName.String)]
		if !ok {
			continue
		}

		key := strings.ToUpper(tName.String) + "\x00" + iName.String
		idx, ok := byKey[key]
		if !ok {
			idx = &Index{Name: iName.String, Kind: ParseIndexKind(kind.String)}
			byKey[key] = idx
			t.Indexes = append(t.Indexes, idx)
		}
		idx.Columns = append(idx.Columns, cName.String)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating indexes: %w", err)
	}
	return nil
}

func scanForeignKeys(ctx context.Context, db *sql.DB, d dialect.Dialect, target string, tableMap map[string]*Table) error {
	rows, err := db.QueryContext(ctx, d.GetForeignKeysQuery(target), target)
	if err != nil {
		// Missing permissions on the constraint views end up here
		return fmt.Errorf("failed to query foreign keys: %w", err)
	}
	defer rows.Close()

	// Composite keys arrive one row per column, first column first. Only
	// the first column of each constraint is kept.
	seen := make(map[string]bool)
	for rows.Next() {
		var tName, cConst, cName, rTable, rCol, onDelete, onUpdate sql.NullString
		if err := rows.Scan(&tName, &cConst, &cName, &rTable, &rCol, &onDelete, &onUpdate); err != nil {
			return fmt.Errorf("failed to scan foreign key: %w", err)
		}
		if !tName.Valid || !rTable.Valid {
			continue
		}
		t, ok := tableMap[strings.ToUpper(tName.String)]
		if !ok {
			continue
		}

		if cConst.String != "" {
			key := strings.ToUpper(tName.String) + "\x00" + cConst.String
			if seen[key] {
				continue
			}
			seen[key] = true
		}

		refTable := rTable.String
		if ref, exists := tableMap[strings.ToUpper(refTable)]; exists {
			// original case name
			refTable = ref.Name
		}

		t.ForeignKeys = append(t.ForeignKeys, &ForeignKey{
			Name:      cConst.String,
			Column:    cName.String,
			RefTable:  refTable,
			RefColumn: rCol.String,
			OnDelete:  ParseRule(onDelete.String),
			OnUpdate:  ParseRule(onUpdate.String),
		})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating foreign keys: %w", err)
	}
	return nil
}
