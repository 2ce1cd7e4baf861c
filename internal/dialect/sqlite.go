package dialect

import (
	"strings"
)

// SQLiteDialect reads the schema through the pragma table-valued functions.
// SQLite has a single "main" schema per connection, the bound schema name is
// only checked for NULL.
type SQLiteDialect struct{}

const sqliteUserTables = `m.type = 'table' AND m.name NOT LIKE 'sqlite_%'`

func (d *SQLiteDialect) GetTablesQuery(schema string) string {
	return `SELECT m.name, NULL FROM sqlite_master m WHERE ` + sqliteUserTables + ` AND ? IS NOT NULL ORDER BY m.name`
}

func (d *SQLiteDialect) GetColumnsQuery(schema string) string {
	// An INTEGER PRIMARY KEY is an alias of the rowid and auto increments
	return `SELECT
    m.name,
    p.name,
    p.type,
    p.type,
    NULL,
    CASE WHEN p."notnull" = 0 AND p.pk = 0 THEN 'YES' ELSE 'NO' END,
    p.dflt_value,
    CASE
        WHEN p.pk = 1 AND upper(p.type) = 'INTEGER'
            AND (SELECT COUNT(*) FROM pragma_table_info(m.name) x WHERE x.pk > 0) = 1
        THEN 'auto_increment'
        ELSE ''
    END,
    NULL
FROM sqlite_master m
JOIN pragma_table_info(m.name) p
WHERE ` + sqliteUserTables + ` AND ? IS NOT NULL
ORDER BY m.name, p.cid`
}

func (d *SQLiteDialect) GetIndexesQuery(schema string) string {
	// Rowid primary keys have no index of their own; they are read from
	// table_info instead.
	return `SELECT tbl, idx, kind, col FROM (
    SELECT m.name AS tbl, il.name AS idx,
        CASE WHEN il.origin = 'pk' THEN 'PRIMARY' WHEN il."unique" = 1 THEN 'UNIQUE' ELSE 'INDEX' END AS kind,
        ii.name AS col, ii.seqno AS seq
    FROM sqlite_master m
    JOIN pragma_index_list(m.name) il
    JOIN pragma_index_info(il.name) ii
    WHERE ` + sqliteUserTables + ` AND ? IS NOT NULL
    UNION ALL
    SELECT m.name, 'PRIMARY', 'PRIMARY', p.name, p.pk
    FROM sqlite_master m
    JOIN pragma_table_info(m.name) p
    WHERE ` + sqliteUserTables + ` AND p.pk > 0
        AND NOT EXISTS (SELECT 1 FROM pragma_index_list(m.name) x WHERE x.origin = 'pk')
)
ORDER BY tbl, kind = 'PRIMARY' DESC, idx, seq`
}

func (d *SQLiteDialect) GetForeignKeysQuery(schema string) string {
	// "to" is NULL when the reference targets the implicit primary key
	return `SELECT
    m.name,
    'fk_' || m.name || '_' || f.id,
    f."from",
    f."table",
    COALESCE(f."to", 'id'),
    f.on_delete,
    f.on_update
FROM sqlite_master m
JOIN pragma_foreign_key_list(m.name) f
WHERE ` + sqliteUserTables + ` AND ? IS NOT NULL
ORDER BY m.name, f.id, f.seq`
}

func (d *SQLiteDialect) CurrentSchemaQuery() string {
	return "SELECT 'main'"
}

// NormalizeType keeps the declared type name without its size and without
// the UNSIGNED/ZEROFILL words SQLite accepts as part of it.
func (d *SQLiteDialect) NormalizeType(sqlType string) string {
	var words []string
	for _, w := range strings.Fields(DefaultNormalizeType(sqlType)) {
		if w == "UNSIGNED" || w == "ZEROFILL" {
			continue
		}
		words = append(words, w)
	}
	return strings.Join(words, " ")
}

func (d *SQLiteDialect) NormalizeDefault(def, dataType string) string {
	return literalDefault(stripParens(def), dataType)
}

func (d *SQLiteDialect) GetSchemaName(input string) string {
	if input == "" {
		return "main"
	}
	return input
}
