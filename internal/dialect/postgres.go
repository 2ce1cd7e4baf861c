package dialect

import (
	"strings"
)

type PostgresDialect struct{}

func (d *PostgresDialect) GetTablesQuery(schema string) string {
	// use $1 placeholder; PostgreSQL has no storage engine
	return `SELECT table_name, NULL AS engine FROM information_schema.tables WHERE table_schema = $1 AND table_type = 'BASE TABLE' ORDER BY table_name`
}

func (d *PostgresDialect) GetColumnsQuery(schema string) string {
	// udt_name (int4, varchar, ...) stands in for DATA_TYPE
	return `SELECT
    c.table_name,
    c.column_name,
    c.udt_name,
    c.data_type,
    c.character_maximum_length,
    c.is_nullable,
    c.column_default,
    CASE WHEN c.is_identity = 'YES' OR c.column_default LIKE 'nextval(%' THEN 'auto_increment' ELSE '' END AS extra,
    col_description(format('%I.%I', c.table_schema, c.table_name)::regclass, c.ordinal_position) AS column_comment
FROM information_schema.columns c
JOIN information_schema.tables t
    ON t.table_schema = c.table_schema AND t.table_name = c.table_name AND t.table_type = 'BASE TABLE'
WHERE c.table_schema = $1
ORDER BY c.table_name, c.ordinal_position`
}

func (d *PostgresDialect) GetIndexesQuery(schema string) string {
	return `SELECT
    t.relname AS table_name,
    i.relname AS index_name,
    CASE WHEN ix.indisprimary THEN 'PRIMARY' WHEN ix.indisunique THEN 'UNIQUE' ELSE 'INDEX' END AS kind,
    a.attname AS column_name
FROM pg_class t
JOIN pg_index ix ON t.oid = ix.indrelid
JOIN pg_class i ON i.oid = ix.indexrelid
JOIN pg_namespace n ON n.oid = t.relnamespace
JOIN LATERAL unnest(ix.indkey) WITH ORDINALITY AS k(attnum, ord) ON true
JOIN pg_attribute a ON a.attrelid = t.oid AND a.attnum = k.attnum
WHERE n.nspname = $1 AND t.relkind = 'r'
ORDER BY t.relname, ix.indisprimary DESC, i.relname, k.ord`
}

func (d *PostgresDialect) GetForeignKeysQuery(schema string) string {
	return `SELECT
    tc.table_name,
    tc.constraint_name,
    kcu.column_name,
    ccu.table_name AS referenced_table_name,
    ccu.column_name AS referenced_column_name,
    rc.delete_rule,
    rc.update_rule
FROM information_schema.table_constraints tc
JOIN information_schema.key_column_usage kcu
    ON tc.constraint_name = kcu.constraint_name AND tc.table_schema = kcu.table_schema
JOIN information_schema.constraint_column_usage ccu
    ON ccu.constraint_name = tc.constraint_name AND ccu.table_schema = tc.table_schema
JOIN information_schema.referential_constraints rc
    ON rc.constraint_name = tc.constraint_name AND rc.constraint_schema = tc.table_schema
WHERE tc.constraint_type = 'FOREIGN KEY' AND tc.table_schema = $1
ORDER BY tc.table_name, tc.constraint_name, kcu.ordinal_position`
}

func (d *PostgresDialect) CurrentSchemaQuery() string {
	return "SELECT current_schema()"
}

func (d *PostgresDialect) NormalizeType(sqlType string) string {
	t := strings.ToLower(sqlType)
	switch t {
	case "int4", "serial", "serial4":
		return "INT"
	case "int2", "smallserial", "serial2":
		return "SMALLINT"
	case "int8", "bigserial", "serial8":
		return "BIGINT"
	case "float4":
		return "FLOAT"
	case "float8":
		return "DOUBLE"
	case "numeric":
		return "DECIMAL"
	case "bpchar":
		return "CHAR"
	case "bool":
		return "BOOLEAN"
	case "timestamp", "timestamptz":
		return "TIMESTAMP"
	case "time", "timetz":
		return "TIME"
	case "jsonb":
		return "JSON"
	case "bytea":
		return "BLOB"
	default:
		return DefaultNormalizeType(t)
	}
}

// NormalizeDefault drops casts ('a'::character varying -> 'a') and sequence
// defaults, which Laravel expresses through the increments types.
func (d *PostgresDialect) NormalizeDefault(def, dataType string) string {
	def = strings.TrimSpace(def)
	if strings.HasPrefix(def, "nextval(") {
		return ""
	}
	if i := strings.Index(def, "::"); i > 0 {
		def = def[:i]
	}
	def = stripParens(def)
	switch strings.ToLower(def) {
	case "true":
		return "1"
	case "false":
		return "0"
	}
	if numericTypes[dataType] {
		def = strings.Trim(def, "'")
	}
	return literalDefault(def, dataType)
}

func (d *PostgresDialect) GetSchemaName(input string) string {
	if input == "" {
		return "public"
	}
	return input
}
