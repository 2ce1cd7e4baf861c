package dialect

// Dialect abstracts database-specific schema introspection.
//
// Every query takes the schema name as its only bind argument and must
// return its columns in the order documented on the method, so the analyzer
// can scan all engines the same way.
type Dialect interface {
	// TABLE_NAME, ENGINE
	GetTablesQuery(schema string) string
	// TABLE_NAME, COLUMN_NAME, DATA_TYPE, COLUMN_TYPE, CHARACTER_MAXIMUM_LENGTH,
	// IS_NULLABLE, COLUMN_DEFAULT, EXTRA, COLUMN_COMMENT
	GetColumnsQuery(schema string) string
	// TABLE_NAME, INDEX_NAME, KIND (PRIMARY|UNIQUE|INDEX), COLUMN_NAME,
	// ordered by table, index and position within the index
	GetIndexesQuery(schema string) string
	// TABLE_NAME, CONSTRAINT_NAME, COLUMN_NAME, REFERENCED_TABLE_NAME,
	// REFERENCED_COLUMN_NAME, DELETE_RULE, UPDATE_RULE
	GetForeignKeysQuery(schema string) string

	// CurrentSchemaQuery returns a query yielding the default schema of the
	// connection, or "" when GetSchemaName("") is already enough.
	CurrentSchemaQuery() string

	// Helpers
	NormalizeType(sqlType string) string
	NormalizeDefault(def, dataType string) string
	GetSchemaName(input string) string
}
