package dialect

import (
	"strings"

	_ "github.com/denisenkom/go-mssqldb" // SQL Server Driver
)

type MSSQLDialect struct{}

// Helper: MSSQL Driver (go-mssqldb) prefers @p1 named parameters over ?

func (d *MSSQLDialect) GetTablesQuery(schema string) string {
	return `SELECT TABLE_NAME, NULL AS ENGINE FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`
}

func (d *MSSQLDialect) GetColumnsQuery(schema string) string {
	// Identity info and MS_Description (Comment) come from the sys catalog
	return `
		SELECT
			c.TABLE_NAME,
			c.COLUMN_NAME,
			c.DATA_TYPE,
			c.DATA_TYPE,
			c.CHARACTER_MAXIMUM_LENGTH,
			c.IS_NULLABLE,
			c.COLUMN_DEFAULT,
			CASE
				WHEN COLUMNPROPERTY(OBJECT_ID(c.TABLE_SCHEMA + '.' + c.TABLE_NAME), c.COLUMN_NAME, 'IsIdentity') = 1 THEN 'auto_increment'
				ELSE ''
			END AS EXTRA,
			CAST(ep.value AS NVARCHAR(MAX)) AS COMMENT
		FROM INFORMATION_SCHEMA.COLUMNS c
		JOIN INFORMATION_SCHEMA.TABLES t
			ON t.TABLE_SCHEMA = c.TABLE_SCHEMA AND t.TABLE_NAME = c.TABLE_NAME AND t.TABLE_TYPE = 'BASE TABLE'
		LEFT JOIN sys.extended_properties ep
			ON ep.major_id = OBJECT_ID(c.TABLE_SCHEMA + '.' + c.TABLE_NAME)
			AND ep.minor_id = COLUMNPROPERTY(OBJECT_ID(c.TABLE_SCHEMA + '.' + c.TABLE_NAME), c.COLUMN_NAME, 'ColumnId')
			AND ep.name = 'MS_Description'
		WHERE c.TABLE_SCHEMA = @p1
		ORDER BY c.TABLE_NAME, c.ORDINAL_POSITION
	`
}

func (d *MSSQLDialect) GetIndexesQuery(schema string) string {
	return `
		SELECT
			t.name AS TABLE_NAME,
			idx.name AS INDEX_NAME,
			CASE WHEN idx.is_primary_key = 1 THEN 'PRIMARY' WHEN idx.is_unique = 1 THEN 'UNIQUE' ELSE 'INDEX' END AS KIND,
			col.name AS COLUMN_NAME
		FROM sys.indexes idx
		JOIN sys.index_columns ic ON idx.object_id = ic.object_id AND idx.index_id = ic.index_id
		JOIN sys.columns col ON ic.object_id = col.object_id AND ic.column_id = col.column_id
		JOIN sys.tables t ON idx.object_id = t.object_id
		JOIN sys.schemas s ON t.schema_id = s.schema_id
		WHERE s.name = @p1 AND ic.is_included_column = 0
		ORDER BY t.name, idx.is_primary_key DESC, idx.name, ic.key_ordinal
	`
}

func (d *MSSQLDialect) GetForeignKeysQuery(schema string) string {
	return `
		SELECT
			tp.name AS TABLE_NAME,
			fk.name AS CONSTRAINT_NAME,
			cp.name AS COLUMN_NAME,
			tr.name AS REF_TABLE,
			cr.name AS REF_COLUMN,
			fk.delete_referential_action_desc,
			fk.update_referential_action_desc
		FROM sys.foreign_keys fk
		JOIN sys.foreign_key_columns fkc ON fk.object_id = fkc.constraint_object_id
		JOIN sys.tables tp ON fkc.parent_object_id = tp.object_id
		JOIN sys.columns cp ON fkc.parent_object_id = cp.object_id AND fkc.parent_column_id = cp.column_id
		JOIN sys.tables tr ON fkc.referenced_object_id = tr.object_id
		JOIN sys.columns cr ON fkc.referenced_object_id = cr.object_id AND fkc.referenced_column_id = cr.column_id
		JOIN sys.schemas s ON tp.schema_id = s.schema_id
		WHERE s.name = @p1
		ORDER BY tp.name, fk.name, fkc.constraint_column_id
	`
}

func (d *MSSQLDialect) CurrentSchemaQuery() string {
	return "SELECT SCHEMA_NAME()"
}

func (d *MSSQLDialect) NormalizeType(sqlType string) string {
	t := strings.ToLower(sqlType)
	switch t {
	case "nvarchar":
		return "VARCHAR"
	case "nchar":
		return "CHAR"
	case "ntext":
		return "TEXT"
	case "bit":
		return "BOOLEAN"
	case "money", "smallmoney":
		return "DECIMAL"
	case "real":
		return "FLOAT"
	case "float":
		return "DOUBLE"
	case "datetime2", "smalldatetime", "datetimeoffset":
		return "DATETIME"
	case "image", "varbinary":
		return "BLOB"
	case "uniqueidentifier":
		return "UUID"
	default:
		return DefaultNormalizeType(t)
	}
}

// NormalizeDefault unwraps the parentheses SQL Server stores defaults in:
// ((0)), ('abc'), (getdate()).
func (d *MSSQLDialect) NormalizeDefault(def, dataType string) string {
	def = stripParens(def)
	if strings.HasPrefix(def, "N'") {
		def = def[1:]
	}
	return literalDefault(def, dataType)
}

func (d *MSSQLDialect) GetSchemaName(input string) string {
	if input == "" {
		return "dbo"
	}
	return input
}
