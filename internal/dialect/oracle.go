package dialect

import (
	"strings"

	_ "github.com/sijms/go-ora/v2" // Oracle Driver
)

type OracleDialect struct{}

// Oracle has no schema argument for the current user's tables (USER_*
// views). Every query still carries a dummy :1 clause so callers can bind
// the schema name uniformly.

func (d *OracleDialect) GetTablesQuery(schema string) string {
	return `SELECT TABLE_NAME, NULL AS ENGINE FROM USER_TABLES WHERE :1 IS NOT NULL ORDER BY TABLE_NAME`
}

func (d *OracleDialect) GetColumnsQuery(schema string) string {
	// DATA_DEFAULT is a LONG column and cannot be converted in SQL, so
	// defaults are not read from Oracle.
	return `
SELECT
    t.TABLE_NAME,
    t.COLUMN_NAME,
    CASE
        WHEN t.DATA_TYPE = 'NUMBER' AND COALESCE(t.DATA_SCALE, 0) > 0 THEN 'DECIMAL'
        WHEN t.DATA_TYPE = 'NUMBER' AND COALESCE(t.DATA_PRECISION, 38) > 10 THEN 'BIGINT'
        WHEN t.DATA_TYPE = 'NUMBER' AND t.DATA_PRECISION = 1 THEN 'TINYINT'
        WHEN t.DATA_TYPE = 'NUMBER' THEN 'INTEGER'
        ELSE t.DATA_TYPE
    END,
    t.DATA_TYPE || CASE WHEN t.CHAR_LENGTH > 0 THEN '(' || t.CHAR_LENGTH || ')' ELSE '' END,
    CASE WHEN t.CHAR_LENGTH > 0 THEN t.CHAR_LENGTH ELSE NULL END,
    CASE WHEN t.NULLABLE = 'Y' THEN 'YES' ELSE 'NO' END,
    NULL,
    CASE WHEN t.IDENTITY_COLUMN = 'YES' THEN 'auto_increment' ELSE '' END,
    c.COMMENTS
FROM USER_TAB_COLUMNS t
JOIN USER_TABLES ut ON ut.TABLE_NAME = t.TABLE_NAME
LEFT JOIN USER_COL_COMMENTS c ON t.TABLE_NAME = c.TABLE_NAME AND t.COLUMN_NAME = c.COLUMN_NAME
WHERE :1 IS NOT NULL
ORDER BY t.TABLE_NAME, t.COLUMN_ID`
}

func (d *OracleDialect) GetIndexesQuery(schema string) string {
	return `
SELECT
    ic.TABLE_NAME,
    ic.INDEX_NAME,
    CASE
        WHEN p.CONSTRAINT_NAME IS NOT NULL THEN 'PRIMARY'
        WHEN i.UNIQUENESS = 'UNIQUE' THEN 'UNIQUE'
        ELSE 'INDEX'
    END,
    ic.COLUMN_NAME
FROM USER_IND_COLUMNS ic
JOIN USER_INDEXES i ON i.INDEX_NAME = ic.INDEX_NAME
LEFT JOIN USER_CONSTRAINTS p ON p.INDEX_NAME = ic.INDEX_NAME AND p.CONSTRAINT_TYPE = 'P'
WHERE :1 IS NOT NULL
ORDER BY ic.TABLE_NAME, CASE WHEN p.CONSTRAINT_NAME IS NOT NULL THEN 0 ELSE 1 END, ic.INDEX_NAME, ic.COLUMN_POSITION`
}

func (d *OracleDialect) GetForeignKeysQuery(schema string) string {
	// Oracle has no ON UPDATE action
	return `
SELECT
    c.TABLE_NAME,
    c.CONSTRAINT_NAME,
    cc.COLUMN_NAME,
    r.TABLE_NAME AS REF_TABLE,
    rcc.COLUMN_NAME AS REF_COLUMN,
    c.DELETE_RULE,
    'NO ACTION'
FROM USER_CONSTRAINTS c
JOIN USER_CONS_COLUMNS cc
    ON c.CONSTRAINT_NAME = cc.CONSTRAINT_NAME
    AND c.OWNER = cc.OWNER
JOIN USER_CONSTRAINTS r
    ON c.R_CONSTRAINT_NAME = r.CONSTRAINT_NAME
    AND c.R_OWNER = r.OWNER
JOIN USER_CONS_COLUMNS rcc
    ON r.CONSTRAINT_NAME = rcc.CONSTRAINT_NAME
    AND r.OWNER = rcc.OWNER
    AND cc.POSITION = rcc.POSITION
WHERE c.CONSTRAINT_TYPE = 'R'
AND :1 IS NOT NULL
ORDER BY c.TABLE_NAME, c.CONSTRAINT_NAME, cc.POSITION`
}

func (d *OracleDialect) CurrentSchemaQuery() string {
	return "SELECT USER FROM DUAL"
}

func (d *OracleDialect) NormalizeType(sqlType string) string {
	t := DefaultNormalizeType(sqlType)
	switch {
	case t == "VARCHAR2" || t == "NVARCHAR2":
		return "VARCHAR"
	case t == "NCHAR":
		return "CHAR"
	case t == "CLOB" || t == "NCLOB" || t == "LONG":
		return "LONGTEXT"
	case t == "RAW":
		return "BINARY"
	case t == "LONG RAW":
		return "LONGBLOB"
	case t == "BINARY_FLOAT":
		return "FLOAT"
	case t == "BINARY_DOUBLE":
		return "DOUBLE"
	case t == "DATE":
		// Oracle DATE carries a time part
		return "DATETIME"
	case strings.HasPrefix(t, "TIMESTAMP"):
		return "TIMESTAMP"
	}
	return t
}

func (d *OracleDialect) NormalizeDefault(def, dataType string) string {
	return literalDefault(strings.TrimSpace(def), dataType)
}

func (d *OracleDialect) GetSchemaName(input string) string {
	return strings.ToUpper(input)
}
