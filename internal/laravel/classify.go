// Package laravel turns schema tables into Laravel schema-builder migrations.
package laravel

import (
	"strings"

	"laravel-migration/internal/schema"
)

// Role is the semantic part a column plays in a table.
type Role int

const (
	RolePlain Role = iota
	RoleAutoIncrement
	RoleBoolean
	RoleUnsigned
	RoleToken
	RoleMorphID
	RoleMorphType
	RoleCreatedAt
	RoleUpdatedAt
	RoleSoftDelete
)

var roleNames = [...]string{
	RolePlain:         "plain",
	RoleAutoIncrement: "auto-increment",
	RoleBoolean:       "boolean",
	RoleUnsigned:      "unsigned",
	RoleToken:         "token",
	RoleMorphID:       "morph-id",
	RoleMorphType:     "morph-type",
	RoleCreatedAt:     "created-at",
	RoleUpdatedAt:     "updated-at",
	RoleSoftDelete:    "soft-delete",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// FallbackTag is the tag of every type missing from the method table.
const FallbackTag = "STRING"

// typeMethods maps a canonical type tag to its Blueprint method.
var typeMethods = map[string]string{
	"BIG_INCREMENTS": "bigIncrements", "MEDIUM_INCREMENTS": "mediumIncrements",
	"SMALL_INCREMENTS": "smallIncrements", "TINY_INCREMENTS": "tinyIncrements",
	"INCREMENTS": "increments",

	"TINYINT": "tinyInteger", "UNSIGNED_TINYINT": "unsignedTinyInteger",
	"SMALLINT": "smallInteger", "UNSIGNED_SMALLINT": "unsignedSmallInteger",
	"MEDIUMINT": "mediumInteger", "UNSIGNED_MEDIUMINT": "unsignedMediumInteger", "MIDDLEINT": "mediumInteger",
	"INT": "integer", "UNSIGNED_INT": "unsignedInteger",
	"INTEGER": "integer", "UNSIGNED_INTEGER": "unsignedInteger",
	"BIGINT": "bigInteger", "UNSIGNED_BIGINT": "unsignedBigInteger",

	"FLOAT": "float", "DOUBLE": "double", "DECIMAL": "decimal", "NUMERIC": "decimal", "DEC": "decimal",
	"JSON": "json",

	"CHAR": "char", "CHARACTER": "char", "VARCHAR": "string", "STRING": "string",
	"BINARY": "binary", "TINYBLOB": "binary", "BLOB": "binary", "MEDIUMBLOB": "binary", "LONGBLOB": "binary",
	"TINYTEXT": "text", "TEXT": "text", "MEDIUMTEXT": "mediumText", "LONGTEXT": "longText",

	"DATETIME": "dateTime", "DATE": "date", "YEAR": "year", "TIME": "time", "TIMESTAMP": "timestamp",

	"ENUM": "enum", "SET": "set",
	"BOOLEAN": "boolean", "BOOL": "boolean", "UUID": "uuid",
	"MORPHS": "morphs", "NULLABLE_MORPHS": "nullableMorphs",
	"REMEMBER_TOKEN": "rememberToken", "GEOMETRY": "geometry",
}

var integerFamily = map[string]bool{
	"BIGINT": true, "INT": true, "INTEGER": true, "MEDIUMINT": true, "SMALLINT": true, "TINYINT": true,
}

var incrementsFor = map[string]string{
	"BIGINT":    "BIG_INCREMENTS",
	"MEDIUMINT": "MEDIUM_INCREMENTS",
	"SMALLINT":  "SMALL_INCREMENTS",
	"TINYINT":   "TINY_INCREMENTS",
}

var temporalTags = map[string]bool{
	"DATETIME": true, "DATE": true, "TIME": true, "TIMESTAMP": true,
}

// RememberTokenColumn is the column name Laravel reserves for the
// "remember me" token.
const RememberTokenColumn = "remember_token"

// Classification is the derived type decision for one column.
type Classification struct {
	Tag    string
	Method string
	Params string // PHP array literal for ENUM/SET members
	Role   Role
}

// Method returns the Blueprint method for tag, "string" when unknown.
func Method(tag string) string {
	if m, ok := typeMethods[strings.ToUpper(tag)]; ok {
		return m
	}
	return typeMethods[FallbackTag]
}

// Known reports whether tag has its own Blueprint method.
func Known(tag string) bool {
	_, ok := typeMethods[strings.ToUpper(tag)]
	return ok
}

// Classify decides the tag of col. primary is true when col is the only
// column of the table's primary key.
func Classify(col *schema.Column, primary bool) Classification {
	raw := strings.ToUpper(strings.TrimSpace(col.DataType))

	tag, role := classifyTag(col, raw, primary)
	c := Classification{Tag: tag, Role: role}
	if Known(tag) {
		c.Method = typeMethods[tag]
	} else {
		c.Tag = FallbackTag
		c.Method = Method(tag)
	}
	if tag == "ENUM" || tag == "SET" {
		c.Params = phpArray(col.ExplicitParams)
	}
	return c
}

func classifyTag(col *schema.Column, raw string, primary bool) (string, Role) {
	switch {
	case primary:
		if inc, ok := incrementsFor[raw]; ok {
			return inc, RoleAutoIncrement
		}
		if raw == "CHAR" && col.Length == 36 {
			return "UUID", RoleAutoIncrement
		}
		return "INCREMENTS", RoleAutoIncrement
	case (raw == "TINYINT" || raw == "SMALLINT") && col.HasFlag("UNSIGNED") && isBinaryDefault(col.Default):
		return "BOOLEAN", RoleBoolean
	case integerFamily[raw] && col.HasFlag("UNSIGNED"):
		return "UNSIGNED_" + raw, RoleUnsigned
	case col.Name == RememberTokenColumn && raw == "VARCHAR" && col.Length == 100:
		return "REMEMBER_TOKEN", RoleToken
	}
	return raw, RolePlain
}

func isBinaryDefault(def string) bool {
	d := strings.Trim(strings.TrimSpace(def), "'")
	return d == "0" || d == "1"
}

// phpArray turns an explicit parameter list such as ('a','b') into ['a','b'].
func phpArray(params string) string {
	return "[" + strings.Trim(strings.TrimSpace(params), "()") + "]"
}
