package laravel_test

import (
	"strconv"
	"testing"

	"github.com/brianvoe/gofakeit/v6"

	"laravel-migration/internal/laravel"
	"laravel-migration/internal/schema"
)

func TestMethod_KnownTypes(t *testing.T) {
	cases := map[string]string{
		"VARCHAR":         "string",
		"BIGINT":          "bigInteger",
		"UNSIGNED_BIGINT": "unsignedBigInteger",
		"MIDDLEINT":       "mediumInteger",
		"LONGTEXT":        "longText",
		"TIMESTAMP":       "timestamp",
		"BIG_INCREMENTS":  "bigIncrements",
		"NULLABLE_MORPHS": "nullableMorphs",
		"REMEMBER_TOKEN":  "rememberToken",
		"decimal":         "decimal",
		"SOMETHING_ODD":   "string",
		"":                "string",
	}
	for tag, want := range cases {
		if got := laravel.Method(tag); got != want {
			t.Errorf("Method(%q): expected %s, got %s", tag, want, got)
		}
	}
}

func TestClassify_UnknownTypeFallsBack(t *testing.T) {
	c := laravel.Classify(&schema.Column{Name: "shape", DataType: "POINT"}, false)
	if c.Tag != laravel.FallbackTag || c.Method != "string" || c.Role != laravel.RolePlain {
		t.Errorf("Expected STRING/string fallback, got %+v", c)
	}
}

func TestClassify_PrimaryKey(t *testing.T) {
	cases := []struct {
		col        schema.Column
		wantTag    string
		wantMethod string
	}{
		{schema.Column{Name: "id", DataType: "INT"}, "INCREMENTS", "increments"},
		{schema.Column{Name: "id", DataType: "INTEGER"}, "INCREMENTS", "increments"},
		{schema.Column{Name: "id", DataType: "BIGINT", Flags: []string{"UNSIGNED"}}, "BIG_INCREMENTS", "bigIncrements"},
		{schema.Column{Name: "id", DataType: "MEDIUMINT"}, "MEDIUM_INCREMENTS", "mediumIncrements"},
		{schema.Column{Name: "id", DataType: "SMALLINT"}, "SMALL_INCREMENTS", "smallIncrements"},
		{schema.Column{Name: "id", DataType: "TINYINT"}, "TINY_INCREMENTS", "tinyIncrements"},
		{schema.Column{Name: "id", DataType: "CHAR", Length: 36}, "UUID", "uuid"},
		{schema.Column{Name: "code", DataType: "VARCHAR", Length: 10}, "INCREMENTS", "increments"},
	}

	for _, tc := range cases {
		col := tc.col
		c := laravel.Classify(&col, true)
		if c.Tag != tc.wantTag || c.Method != tc.wantMethod {
			t.Errorf("%s %s: expected %s/%s, got %s/%s", col.DataType, col.Flags, tc.wantTag, tc.wantMethod, c.Tag, c.Method)
		}
		if c.Role != laravel.RoleAutoIncrement {
			t.Errorf("%s: expected role auto-increment, got %s", col.DataType, c.Role)
		}
	}
}

func TestClassify_Boolean(t *testing.T) {
	flag := &schema.Column{Name: "active", DataType: "TINYINT", Flags: []string{"UNSIGNED"}, Default: "1"}
	if c := laravel.Classify(flag, false); c.Tag != "BOOLEAN" || c.Method != "boolean" {
		t.Errorf("Expected BOOLEAN, got %+v", c)
	}

	quoted := &schema.Column{Name: "visible", DataType: "SMALLINT", Flags: []string{"UNSIGNED"}, Default: "'0'"}
	if c := laravel.Classify(quoted, false); c.Tag != "BOOLEAN" {
		t.Errorf("Expected BOOLEAN for quoted default, got %+v", c)
	}

	counter := &schema.Column{Name: "hits", DataType: "TINYINT", Flags: []string{"UNSIGNED"}, Default: "5"}
	if c := laravel.Classify(counter, false); c.Tag != "UNSIGNED_TINYINT" || c.Method != "unsignedTinyInteger" {
		t.Errorf("Expected UNSIGNED_TINYINT, got %+v", c)
	}

	signed := &schema.Column{Name: "flag", DataType: "TINYINT", Default: "1"}
	if c := laravel.Classify(signed, false); c.Tag != "TINYINT" {
		t.Errorf("Expected TINYINT for signed column, got %+v", c)
	}
}

func TestClassify_Unsigned(t *testing.T) {
	for raw, want := range map[string]string{
		"INT":       "unsignedInteger",
		"INTEGER":   "unsignedInteger",
		"BIGINT":    "unsignedBigInteger",
		"MEDIUMINT": "unsignedMediumInteger",
		"SMALLINT":  "unsignedSmallInteger",
	} {
		col := &schema.Column{Name: "n", DataType: raw, Flags: []string{"UNSIGNED"}}
		c := laravel.Classify(col, false)
		if c.Tag != "UNSIGNED_"+raw || c.Method != want || c.Role != laravel.RoleUnsigned {
			t.Errorf("%s: expected %s, got %+v", raw, want, c)
		}
	}

	// UNSIGNED on a non-integer keeps the raw type
	price := &schema.Column{Name: "price", DataType: "DECIMAL", Flags: []string{"UNSIGNED"}}
	if c := laravel.Classify(price, false); c.Tag != "DECIMAL" {
		t.Errorf("Expected DECIMAL, got %+v", c)
	}
}

func TestClassify_RememberToken(t *testing.T) {
	token := &schema.Column{Name: "remember_token", DataType: "VARCHAR", Length: 100, IsNullable: true}
	if c := laravel.Classify(token, false); c.Tag != "REMEMBER_TOKEN" || c.Role != laravel.RoleToken {
		t.Errorf("Expected REMEMBER_TOKEN, got %+v", c)
	}

	wide := &schema.Column{Name: "remember_token", DataType: "VARCHAR", Length: 255}
	if c := laravel.Classify(wide, false); c.Tag != "VARCHAR" {
		t.Errorf("Expected VARCHAR for a wider token column, got %+v", c)
	}
}

func TestClassify_EnumParams(t *testing.T) {
	col := &schema.Column{Name: "status", DataType: "enum", ExplicitParams: "('draft','published')"}
	c := laravel.Classify(col, false)
	if c.Method != "enum" {
		t.Errorf("Expected enum, got %s", c.Method)
	}
	if c.Params != "['draft','published']" {
		t.Errorf("Expected ['draft','published'], got %s", c.Params)
	}

	plain := laravel.Classify(&schema.Column{Name: "title", DataType: "VARCHAR"}, false)
	if plain.Params != "" {
		t.Errorf("Expected no params for VARCHAR, got %s", plain.Params)
	}
}

func TestRole_String(t *testing.T) {
	if got := laravel.RoleMorphID.String(); got != "morph-id" {
		t.Errorf("Expected morph-id, got %s", got)
	}
	if got := laravel.Role(99).String(); got != "unknown" {
		t.Errorf("Expected unknown, got %s", got)
	}
}

func TestClassify_AlwaysYieldsMethodRandom(t *testing.T) {
	faker := gofakeit.New(3)
	types := []string{"INT", "BIGINT", "TINYINT", "SMALLINT", "VARCHAR", "CHAR", "TEXT", "ENUM", "DECIMAL", "TIMESTAMP", "POINT", "XML"}

	for run := 0; run < 200; run++ {
		col := &schema.Column{
			Name:     faker.Word(),
			DataType: types[faker.Number(0, len(types)-1)],
			Length:   faker.Number(0, 300),
		}
		if faker.Bool() {
			col.Flags = []string{"UNSIGNED"}
		}
		if faker.Bool() {
			col.Default = strconv.Itoa(faker.Number(0, 2))
		}

		c := laravel.Classify(col, faker.Bool())
		if !laravel.Known(c.Tag) || c.Method == "" || c.Method != laravel.Method(c.Tag) {
			t.Errorf("run %d: %+v classified as %+v", run, col, c)
		}
	}
}
