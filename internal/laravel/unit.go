package laravel

import (
	"fmt"
	"strings"
)

const statementIndent = "            "

// MigrationUnit is the rendered migration of one table.
type MigrationUnit struct {
	Table string
	Up    []string // Blueprint statements, unindented
	Down  string

	// TimestampMismatch is set when created_at and updated_at disagree on
	// nullability but were still collapsed into timestamps().
	TimestampMismatch bool
}

const migrationTemplate = `<?php

use Illuminate\Database\Migrations\Migration;
use Illuminate\Database\Schema\Blueprint;
use Illuminate\Support\Facades\Schema;

return new class extends Migration
{
    /**
     * Run the migrations.
     */
    public function up(): void
    {
        Schema::create('%s', function (Blueprint $table) {
%s
        });
    }

    /**
     * Reverse the migrations.
     */
    public function down(): void
    {
        %s
    }
};
`

// Text renders the complete PHP migration file.
func (u *MigrationUnit) Text() string {
	lines := make([]string, len(u.Up))
	for i, stmt := range u.Up {
		lines[i] = statementIndent + stmt
	}
	return fmt.Sprintf(migrationTemplate, u.Table, strings.Join(lines, "\n"), u.Down)
}

// FileSuffix is the part of the artifact name that identifies the table,
// e.g. create_users_table.php.
func (u *MigrationUnit) FileSuffix() string {
	return "create_" + u.Table + "_table.php"
}
