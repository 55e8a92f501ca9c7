package store

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Sternrassler/player-stats-etl/pkg/normalize"
	"github.com/jackc/pgx/v5"
)

// DefaultTable is the table loaded when none is configured.
const DefaultTable = "player_stats"

// ErrInvalidTableName is returned for table names that are not plain identifiers.
var ErrInvalidTableName = errors.New("invalid table name")

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// ParseTableName validates name as "table" or "schema.table".
func ParseTableName(name string) (pgx.Identifier, error) {
	if name == "" {
		name = DefaultTable
	}

	parts := strings.Split(name, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTableName, name)
	}
	for _, p := range parts {
		if !identPattern.MatchString(p) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTableName, name)
		}
	}
	return pgx.Identifier(parts), nil
}

// sqlType maps a column kind to its PostgreSQL type.
func sqlType(k normalize.Kind) string {
	switch k {
	case normalize.KindInt:
		return "BIGINT"
	case normalize.KindFloat:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}

// CreateTableSQL renders the DDL for table from normalize.Columns.
func CreateTableSQL(table pgx.Identifier) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(table.Sanitize())
	b.WriteString(" (\n")
	for i, col := range normalize.Columns {
		b.WriteString("\t")
		b.WriteString(pgx.Identifier{col.Name}.Sanitize())
		b.WriteString(" ")
		b.WriteString(sqlType(col.Kind))
		b.WriteString(" NOT NULL")
		if i < len(normalize.Columns)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString(")")
	return b.String()
}
