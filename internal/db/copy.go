// Package db holds the PostgreSQL helpers used to load feature tables.
package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

// Identifier builds a table identifier, schema-qualified when schema is set.
func Identifier(schema, table string) pgx.Identifier {
	if schema == "" {
		return pgx.Identifier{table}
	}
	return pgx.Identifier{schema, table}
}

// CopyRows loads rows into schema.table with the COPY protocol. An empty
// schema targets the search path.
func CopyRows(ctx context.Context, q Querier, schema, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	ident := Identifier(schema, table)
	n, err := q.CopyFrom(ctx, ident, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return 0, eris.Wrapf(err, "db: COPY INTO %s", displayName(ident))
	}
	return n, nil
}

func displayName(ident pgx.Identifier) string {
	return strings.Join(ident, ".")
}
