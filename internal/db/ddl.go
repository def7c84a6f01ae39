package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"
)

// Column is a column definition for CreateTable.
type Column struct {
	Name string
	Type string
}

// CreateTable creates schema (when set) and table if they do not exist.
// Existing tables are left as they are.
func CreateTable(ctx context.Context, q Querier, schema, table string, columns []Column) error {
	if len(columns) == 0 {
		return eris.Errorf("db: create table %s: no columns", table)
	}

	if schema != "" {
		sql := "CREATE SCHEMA IF NOT EXISTS " + pgx.Identifier{schema}.Sanitize()
		if _, err := q.Exec(ctx, sql); err != nil {
			return eris.Wrapf(err, "db: create schema %s", schema)
		}
	}

	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = fmt.Sprintf("%s %s", pgx.Identifier{c.Name}.Sanitize(), c.Type)
	}
	ident := Identifier(schema, table)
	sql := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", ident.Sanitize(), strings.Join(defs, ", "))
	if _, err := q.Exec(ctx, sql); err != nil {
		return eris.Wrapf(err, "db: create table %s", displayName(ident))
	}
	return nil
}
