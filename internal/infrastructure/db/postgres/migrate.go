package postgres

import (
	"context"
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema names match the files under schema/.
const (
	SchemaReservations = "reservations"
	SchemaUsers        = "users"
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Migrate applies the named schema. The DDL only uses IF NOT EXISTS
// statements, so running it against an existing database is a no-op.
func Migrate(ctx context.Context, db *sqlx.DB, schema string) error {
	ddl, err := schemaFS.ReadFile("schema/" + schema + ".sql")
	if err != nil {
		return fmt.Errorf("unknown schema %q: %w", schema, err)
	}
	if _, err := db.ExecContext(ctx, string(ddl)); err != nil {
		return fmt.Errorf("apply schema %q: %w", schema, err)
	}
	return nil
}
