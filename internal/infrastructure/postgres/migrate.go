package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Migrate crea las tablas de agregados si no existen.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	return NewTxRunner(pool).Run(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, schemaSQL); err != nil {
			return fmt.Errorf("aplicar esquema: %w", err)
		}
		return nil
	})
}
