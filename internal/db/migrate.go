package db

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

//go:embed schema.sql
var SchemaSQL string

// migrationLockID serializes concurrent migrations of several instances.
const migrationLockID = 7_245_001

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Migrate applies the embedded schema in one transaction.
// Every statement in it is idempotent.
func Migrate(ctx context.Context, db txBeginner) error {
	err := pgx.BeginFunc(ctx, db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", migrationLockID); err != nil {
			return fmt.Errorf("acquire migration lock: %w", err)
		}
		if _, err := tx.Exec(ctx, SchemaSQL); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Debugln("db schema migrated")
	return nil
}
