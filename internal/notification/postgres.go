package notification

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrateInbox applies the inbox schema to the database at postgresURL.
func MigrateInbox(postgresURL string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, postgresURL)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer func() { _, _ = m.Close() }()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// PostgresInbox keeps claims in the notification_inbox table, surviving restarts.
type PostgresInbox struct {
	db *sql.DB
}

func NewPostgresInbox(db *sql.DB) *PostgresInbox {
	return &PostgresInbox{db: db}
}

func (i *PostgresInbox) Claim(ctx context.Context, orderID string) (bool, error) {
	res, err := i.db.ExecContext(ctx, `
		INSERT INTO notification_inbox (order_id, claimed_at)
		VALUES ($1, now())
		ON CONFLICT (order_id) DO NOTHING
	`, orderID)
	if err != nil {
		return false, fmt.Errorf("claim order %s: %w", orderID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("claim order %s: %w", orderID, err)
	}
	return n == 1, nil
}

func (i *PostgresInbox) Release(ctx context.Context, orderID string) error {
	if _, err := i.db.ExecContext(ctx, `DELETE FROM notification_inbox WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("release order %s: %w", orderID, err)
	}
	return nil
}
