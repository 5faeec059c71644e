package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"go-basic-tasks/backend/internal/database/migrations"
)

func prepareGoose() error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("mysql"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return nil
}

// MigrateUp は未適用のマイグレーションをすべて適用します。
func MigrateUp(ctx context.Context, db *sqlx.DB) error {
	if err := prepareGoose(); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, db.DB, "."); err != nil {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// MigrateDown は直近のマイグレーションを 1 つ取り消します。
func MigrateDown(ctx context.Context, db *sqlx.DB) error {
	if err := prepareGoose(); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, db.DB, "."); err != nil {
		return fmt.Errorf("migration down failed: %w", err)
	}
	return nil
}

// MigrationStatus は各マイグレーションの適用状況をログに出力します。
func MigrationStatus(ctx context.Context, db *sqlx.DB) error {
	if err := prepareGoose(); err != nil {
		return err
	}
	return goose.StatusContext(ctx, db.DB, ".")
}
