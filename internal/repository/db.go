// Package repository implements PostgreSQL data access for rates, users, products and orders.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"jewelstore/internal/config"
)

const (
	applicationName = "jewelstore"
	connectAttempts = 5
)

// NewPostgresDB opens a pgx-backed *sql.DB and waits until the server answers a ping.
// The database may still be starting, so the ping is retried with a growing delay
// until ctx is done or the attempts run out.
func NewPostgresDB(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, error) {
	connCfg, err := pgx.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse database DSN: %w", err)
	}
	connCfg.RuntimeParams["application_name"] = applicationName

	db := stdlib.OpenDB(*connCfg)
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeSec) * time.Second)

	delay := 500 * time.Millisecond
	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return db, nil
		}
		if attempt == connectAttempts {
			break
		}
		select {
		case <-ctx.Done():
			_ = db.Close()
			return nil, fmt.Errorf("unable to connect to database: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}
	_ = db.Close()
	return nil, fmt.Errorf("unable to connect to database after %d attempts: %w", connectAttempts, err)
}
