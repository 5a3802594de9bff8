package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"agency-forms/internal/config"

	_ "github.com/lib/pq"
	"go.uber.org/fx"
)

// PostgresDB is the read-only connection to the policy tracking database.
type PostgresDB struct {
	DB *sql.DB
}

// NewPostgres opens the policies database. The connection is verified lazily so the
// form engine can start while the policy database is unavailable.
func NewPostgres(lc fx.Lifecycle, cfg *config.Config) (*PostgresDB, error) {
	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			if err := db.PingContext(pingCtx); err != nil {
				log.Printf("Policy database unavailable at startup: %v", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})

	return &PostgresDB{DB: db}, nil
}

// Ping tests the policies database connection
func (p *PostgresDB) Ping(ctx context.Context) error {
	if err := p.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("postgres ping failed: %w", err)
	}
	return nil
}
