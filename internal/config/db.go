package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DBDSN assembles a postgres DSN from the DB_* environment variables.
func DBDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		GetString("DB_USERNAME", "postgres"),
		GetString("DB_PASSWORD", "postgres"),
		GetString("DB_HOST", "localhost"),
		GetInt("DB_PORT", 5432),
		GetString("DB_NAME", "identity"),
		GetString("DB_SSLMODE", "disable"),
	)
}

// NewDB opens a postgres connection pool via the pgx stdlib driver and
// verifies connectivity with an early ping so startup fails fast.
func NewDB(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("empty DB DSN")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(GetInt("DB_MAX_OPEN_CONNS", 20))
	db.SetMaxIdleConns(GetInt("DB_MAX_IDLE_CONNS", 10))
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(60 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
