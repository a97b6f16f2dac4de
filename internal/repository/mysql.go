package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/keremsimsek1907/nova-app/internal/config"
)

const mysqlDuplicateEntry = 1062

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		seq           BIGINT AUTO_INCREMENT PRIMARY KEY,
		id            CHAR(36)     NOT NULL,
		email         VARCHAR(320) NOT NULL,
		password_hash VARCHAR(100) NOT NULL,
		created_at    DATETIME(6)  NOT NULL,
		UNIQUE KEY uq_users_id (id),
		UNIQUE KEY uq_users_email (email)
	)`,
	`CREATE TABLE IF NOT EXISTS items (
		seq        BIGINT AUTO_INCREMENT PRIMARY KEY,
		id         CHAR(36)     NOT NULL,
		owner_id   CHAR(36)     NOT NULL,
		name       VARCHAR(800) NOT NULL,
		created_at DATETIME(6)  NOT NULL,
		UNIQUE KEY uq_items_id (id),
		KEY idx_items_owner (owner_id, seq)
	)`,
}

// NewDB creates a MySQL connection pool and verifies it within timeout.
// Time columns are always parsed into time.Time in UTC.
func NewDB(ctx context.Context, dsn string, timeout time.Duration) (*sql.DB, error) {
	mcfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	mcfg.ParseTime = true
	mcfg.Loc = time.UTC
	if mcfg.Timeout == 0 {
		mcfg.Timeout = timeout
	}

	db, err := sql.Open("mysql", mcfg.FormatDSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("mysql ping: %w", err)
	}

	return db, nil
}

// EnsureSchema creates the users and items tables when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func openMySQL(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	db, err := NewDB(ctx, cfg.MySQLDSN, cfg.ConnectTimeout)
	if err != nil {
		return nil, err
	}

	schemaCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := EnsureSchema(schemaCtx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		Users:  NewMySQLUserRepository(db),
		Items:  NewMySQLItemRepository(db),
		driver: config.DriverMySQL,
		ping:   db.PingContext,
		close: func(context.Context) error {
			return db.Close()
		},
	}, nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
