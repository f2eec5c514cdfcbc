package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store persists the platform state in Postgres. The engine remains the
// source of truth at runtime; the store records every committed mutation and
// rebuilds a snapshot at boot.
type Store struct {
	Pool *pgxpool.Pool
}

func NewStore(ctx context.Context, connString string) (*Store, error) {
	if err := runMigrations(connString); err != nil {
		return nil, fmt.Errorf("migrations failed: %w", err)
	}

	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return &Store{Pool: pool}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}

// runMigrations applies the embedded schema migrations. sql-migrate drives a
// database/sql connection, so this opens a short-lived lib/pq conn next to
// the pgx pool.
func runMigrations(connString string) error {
	db, err := sql.Open("postgres", connString)
	if err != nil {
		return fmt.Errorf("open migration conn: %w", err)
	}
	defer db.Close()

	source := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFS,
		Root:       "migrations",
	}
	n, err := migrate.Exec(db, "postgres", source, migrate.Up)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	if n > 0 {
		log.Printf("Applied %d database migrations", n)
	}
	return nil
}
