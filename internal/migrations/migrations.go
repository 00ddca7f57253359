// Package migrations owns the database schema. SQL files are embedded and the
// table prefix is substituted at read time, so dev/test/prod tables can live
// in the same database the way TABLE_PREFIX expects.
package migrations

import (
	"bytes"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
)

//go:embed sql/*.sql
var files embed.FS

const placeholder = "{{prefix}}"

// prefixedSource rewrites the placeholder in every migration body.
type prefixedSource struct {
	source.Driver
	prefix string
}

// Source returns the embedded migrations with prefix applied.
func Source(prefix string) (source.Driver, error) {
	base, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	return &prefixedSource{Driver: base, prefix: prefix}, nil
}

func (s *prefixedSource) ReadUp(version uint) (io.ReadCloser, string, error) {
	r, id, err := s.Driver.ReadUp(version)
	if err != nil {
		return nil, "", err
	}
	return s.rewrite(r, id)
}

func (s *prefixedSource) ReadDown(version uint) (io.ReadCloser, string, error) {
	r, id, err := s.Driver.ReadDown(version)
	if err != nil {
		return nil, "", err
	}
	return s.rewrite(r, id)
}

func (s *prefixedSource) rewrite(r io.ReadCloser, id string) (io.ReadCloser, string, error) {
	defer r.Close()
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read migration %s: %w", id, err)
	}
	out := strings.ReplaceAll(string(body), placeholder, s.prefix)
	return io.NopCloser(bytes.NewReader([]byte(out))), id, nil
}

// Migrator runs schema migrations against one database.
type Migrator struct {
	m  *migrate.Migrate
	db *sql.DB
}

// New opens dbURL through the pgx stdlib driver. The version table is
// prefixed like the application tables.
func New(dbURL, prefix string, logger *slog.Logger) (*Migrator, error) {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{
		MigrationsTable: prefix + "schema_migrations",
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	src, err := Source(prefix)
	if err != nil {
		db.Close()
		return nil, err
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("migration init: %w", err)
	}
	m.Log = &slogAdapter{logger: logger}

	return &Migrator{m: m, db: db}, nil
}

// Up applies all pending migrations. Being current is not an error.
func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down rolls back the given number of migrations.
func (m *Migrator) Down(steps int) error {
	if steps < 1 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	if err := m.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Version reports the applied version. An empty database is version 0.
func (m *Migrator) Version() (uint, bool, error) {
	version, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration version: %w", err)
	}
	return version, dirty, nil
}

func (m *Migrator) Close() error {
	srcErr, dbErr := m.m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}

type slogAdapter struct {
	logger *slog.Logger
}

func (a *slogAdapter) Printf(format string, v ...any) {
	a.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (a *slogAdapter) Verbose() bool {
	return false
}
