package database

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

const (
	pgInvalidCatalogName = "3D000"
	pgDuplicateDatabase  = "42P04"
	pgMaintenanceDB      = "postgres"
)

// Provisioner makes sure the database exists and carries the schema before
// the service takes traffic. Every step is safe to repeat.
type Provisioner struct {
	fs  afero.Fs
	log *log.Logger
}

func NewProvisioner(fs afero.Fs, l *log.Logger) *Provisioner {
	return &Provisioner{fs: fs, log: l}
}

// Provision creates the database if missing, connects and migrates models.
// The returned handle stays open; the caller closes it.
func (p *Provisioner) Provision(ctx context.Context, dsn string, models ...any) (*gorm.DB, error) {
	if err := p.EnsureDatabase(ctx, dsn); err != nil {
		return nil, err
	}

	db, err := Connect(dsn, p.log)
	if err != nil {
		return nil, fmt.Errorf("db connect failed: %w", err)
	}
	if err := Migrate(ctx, db, models...); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}
	return db, nil
}

func Migrate(ctx context.Context, db *gorm.DB, models ...any) error {
	if len(models) == 0 {
		return nil
	}
	if err := db.WithContext(ctx).AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}
	return nil
}

func (p *Provisioner) EnsureDatabase(ctx context.Context, dsn string) error {
	if IsPostgres(dsn) {
		return p.ensurePostgres(ctx, dsn)
	}
	return p.ensureSQLite(dsn)
}

func (p *Provisioner) ensurePostgres(ctx context.Context, dsn string) error {
	conn, err := pgx.Connect(ctx, dsn)
	if err == nil {
		return conn.Close(ctx)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgInvalidCatalogName {
		return fmt.Errorf("postgres connect failed: %w", err)
	}

	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("invalid postgres dsn: %w", err)
	}
	adminDSN, err := maintenanceDSN(dsn)
	if err != nil {
		return err
	}

	admin, err := pgx.Connect(ctx, adminDSN)
	if err != nil {
		return fmt.Errorf("postgres maintenance connect failed: %w", err)
	}
	defer admin.Close(ctx)

	_, err = admin.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{cfg.Database}.Sanitize())
	if errors.As(err, &pgErr) && pgErr.Code == pgDuplicateDatabase {
		return nil
	}
	if err != nil {
		return fmt.Errorf("create database %q failed: %w", cfg.Database, err)
	}

	p.log.Info("database created", "name", cfg.Database)
	return nil
}

// maintenanceDSN points dsn at the postgres maintenance database.
func maintenanceDSN(dsn string) (string, error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return "", fmt.Errorf("invalid postgres dsn: %w", err)
	}
	u.Path = "/" + pgMaintenanceDB
	return u.String(), nil
}

func (p *Provisioner) ensureSQLite(dsn string) error {
	path, ok := sqliteFilePath(dsn)
	if !ok {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := p.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	return nil
}

// sqliteFilePath extracts the on-disk path from a SQLite DSN. In-memory
// databases have none.
func sqliteFilePath(dsn string) (string, bool) {
	path := strings.TrimPrefix(dsn, "file:")
	path, query, _ := strings.Cut(path, "?")
	if path == "" || path == ":memory:" || strings.Contains(query, "mode=memory") {
		return "", false
	}
	return path, true
}
