package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// DB wraps both GORM and sql.DB for the local state database
type DB struct {
	*sql.DB
	GORM *gorm.DB
	URL  string
}

// NewDB opens the state database, applying pending migrations first.
// Supported URLs: sqlite:///path/to/state.db and postgres://...
func NewDB(stateURL string) (*DB, error) {
	if stateURL == "" {
		return nil, errors.New("state database URL is empty")
	}

	if err := prepareSQLiteDir(stateURL); err != nil {
		return nil, err
	}

	if err := MigrateUp(stateURL); err != nil {
		return nil, err
	}

	dialector, err := dialectorFor(stateURL)
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open state database: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if isSQLite(stateURL) {
		// single writer; avoids SQLITE_BUSY between concurrent commands
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(5)
		sqlDB.SetMaxIdleConns(2)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping state database: %w", err)
	}

	log.Debug().Str("url", MaskURL(stateURL)).Msg("state database connected")
	return &DB{DB: sqlDB, GORM: gormDB, URL: stateURL}, nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// NewMigrator returns a golang-migrate instance bound to the embedded migrations.
func NewMigrator(stateURL string) (*migrate.Migrate, error) {
	if err := prepareSQLiteDir(stateURL); err != nil {
		return nil, err
	}

	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, stateURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// MigrateUp applies all pending migrations.
func MigrateUp(stateURL string) error {
	m, err := NewMigrator(stateURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// MaskURL hides credentials in a database URL for logging
func MaskURL(raw string) string {
	at := strings.LastIndex(raw, "@")
	scheme := strings.Index(raw, "://")
	if at < 0 || scheme < 0 || at < scheme {
		return raw
	}
	return raw[:scheme+3] + "***" + raw[at:]
}

func dialectorFor(stateURL string) (gorm.Dialector, error) {
	switch {
	case isSQLite(stateURL):
		dsn := sqlitePath(stateURL)
		if !strings.Contains(dsn, "?") {
			dsn += "?_pragma=busy_timeout(5000)"
		}
		return sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), nil
	case strings.HasPrefix(stateURL, "postgres://"), strings.HasPrefix(stateURL, "postgresql://"):
		return postgres.Open(stateURL), nil
	default:
		return nil, fmt.Errorf("unsupported state database URL: %s", MaskURL(stateURL))
	}
}

func isSQLite(stateURL string) bool {
	return strings.HasPrefix(stateURL, "sqlite://")
}

func sqlitePath(stateURL string) string {
	return strings.TrimPrefix(stateURL, "sqlite://")
}

func prepareSQLiteDir(stateURL string) error {
	if !isSQLite(stateURL) {
		return nil
	}
	path := sqlitePath(stateURL)
	if i := strings.Index(path, "?"); i >= 0 {
		path = path[:i]
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create state directory: %w", err)
		}
	}
	return nil
}
