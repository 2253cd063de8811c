package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	stdfs "io/fs"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open opens (or creates) the database and applies pending migrations.
// For sqlite, dsn is a file path or a "file:" URI; for postgres it is a
// connection URL. Migrations are versioned .sql files under
// internal/db/migrations/<driver> following the pattern:
//
//	0001_name.up.sql / 0001_name.down.sql
//
// Only new migrations are applied. Use RollbackLast to revert the last applied migration.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "", DriverSQLite:
		driver = DriverSQLite
		conn, err := openSQLite(dsn)
		if err != nil {
			return nil, err
		}
		dialector = sqlite.New(sqlite.Config{DriverName: "sqlite3", Conn: conn})
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	d, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         newLogger(log.Default()),
	})
	if err != nil {
		return nil, err
	}
	if err := applyMigrations(d, driver); err != nil {
		_ = Close(d)
		return nil, err
	}
	return d, nil
}

// newLogger reports slow queries and real failures. Missing rows are a
// normal lookup result, and bound values (emails, password hashes) stay out
// of the log.
func newLogger(w logger.Writer) logger.Interface {
	return logger.New(w, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		ParameterizedQueries:      true,
	})
}

// Close releases the underlying connection pool.
func Close(d *gorm.DB) error {
	if d == nil {
		return nil
	}
	sqlDB, err := d.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func openSQLite(dsn string) (*sql.DB, error) {
	if dsn == "" {
		dsn = "blog.db"
	}
	memory := strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
	if !memory && !strings.HasPrefix(dsn, "file:") {
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
	}
	// Connection-level pragmas go in the DSN so every pooled connection gets them.
	params := []string{"_foreign_keys=on", "_busy_timeout=5000"}
	if !memory {
		params = append(params, "_journal_mode=WAL")
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	d, err := sql.Open("sqlite3", dsn+sep+strings.Join(params, "&"))
	if err != nil {
		return nil, err
	}
	if memory {
		// An in-memory database lives only as long as one of its connections.
		d.SetMaxOpenConns(1)
	}
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, err
	}
	return d, nil
}

// RollbackLast rolls back the most recently applied migration, if its down script exists.
func RollbackLast(d *gorm.DB) error {
	if d == nil {
		return errors.New("nil db")
	}
	if err := ensureMigrationsTable(d); err != nil {
		return err
	}
	var versions []int
	if err := d.Raw(`SELECT version FROM schema_migrations ORDER BY version DESC LIMIT 1`).Scan(&versions).Error; err != nil {
		return err
	}
	if len(versions) == 0 {
		return nil // nothing to rollback
	}
	version := versions[0]
	migs, err := loadMigrations(d.Dialector.Name())
	if err != nil {
		return err
	}
	m, ok := migs[version]
	if !ok || m.downFile == "" {
		return fmt.Errorf("no down migration found for version %d", version)
	}
	sqlText, err := migrationsFS.ReadFile(m.downFile)
	if err != nil {
		return err
	}
	return run(d, string(sqlText), `DELETE FROM schema_migrations WHERE version = ?`, version)
}

//go:embed migrations/*/*.sql
var migrationsFS embed.FS

type migration struct {
	version  int
	name     string
	upFile   string // path inside embedded FS
	downFile string // path inside embedded FS
}

var migFileRe = regexp.MustCompile(`^([0-9]{4})_(.+)\.(up|down)\.sql$`)

func loadMigrations(dialect string) (map[int]migration, error) {
	entries := map[int]migration{}
	dir := "migrations/" + dialect
	list, err := stdfs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("no migrations for dialect %q: %w", dialect, err)
	}
	for _, de := range list {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		m := migFileRe.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		verStr, migName, kind := m[1], m[2], m[3]
		var ver int
		if _, err := fmt.Sscanf(verStr, "%04d", &ver); err != nil {
			continue
		}
		item := entries[ver]
		item.version = ver
		item.name = migName
		p := dir + "/" + name
		if kind == "up" {
			item.upFile = p
		} else {
			item.downFile = p
		}
		entries[ver] = item
	}
	return entries, nil
}

func ensureMigrationsTable(d *gorm.DB) error {
	return d.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
        version INTEGER PRIMARY KEY,
        applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
    )`).Error
}

func appliedVersions(d *gorm.DB) (map[int]bool, error) {
	if err := ensureMigrationsTable(d); err != nil {
		return nil, err
	}
	var versions []int
	if err := d.Raw(`SELECT version FROM schema_migrations`).Scan(&versions).Error; err != nil {
		return nil, err
	}
	got := make(map[int]bool, len(versions))
	for _, v := range versions {
		got[v] = true
	}
	return got, nil
}

// AppliedVersions returns the applied migration versions in ascending order.
func AppliedVersions(d *gorm.DB) ([]int, error) {
	applied, err := appliedVersions(d)
	if err != nil {
		return nil, err
	}
	out := make([]int, 0, len(applied))
	for v := range applied {
		out = append(out, v)
	}
	sort.Ints(out)
	return out, nil
}

func applyMigrations(d *gorm.DB, dialect string) error {
	migs, err := loadMigrations(dialect)
	if err != nil {
		return err
	}
	applied, err := appliedVersions(d)
	if err != nil {
		return err
	}
	// order versions
	versions := make([]int, 0, len(migs))
	for v := range migs {
		versions = append(versions, v)
	}
	sort.Ints(versions)
	for _, v := range versions {
		if applied[v] {
			continue
		}
		m := migs[v]
		if strings.TrimSpace(m.upFile) == "" {
			return fmt.Errorf("missing up migration for version %04d", v)
		}
		sqlText, err := migrationsFS.ReadFile(m.upFile)
		if err != nil {
			return err
		}
		if err := run(d, string(sqlText), `INSERT INTO schema_migrations(version) VALUES(?)`, v); err != nil {
			return fmt.Errorf("migration %04d (%s) failed: %w", v, m.name, err)
		}
	}
	return nil
}

// run executes a migration script followed by its bookkeeping statement,
// inside one transaction unless the script opts out with "-- NO_TX".
func run(d *gorm.DB, script, bookkeeping string, version int) error {
	if strings.HasPrefix(strings.TrimSpace(script), "-- NO_TX") {
		if err := d.Exec(script).Error; err != nil {
			return err
		}
		return d.Exec(bookkeeping, version).Error
	}
	return d.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(script).Error; err != nil {
			return err
		}
		return tx.Exec(bookkeeping, version).Error
	})
}
