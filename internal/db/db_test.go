package db

import (
	"bytes"
	"errors"
	"log"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"
)

func TestOpen_AppliesMigrations(t *testing.T) {
	d, err := Open(DriverSQLite, "file:dbopen?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = Close(d) })

	for _, table := range []string{"users", "blog_posts", "comments"} {
		if !d.Migrator().HasTable(table) {
			t.Fatalf("table %s missing after migrations", table)
		}
	}
	versions, err := AppliedVersions(d)
	if err != nil {
		t.Fatalf("applied versions: %v", err)
	}
	if len(versions) == 0 || versions[0] != 1 {
		t.Fatalf("unexpected versions: %v", versions)
	}
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "instance", "blog.db")
	d, err := Open(DriverSQLite, path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := Close(d); err != nil {
		t.Fatalf("close: %v", err)
	}
	d, err = Open(DriverSQLite, path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	t.Cleanup(func() { _ = Close(d) })
	versions, err := AppliedVersions(d)
	if err != nil || len(versions) != 1 {
		t.Fatalf("versions=%v err=%v", versions, err)
	}
}

func TestOpen_EnforcesForeignKeys(t *testing.T) {
	d, err := Open(DriverSQLite, "file:dbfk?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = Close(d) })

	err = d.Exec(`INSERT INTO blog_posts (title, subtitle, date, body, author_id) VALUES ('t', 's', 'd', 'b', 999)`).Error
	if err == nil {
		t.Fatalf("expected foreign key violation for missing author")
	}
}

func TestRollbackLast(t *testing.T) {
	d, err := Open(DriverSQLite, "file:dbrollback?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = Close(d) })

	if err := RollbackLast(d); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if d.Migrator().HasTable("blog_posts") {
		t.Fatalf("blog_posts should be dropped")
	}
	versions, err := AppliedVersions(d)
	if err != nil || len(versions) != 0 {
		t.Fatalf("versions=%v err=%v", versions, err)
	}
	// Nothing left to roll back.
	if err := RollbackLast(d); err != nil {
		t.Fatalf("second rollback: %v", err)
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := Open("oracle", "x"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLogger_SkipsMissingRowsAndHidesValues(t *testing.T) {
	d, err := Open(DriverSQLite, "file:dblogger?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = Close(d) })

	var buf bytes.Buffer
	tx := d.Session(&gorm.Session{Logger: newLogger(log.New(&buf, "", 0))})

	var row struct{ ID int64 }
	err = tx.Table("users").Where("email = ?", "nobody@example.com").Take(&row).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("missing row should not be logged: %q", buf.String())
	}

	insert := `INSERT INTO users (name, email, password, role) VALUES (?, ?, ?, ?)`
	if err := tx.Exec(insert, "A", "a@example.com", "hash-secret", "user").Error; err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := tx.Exec(insert, "B", "a@example.com", "hash-secret", "user").Error; err == nil {
		t.Fatalf("expected unique violation")
	}
	out := buf.String()
	if out == "" {
		t.Fatalf("failed statement should be logged")
	}
	if strings.Contains(out, "hash-secret") || strings.Contains(out, "a@example.com") {
		t.Fatalf("bound values leaked into the log: %q", out)
	}
}
