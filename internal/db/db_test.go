package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "creates new database",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "nucamp.db")
			},
		},
		{
			name: "creates nested directories",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "a", "b", "nucamp.db")
			},
		},
		{
			name: "opens existing database",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "nucamp.db")
				d, err := Open(path)
				if err != nil {
					t.Fatalf("setup: %v", err)
				}
				if err := d.Close(); err != nil {
					t.Fatalf("setup close: %v", err)
				}
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			d, err := Open(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer func() {
				if err := d.Close(); err != nil {
					t.Errorf("close: %v", err)
				}
			}()

			if _, err := os.Stat(path); os.IsNotExist(err) {
				t.Error("database file was not created")
			}
		})
	}
}

func TestWALMode(t *testing.T) {
	d := openTestDB(t)

	var mode string
	if err := d.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want %q", mode, "wal")
	}
}

func TestForeignKeys(t *testing.T) {
	d := openTestDB(t)

	var fk int
	if err := d.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestSettingsApplyToEveryConnection(t *testing.T) {
	d := openTestDB(t)
	ctx := context.Background()

	// Hold two connections at once so the pool cannot hand back the same one.
	conn1, err := d.Conn(ctx)
	if err != nil {
		t.Fatalf("conn1: %v", err)
	}
	defer func() {
		if err := conn1.Close(); err != nil {
			t.Errorf("close conn1: %v", err)
		}
	}()
	conn2, err := d.Conn(ctx)
	if err != nil {
		t.Fatalf("conn2: %v", err)
	}
	defer func() {
		if err := conn2.Close(); err != nil {
			t.Errorf("close conn2: %v", err)
		}
	}()

	for i, c := range []*sql.Conn{conn1, conn2} {
		var fk, timeout int
		if err := c.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk); err != nil {
			t.Fatalf("conn%d foreign_keys: %v", i+1, err)
		}
		if fk != 1 {
			t.Errorf("conn%d foreign_keys = %d, want 1", i+1, fk)
		}
		if err := c.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout); err != nil {
			t.Fatalf("conn%d busy_timeout: %v", i+1, err)
		}
		if timeout != BusyTimeoutMS {
			t.Errorf("conn%d busy_timeout = %d, want %d", i+1, timeout, BusyTimeoutMS)
		}
	}

	_, err = conn2.ExecContext(ctx,
		`INSERT INTO comments (campsite_id, rating, author, text) VALUES (?, ?, ?, ?)`,
		9999, 3, "Tester", "orphan")
	if err == nil {
		t.Error("expected foreign key error for comment on missing campsite")
	}
}

func TestMigrations(t *testing.T) {
	tests := []struct {
		name  string
		table string
		cols  []string
	}{
		{
			name:  "campsites table exists",
			table: "campsites",
			cols:  []string{"id", "name", "description", "image", "featured", "created_at"},
		},
		{
			name:  "comments table exists",
			table: "comments",
			cols:  []string{"id", "campsite_id", "rating", "author", "text", "created_at"},
		},
	}

	d := openTestDB(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := tableColumns(t, d, tt.table)
			if len(cols) != len(tt.cols) {
				t.Fatalf("got %d columns, want %d: %v", len(cols), len(tt.cols), cols)
			}
			for i, want := range tt.cols {
				if cols[i] != want {
					t.Errorf("column %d = %q, want %q", i, cols[i], want)
				}
			}
		})
	}
}

func TestRatingConstraint(t *testing.T) {
	d := openTestDB(t)
	campID := insertCampsite(t, d, "React Lake Campground")

	insert := `INSERT INTO comments (campsite_id, rating, author, text) VALUES (?, ?, ?, ?)`

	tests := []struct {
		name    string
		rating  int
		wantErr bool
	}{
		{"rating 1 is valid", 1, false},
		{"rating 5 is valid", 5, false},
		{"rating 0 is invalid", 0, true},
		{"rating 6 is invalid", 6, true},
		{"rating -1 is invalid", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Exec(insert, campID, tt.rating, "Tester", "text")
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestUniqueCampsiteName(t *testing.T) {
	d := openTestDB(t)
	insertCampsite(t, d, "Chrome River")

	_, err := d.Exec(`INSERT INTO campsites (name) VALUES (?)`, "Chrome River")
	if err == nil {
		t.Error("expected unique constraint error")
	}
}

func TestCascadeDelete(t *testing.T) {
	d := openTestDB(t)
	campID := insertCampsite(t, d, "Breadcrumb Trail Campground")

	for i := 0; i < 3; i++ {
		_, err := d.Exec(
			`INSERT INTO comments (campsite_id, rating, author, text) VALUES (?, ?, ?, ?)`,
			campID, 3, "Tester", fmt.Sprintf("comment %d", i),
		)
		if err != nil {
			t.Fatalf("insert comment %d: %v", i, err)
		}
	}

	var count int
	if err := d.QueryRow(`SELECT COUNT(*) FROM comments WHERE campsite_id = ?`, campID).Scan(&count); err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 comments, got %d", count)
	}

	if _, err := d.Exec(`DELETE FROM campsites WHERE id = ?`, campID); err != nil {
		t.Fatalf("delete campsite: %v", err)
	}

	if err := d.QueryRow(`SELECT COUNT(*) FROM comments WHERE campsite_id = ?`, campID).Scan(&count); err != nil {
		t.Fatalf("count comments after delete: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 comments after cascade delete, got %d", count)
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nucamp.db")

	// Open twice; migrations should not fail on second run
	d1, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := d1.Close(); err != nil {
		t.Fatalf("first close: %v", err)
	}

	d2, err := Open(path)
	if err != nil {
		t.Fatalf("second open (idempotency): %v", err)
	}
	if err := d2.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := DefaultPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Base(p) != "nucamp.db" {
		t.Errorf("expected filename nucamp.db, got %s", filepath.Base(p))
	}

	dir := filepath.Base(filepath.Dir(p))
	if dir != ".nucamp" {
		t.Errorf("expected directory .nucamp, got %s", dir)
	}
}

// openTestDB creates a temporary database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nucamp.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close test db: %v", err)
		}
	})
	return d
}

func insertCampsite(t *testing.T, d *sql.DB, name string) int64 {
	t.Helper()
	res, err := d.Exec(`INSERT INTO campsites (name, description, image) VALUES (?, ?, ?)`, name, "desc", "images/x.jpg")
	if err != nil {
		t.Fatalf("insert campsite: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}
	return id
}

// tableColumns returns column names for a table using PRAGMA table_info.
func tableColumns(t *testing.T, d *sql.DB, table string) []string {
	t.Helper()
	rows, err := d.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		t.Fatalf("pragma table_info(%s): %v", table, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			t.Errorf("close rows: %v", err)
		}
	}()

	var cols []string
	for rows.Next() {
		var cid int
		var name, typ string
		var notnull int
		var dflt *string
		var pk int
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			t.Fatalf("scan: %v", err)
		}
		cols = append(cols, name)
	}
	return cols
}
