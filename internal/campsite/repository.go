package campsite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Repository provides CRUD operations for campsites.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a campsite repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const selectColumns = `id, name, description, image, featured, created_at`

// Insert adds a new campsite and returns it with its generated ID.
func (r *Repository) Insert(c *Campsite) (*Campsite, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return nil, fmt.Errorf("campsite name is required")
	}

	result, err := r.db.Exec(
		"INSERT INTO campsites (name, description, image, featured) VALUES (?, ?, ?, ?)",
		name, c.Description, c.Image, boolToInt(c.Featured),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting campsite: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	return r.GetByID(id)
}

// Upsert inserts a campsite or updates the one with the same name.
func (r *Repository) Upsert(c *Campsite) (*Campsite, error) {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return nil, fmt.Errorf("campsite name is required")
	}

	_, err := r.db.Exec(
		`INSERT INTO campsites (name, description, image, featured) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET description = excluded.description, image = excluded.image, featured = excluded.featured`,
		name, c.Description, c.Image, boolToInt(c.Featured),
	)
	if err != nil {
		return nil, fmt.Errorf("upserting campsite %q: %w", name, err)
	}

	row := r.db.QueryRow(fmt.Sprintf("SELECT %s FROM campsites WHERE name = ?", selectColumns), name)
	saved, err := scanCampsite(row)
	if err != nil {
		return nil, fmt.Errorf("reading back campsite %q: %w", name, err)
	}
	return saved, nil
}

// GetByID returns a campsite by its ID. Missing campsites yield ErrNotFound.
func (r *Repository) GetByID(id int64) (*Campsite, error) {
	query := fmt.Sprintf("SELECT %s FROM campsites WHERE id = ?", selectColumns)
	c, err := scanCampsite(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("campsite %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying campsite %d: %w", id, err)
	}
	return c, nil
}

// ListOptions controls filtering for List.
type ListOptions struct {
	FeaturedOnly bool
}

// List returns campsites in ID order, optionally filtered.
func (r *Repository) List(opts ListOptions) ([]*Campsite, error) {
	query := fmt.Sprintf("SELECT %s FROM campsites", selectColumns)
	if opts.FeaturedOnly {
		query += " WHERE featured = 1"
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing campsites: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	campsites := make([]*Campsite, 0)
	for rows.Next() {
		c, err := scanCampsite(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning campsite: %w", err)
		}
		campsites = append(campsites, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating campsites: %w", err)
	}

	return campsites, nil
}

// Delete removes a campsite by ID. Comments cascade.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM campsites WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting campsite: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("campsite %d: %w", id, ErrNotFound)
	}

	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
