package comment

import (
	"database/sql"
	"fmt"
)

// Repository provides CRUD operations for comments.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a comment repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Add creates a new comment on a campsite. Field rules are enforced by the
// comment form; the store only rejects what the schema cannot hold.
func (r *Repository) Add(campsiteID int64, rating int, author, text string) (*Comment, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be 1-5, got %d", rating)
	}
	if author == "" {
		return nil, fmt.Errorf("comment author is required")
	}

	result, err := r.db.Exec(
		"INSERT INTO comments (campsite_id, rating, author, text) VALUES (?, ?, ?, ?)",
		campsiteID, rating, author, text,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting insert id: %w", err)
	}

	var c Comment
	err = r.db.QueryRow(
		"SELECT id, campsite_id, rating, author, text, created_at FROM comments WHERE id = ?", id,
	).Scan(&c.ID, &c.CampsiteID, &c.Rating, &c.Author, &c.Text, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("reading back comment: %w", err)
	}

	return &c, nil
}

// ListByCampsiteID returns all comments for a campsite in the order they
// were added. A campsite without comments yields an empty, non-nil slice.
func (r *Repository) ListByCampsiteID(campsiteID int64) ([]*Comment, error) {
	rows, err := r.db.Query(
		"SELECT id, campsite_id, rating, author, text, created_at FROM comments WHERE campsite_id = ? ORDER BY id",
		campsiteID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	comments := make([]*Comment, 0)
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.CampsiteID, &c.Rating, &c.Author, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning comment: %w", err)
		}
		comments = append(comments, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating comments: %w", err)
	}

	return comments, nil
}

// Delete removes a comment by ID.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM comments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("comment %d: %w", id, ErrNotFound)
	}

	return nil
}
