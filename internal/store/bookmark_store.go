package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Bookmark represents a row in the bookmarks table.
type Bookmark struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	BookmarkURL string    `db:"bookmark_url"`
	Descr       string    `db:"descr"`
	Rating      int       `db:"rating"`
	CreatedAt   time.Time `db:"created_at"`
}

// NewBookmark holds the validated fields for an insert.
type NewBookmark struct {
	Title       string
	BookmarkURL string
	Descr       string
	Rating      int
}

// BookmarkPatch names the columns to change; nil fields are left untouched.
type BookmarkPatch struct {
	Title       *string
	BookmarkURL *string
	Descr       *string
	Rating      *int
}

// Empty reports whether the patch changes no column.
func (p BookmarkPatch) Empty() bool {
	return p.Title == nil && p.BookmarkURL == nil && p.Descr == nil && p.Rating == nil
}

// BookmarkStore is the sqlx-backed implementation of BookmarkStoreIface.
type BookmarkStore struct {
	db *sqlx.DB
}

func NewBookmarkStore(db *sqlx.DB) *BookmarkStore {
	return &BookmarkStore{db: db}
}

// q rebinds ? placeholders to the driver's native format ($1,$2,... for PostgreSQL).
func (s *BookmarkStore) q(query string) string { return s.db.Rebind(query) }

// ListAll returns every bookmark in insertion order.
func (s *BookmarkStore) ListAll(ctx context.Context) ([]*Bookmark, error) {
	bookmarks := []*Bookmark{}
	err := s.db.SelectContext(ctx, &bookmarks, `SELECT * FROM bookmarks ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bookmarks, nil
}

// GetByID returns the bookmark matching id, or ErrNotFound.
func (s *BookmarkStore) GetByID(ctx context.Context, id string) (*Bookmark, error) {
	var b Bookmark
	err := s.db.GetContext(ctx, &b, s.q(`SELECT * FROM bookmarks WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get bookmark %s: %w", id, err)
	}
	return &b, nil
}

// Insert assigns a new id, persists the row and returns it as stored.
func (s *BookmarkStore) Insert(ctx context.Context, nb NewBookmark) (*Bookmark, error) {
	id := uuid.New().String()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, s.q(`
		INSERT INTO bookmarks (id, title, bookmark_url, descr, rating, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`), id, nb.Title, nb.BookmarkURL, nb.Descr, nb.Rating, now)
	if err != nil {
		return nil, fmt.Errorf("insert bookmark: %w", err)
	}
	return s.GetByID(ctx, id)
}

// DeleteByID removes the row and returns how many rows were deleted (0 or 1).
func (s *BookmarkStore) DeleteByID(ctx context.Context, id string) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM bookmarks WHERE id = ?`), id)
	if err != nil {
		return 0, fmt.Errorf("delete bookmark %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete bookmark %s: %w", id, err)
	}
	return n, nil
}

// UpdateByID writes only the columns set in p. It returns ErrNotFound when no
// row matched, which happens when a concurrent delete wins the race.
func (s *BookmarkStore) UpdateByID(ctx context.Context, id string, p BookmarkPatch) error {
	if p.Empty() {
		return nil
	}

	var (
		sets []string
		args []any
	)
	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.BookmarkURL != nil {
		sets = append(sets, "bookmark_url = ?")
		args = append(args, *p.BookmarkURL)
	}
	if p.Descr != nil {
		sets = append(sets, "descr = ?")
		args = append(args, *p.Descr)
	}
	if p.Rating != nil {
		sets = append(sets, "rating = ?")
		args = append(args, *p.Rating)
	}
	args = append(args, id)

	query := `UPDATE bookmarks SET ` + strings.Join(sets, ", ") + ` WHERE id = ?`
	res, err := s.db.ExecContext(ctx, s.q(query), args...)
	if err != nil {
		return fmt.Errorf("update bookmark %s: %w", id, err)
	}
	// Matched rows, not changed rows. db.New enables clientFoundRows for MySQL.
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update bookmark %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
