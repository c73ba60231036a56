// Package bookmarks holds the bookmark domain rules: input validation,
// output sanitizing, and the service that composes them with the store.
package bookmarks

import (
	"context"
	"errors"
	"fmt"

	"github.com/joestump/bookmarks/internal/logger"
	"github.com/joestump/bookmarks/internal/store"
)

// ErrNotFound is returned when the addressed bookmark does not exist.
var ErrNotFound = store.ErrNotFound

// Service validates writes and sanitizes reads around a bookmark store.
// Storage failures are returned wrapped and never retried.
type Service struct {
	store store.BookmarkStoreIface
	log   logger.Logger
}

func NewService(s store.BookmarkStoreIface, log logger.Logger) *Service {
	return &Service{store: s, log: log}
}

// List returns every bookmark, sanitized. An empty table yields an empty slice.
func (s *Service) List(ctx context.Context) ([]store.Bookmark, error) {
	rows, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]store.Bookmark, 0, len(rows))
	for _, b := range rows {
		out = append(out, Sanitize(*b))
	}
	s.log.Debug("bookmarks listed", logger.Int("count", len(out)))
	return out, nil
}

// Get returns one sanitized bookmark or ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (store.Bookmark, error) {
	b, err := s.store.GetByID(ctx, id)
	if err != nil {
		return store.Bookmark{}, err
	}
	return Sanitize(*b), nil
}

// Create validates c, persists it and returns the sanitized row. The stored
// row keeps the submitted text verbatim.
func (s *Service) Create(ctx context.Context, c Candidate) (store.Bookmark, error) {
	nb, err := Validate(c)
	if err != nil {
		return store.Bookmark{}, err
	}
	b, err := s.store.Insert(ctx, nb)
	if err != nil {
		return store.Bookmark{}, err
	}
	s.log.Info("bookmark created", logger.String("id", b.ID))
	return Sanitize(*b), nil
}

// Delete removes the bookmark. Deleting an id that no longer exists,
// including one removed by a concurrent request, returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, id string) error {
	n, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	s.log.Info("bookmark deleted", logger.String("id", id))
	return nil
}

// Update checks the bookmark exists, validates the supplied fields and
// writes only those columns.
func (s *Service) Update(ctx context.Context, id string, c Candidate) error {
	if _, err := s.store.GetByID(ctx, id); err != nil {
		return err
	}
	patch, err := ValidatePatch(c)
	if err != nil {
		return err
	}
	if err := s.store.UpdateByID(ctx, id, patch); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("apply update: %w", err)
	}
	s.log.Info("bookmark updated", logger.String("id", id))
	return nil
}
