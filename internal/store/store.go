// Package store is the persistence layer. No handler or service queries the
// database directly; all access goes through the stores defined here.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested bookmark does not exist.
var ErrNotFound = errors.New("not found")

// BookmarkStoreIface exposes the row-level bookmark operations.
type BookmarkStoreIface interface {
	ListAll(ctx context.Context) ([]*Bookmark, error)
	GetByID(ctx context.Context, id string) (*Bookmark, error)
	Insert(ctx context.Context, b NewBookmark) (*Bookmark, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
	UpdateByID(ctx context.Context, id string, p BookmarkPatch) error
}

var _ BookmarkStoreIface = (*BookmarkStore)(nil)
