package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/joestump/bookmarks/internal/store"
	"github.com/joestump/bookmarks/internal/testutil"
)

func newBookmarkStore(t *testing.T) *store.BookmarkStore {
	t.Helper()
	return store.NewBookmarkStore(testutil.NewTestDB(t))
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestBookmarkStore_ListAll_Empty(t *testing.T) {
	s := newBookmarkStore(t)

	got, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if got == nil {
		t.Fatal("ListAll returned nil slice, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestBookmarkStore_ListAll_InsertionOrder(t *testing.T) {
	conn := testutil.NewTestDB(t)
	s := store.NewBookmarkStore(conn)
	fixtures := testutil.MakeBookmarks()
	// Seed out of order; created_at decides the listing order.
	testutil.SeedBookmarks(t, conn, fixtures[1], fixtures[0])

	got, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(got) != len(fixtures) {
		t.Fatalf("len = %d, want %d", len(got), len(fixtures))
	}
	for i, want := range fixtures {
		if got[i].ID != want.ID {
			t.Errorf("got[%d].ID = %q, want %q", i, got[i].ID, want.ID)
		}
		if got[i].Title != want.Title {
			t.Errorf("got[%d].Title = %q, want %q", i, got[i].Title, want.Title)
		}
	}
}

func TestBookmarkStore_Insert(t *testing.T) {
	s := newBookmarkStore(t)
	ctx := context.Background()

	b, err := s.Insert(ctx, store.NewBookmark{
		Title:       "Go",
		BookmarkURL: "https://go.dev",
		Descr:       "The Go programming language",
		Rating:      5,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if b.ID == "" {
		t.Error("expected non-empty ID")
	}
	if b.Title != "Go" || b.BookmarkURL != "https://go.dev" || b.Rating != 5 {
		t.Errorf("unexpected row: %+v", b)
	}
	if b.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}

	other, err := s.Insert(ctx, store.NewBookmark{Title: "Other", BookmarkURL: "https://x.org", Rating: 0})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if other.ID == b.ID {
		t.Error("expected distinct ids for distinct inserts")
	}
	if other.Descr != "" {
		t.Errorf("descr = %q, want empty", other.Descr)
	}
}

func TestBookmarkStore_Insert_RatingCheckConstraint(t *testing.T) {
	s := newBookmarkStore(t)

	_, err := s.Insert(context.Background(), store.NewBookmark{Title: "t", BookmarkURL: "u", Rating: 6})
	if err == nil {
		t.Fatal("expected check constraint violation for rating 6")
	}
}

func TestBookmarkStore_GetByID(t *testing.T) {
	conn := testutil.NewTestDB(t)
	s := store.NewBookmarkStore(conn)
	fixtures := testutil.MakeBookmarks()
	testutil.SeedBookmarks(t, conn, fixtures...)

	got, err := s.GetByID(context.Background(), fixtures[1].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != fixtures[1].Title || got.Descr != fixtures[1].Descr || got.Rating != fixtures[1].Rating {
		t.Errorf("got %+v, want %+v", got, fixtures[1])
	}
}

func TestBookmarkStore_GetByID_NotFound(t *testing.T) {
	s := newBookmarkStore(t)

	_, err := s.GetByID(context.Background(), "missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestBookmarkStore_DeleteByID(t *testing.T) {
	conn := testutil.NewTestDB(t)
	s := store.NewBookmarkStore(conn)
	fixtures := testutil.MakeBookmarks()
	testutil.SeedBookmarks(t, conn, fixtures...)
	ctx := context.Background()

	n, err := s.DeleteByID(ctx, fixtures[0].ID)
	if err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if n != 1 {
		t.Errorf("rows = %d, want 1", n)
	}

	n, err = s.DeleteByID(ctx, fixtures[0].ID)
	if err != nil {
		t.Fatalf("second DeleteByID: %v", err)
	}
	if n != 0 {
		t.Errorf("rows = %d, want 0 on repeat delete", n)
	}

	if _, err := s.GetByID(ctx, fixtures[0].ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByID after delete: err = %v, want ErrNotFound", err)
	}
	if _, err := s.GetByID(ctx, fixtures[1].ID); err != nil {
		t.Errorf("other bookmark should remain: %v", err)
	}
}

func TestBookmarkStore_UpdateByID_Partial(t *testing.T) {
	conn := testutil.NewTestDB(t)
	s := store.NewBookmarkStore(conn)
	fixtures := testutil.MakeBookmarks()
	testutil.SeedBookmarks(t, conn, fixtures...)
	ctx := context.Background()

	err := s.UpdateByID(ctx, fixtures[0].ID, store.BookmarkPatch{
		Title:  strPtr("Updated"),
		Rating: intPtr(1),
	})
	if err != nil {
		t.Fatalf("UpdateByID: %v", err)
	}

	got, err := s.GetByID(ctx, fixtures[0].ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Title != "Updated" {
		t.Errorf("title = %q, want %q", got.Title, "Updated")
	}
	if got.Rating != 1 {
		t.Errorf("rating = %d, want 1", got.Rating)
	}
	if got.BookmarkURL != fixtures[0].BookmarkURL {
		t.Errorf("bookmark_url changed to %q", got.BookmarkURL)
	}
	if got.Descr != fixtures[0].Descr {
		t.Errorf("descr changed to %q", got.Descr)
	}
}

func TestBookmarkStore_UpdateByID_UnchangedValue(t *testing.T) {
	conn := testutil.NewTestDB(t)
	s := store.NewBookmarkStore(conn)
	fixtures := testutil.MakeBookmarks()
	testutil.SeedBookmarks(t, conn, fixtures...)

	// Writing the current value still counts as a matched row.
	err := s.UpdateByID(context.Background(), fixtures[0].ID, store.BookmarkPatch{
		Title: strPtr(fixtures[0].Title),
	})
	if err != nil {
		t.Errorf("UpdateByID with unchanged title: %v", err)
	}
}

func TestBookmarkStore_UpdateByID_NotFound(t *testing.T) {
	s := newBookmarkStore(t)

	err := s.UpdateByID(context.Background(), "missing", store.BookmarkPatch{Descr: strPtr("x")})
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestBookmarkStore_UpdateByID_EmptyPatch(t *testing.T) {
	s := newBookmarkStore(t)

	if err := s.UpdateByID(context.Background(), "missing", store.BookmarkPatch{}); err != nil {
		t.Errorf("empty patch: err = %v, want nil", err)
	}
}
