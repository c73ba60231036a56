package testutil

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/joestump/bookmarks/internal/store"
)

// MakeBookmarks returns two well-formed bookmarks with fixed ids.
func MakeBookmarks() []store.Bookmark {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []store.Bookmark{
		{
			ID:          "00000000-0000-0000-0000-000000000001",
			Title:       "Google",
			BookmarkURL: "http://google.com",
			Descr:       "An indie search engine startup",
			Rating:      4,
			CreatedAt:   base,
		},
		{
			ID:          "00000000-0000-0000-0000-000000000002",
			Title:       "Fluffiest Cats in the World",
			BookmarkURL: "http://medium.com/bloggerx/fluffiest-cats-334",
			Descr:       "The only list of fluffy cats online",
			Rating:      5,
			CreatedAt:   base.Add(time.Minute),
		},
	}
}

// MakeMaliciousBookmark returns a bookmark carrying markup in its free-text
// fields, and the same bookmark as it must look after sanitizing.
func MakeMaliciousBookmark() (malicious, expected store.Bookmark) {
	malicious = store.Bookmark{
		ID:          "00000000-0000-0000-0000-000000000911",
		Title:       `Naughty naughty very naughty <script>alert("xss");</script>`,
		BookmarkURL: "www.malicious.com",
		Descr:       `Bad image <img src="https://url.to.file.which/does-not.exist" onerror="alert(document.cookie);">. But not <strong>all</strong> bad.`,
		Rating:      1,
		CreatedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	expected = malicious
	expected.Title = `Naughty naughty very naughty &lt;script&gt;alert("xss");&lt;/script&gt;`
	expected.Descr = `Bad image <img src="https://url.to.file.which/does-not.exist">. But not <strong>all</strong> bad.`
	return malicious, expected
}

// SeedBookmarks inserts rows verbatim, bypassing validation.
func SeedBookmarks(t *testing.T, conn *sqlx.DB, bookmarks ...store.Bookmark) {
	t.Helper()
	for _, b := range bookmarks {
		_, err := conn.Exec(conn.Rebind(`
			INSERT INTO bookmarks (id, title, bookmark_url, descr, rating, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`), b.ID, b.Title, b.BookmarkURL, b.Descr, b.Rating, b.CreatedAt)
		if err != nil {
			t.Fatalf("seed bookmark %s: %v", b.ID, err)
		}
	}
}
