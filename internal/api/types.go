package api

import (
	"github.com/joestump/bookmarks/internal/bookmarks"
	"github.com/joestump/bookmarks/internal/store"
)

// BookmarkRequest is the request body for POST and PATCH /bookmarks.
// Fields left out of the JSON stay nil. Rating accepts a number or a
// numeric string.
type BookmarkRequest struct {
	Title       *string `json:"title"`
	BookmarkURL *string `json:"bookmark_url"`
	Descr       *string `json:"descr,omitempty"`
	Rating      any     `json:"rating" swaggertype:"integer"`
}

func (r BookmarkRequest) candidate() bookmarks.Candidate {
	return bookmarks.Candidate{
		Title:       r.Title,
		BookmarkURL: r.BookmarkURL,
		Descr:       r.Descr,
		Rating:      r.Rating,
	}
}

// BookmarkResponse is the JSON representation of a single bookmark.
type BookmarkResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	BookmarkURL string `json:"bookmark_url"`
	Descr       string `json:"descr"`
	Rating      int    `json:"rating"`
}

func toBookmarkResponse(b store.Bookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:          b.ID,
		Title:       b.Title,
		BookmarkURL: b.BookmarkURL,
		Descr:       b.Descr,
		Rating:      b.Rating,
	}
}
