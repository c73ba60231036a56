package bookmarks

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/joestump/bookmarks/internal/store"
)

// Field names as they appear in request bodies and error messages.
const (
	FieldTitle       = "title"
	FieldBookmarkURL = "bookmark_url"
	FieldDescr       = "descr"
	FieldRating      = "rating"

	MinRating = 0
	MaxRating = 5
)

// ErrEmptyUpdate is returned when an update names none of the writable fields.
var ErrEmptyUpdate = errors.New("Request body must contain either 'title', 'bookmark_url', 'descr' or 'rating'")

// MissingFieldError reports a required field that is absent or empty.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("Missing '%s' in request body", e.Field)
}

// InvalidRatingError reports a rating that is not an integer in [0, 5].
type InvalidRatingError struct {
	Value any
}

func (e *InvalidRatingError) Error() string {
	return fmt.Sprintf("'rating' must be a number between %d and %d", MinRating, MaxRating)
}

// IsValidation reports whether err is a client input error.
func IsValidation(err error) bool {
	var missing *MissingFieldError
	var rating *InvalidRatingError
	return errors.As(err, &missing) || errors.As(err, &rating) || errors.Is(err, ErrEmptyUpdate)
}

// Candidate is unvalidated input. A nil field was not supplied at all.
// Rating keeps whatever JSON produced (json.Number, float64, string, ...)
// so numeric strings can be coerced.
type Candidate struct {
	Title       *string
	BookmarkURL *string
	Descr       *string
	Rating      any
}

// Validate checks a create candidate. Required fields are checked in the
// fixed order title, bookmark_url, rating, and the first failure is returned.
func Validate(c Candidate) (store.NewBookmark, error) {
	if isBlank(c.Title) {
		return store.NewBookmark{}, &MissingFieldError{Field: FieldTitle}
	}
	if isBlank(c.BookmarkURL) {
		return store.NewBookmark{}, &MissingFieldError{Field: FieldBookmarkURL}
	}
	if ratingMissing(c.Rating) {
		return store.NewBookmark{}, &MissingFieldError{Field: FieldRating}
	}
	rating, err := coerceRating(c.Rating)
	if err != nil {
		return store.NewBookmark{}, err
	}

	nb := store.NewBookmark{
		Title:       *c.Title,
		BookmarkURL: *c.BookmarkURL,
		Rating:      rating,
	}
	if c.Descr != nil {
		nb.Descr = *c.Descr
	}
	return nb, nil
}

// ValidatePatch applies the create rules to whichever fields are present.
// Supplying a required field as empty counts as missing; descr may be cleared.
func ValidatePatch(c Candidate) (store.BookmarkPatch, error) {
	var p store.BookmarkPatch

	if c.Title != nil {
		if isBlank(c.Title) {
			return p, &MissingFieldError{Field: FieldTitle}
		}
		p.Title = c.Title
	}
	if c.BookmarkURL != nil {
		if isBlank(c.BookmarkURL) {
			return p, &MissingFieldError{Field: FieldBookmarkURL}
		}
		p.BookmarkURL = c.BookmarkURL
	}
	if c.Descr != nil {
		p.Descr = c.Descr
	}
	if c.Rating != nil {
		if ratingMissing(c.Rating) {
			return p, &MissingFieldError{Field: FieldRating}
		}
		rating, err := coerceRating(c.Rating)
		if err != nil {
			return p, err
		}
		p.Rating = &rating
	}

	if p.Empty() {
		return p, ErrEmptyUpdate
	}
	return p, nil
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}

func ratingMissing(v any) bool {
	switch r := v.(type) {
	case nil:
		return true
	case string:
		return r == ""
	case json.Number:
		return r == ""
	}
	return false
}

// coerceRating converts v to a number the way a loosely typed client would
// expect ("3" and 3.0 are both 3) and requires an integer in range.
func coerceRating(v any) (int, error) {
	var f float64
	switch r := v.(type) {
	case json.Number:
		parsed, err := r.Float64()
		if err != nil {
			return 0, &InvalidRatingError{Value: v}
		}
		f = parsed
	case float64:
		f = r
	case int:
		f = float64(r)
	case int64:
		f = float64(r)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(r), 64)
		if err != nil {
			return 0, &InvalidRatingError{Value: v}
		}
		f = parsed
	default:
		return 0, &InvalidRatingError{Value: v}
	}

	if math.IsNaN(f) || f != math.Trunc(f) || f < MinRating || f > MaxRating {
		return 0, &InvalidRatingError{Value: v}
	}
	return int(f), nil
}
