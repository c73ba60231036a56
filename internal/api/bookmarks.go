package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/bookmarks/internal/bookmarks"
	"github.com/joestump/bookmarks/internal/logger"
	"github.com/joestump/bookmarks/internal/metrics"
)

const msgNotFound = "Bookmark Not Found"

// bookmarksAPIHandler provides REST handlers for bookmark management.
type bookmarksAPIHandler struct {
	svc        *bookmarks.Service
	log        logger.Logger
	production bool
}

// registerBookmarkRoutes registers bookmark routes on r.
func registerBookmarkRoutes(r chi.Router, svc *bookmarks.Service, log logger.Logger, production bool) {
	h := &bookmarksAPIHandler{svc: svc, log: log, production: production}
	r.Get("/bookmarks", h.List)
	r.Post("/bookmarks", h.Create)
	r.Get("/bookmarks/{id}", h.Get)
	r.Delete("/bookmarks/{id}", h.Delete)
	r.Patch("/bookmarks/{id}", h.Update)
}

// List returns all bookmarks.
// GET /api/bookmarks
//
// @Summary      List bookmarks
// @Description  Returns every bookmark with free-text fields sanitized.
// @Tags         Bookmarks
// @Produce      json
// @Success      200  {array}   BookmarkResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks [get]
func (h *bookmarksAPIHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}

	resp := make([]BookmarkResponse, 0, len(list))
	for _, b := range list {
		resp = append(resp, toBookmarkResponse(b))
	}
	metrics.Observe("list", metrics.ResultOK)
	writeJSON(w, http.StatusOK, resp)
}

// Create validates and stores a new bookmark.
// POST /api/bookmarks
//
// @Summary      Create a bookmark
// @Description  title, bookmark_url and rating are required; rating must be an integer from 0 to 5.
// @Tags         Bookmarks
// @Accept       json
// @Produce      json
// @Param        body  body      BookmarkRequest  true  "Bookmark to create"
// @Success      201   {object}  BookmarkResponse
// @Header       201   {string}  Location  "Path of the new bookmark"
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks [post]
func (h *bookmarksAPIHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	b, err := h.svc.Create(r.Context(), req.candidate())
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}

	metrics.Observe("create", metrics.ResultOK)
	w.Header().Set("Location", path.Join(r.URL.Path, b.ID))
	writeJSON(w, http.StatusCreated, toBookmarkResponse(b))
}

// Get returns a single bookmark by ID.
// GET /api/bookmarks/{id}
//
// @Summary      Get a bookmark
// @Tags         Bookmarks
// @Produce      json
// @Param        id   path      string  true  "Bookmark ID"
// @Success      200  {object}  BookmarkResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks/{id} [get]
func (h *bookmarksAPIHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get", err)
		return
	}
	metrics.Observe("get", metrics.ResultOK)
	writeJSON(w, http.StatusOK, toBookmarkResponse(b))
}

// Delete removes a bookmark.
// DELETE /api/bookmarks/{id}
//
// @Summary      Delete a bookmark
// @Tags         Bookmarks
// @Param        id   path  string  true  "Bookmark ID"
// @Success      204
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks/{id} [delete]
func (h *bookmarksAPIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.fail(w, r, "delete", err)
		return
	}
	metrics.Observe("delete", metrics.ResultOK)
	w.WriteHeader(http.StatusNoContent)
}

// Update changes the supplied fields of a bookmark.
// PATCH /api/bookmarks/{id}
//
// @Summary      Update a bookmark
// @Description  Only the fields present in the body are changed; at least one is required.
// @Tags         Bookmarks
// @Accept       json
// @Param        id    path  string           true  "Bookmark ID"
// @Param        body  body  BookmarkRequest  true  "Fields to change"
// @Success      204
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  ErrorResponse
// @Failure      500   {object}  ErrorResponse
// @Security     BearerToken
// @Router       /bookmarks/{id} [patch]
func (h *bookmarksAPIHandler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.svc.Update(r.Context(), id, req.candidate()); err != nil {
		h.fail(w, r, "update", err)
		return
	}
	metrics.Observe("update", metrics.ResultOK)
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a BookmarkRequest. An empty body decodes to an empty request
// so validation reports the first missing field.
func (h *bookmarksAPIHandler) decode(w http.ResponseWriter, r *http.Request) (BookmarkRequest, bool) {
	var req BookmarkRequest
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.log.Info("invalid request body", logger.String("path", r.URL.Path), logger.Error(err))
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return req, false
	}
	return req, true
}

// fail maps a service error onto the response.
func (h *bookmarksAPIHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, bookmarks.ErrNotFound):
		metrics.Observe(op, metrics.ResultNotFound)
		h.log.Info("bookmark not found", logger.String("op", op), logger.String("id", chi.URLParam(r, "id")))
		writeError(w, http.StatusNotFound, msgNotFound)
	case bookmarks.IsValidation(err):
		metrics.Observe(op, metrics.ResultInvalid)
		h.log.Info("invalid bookmark", logger.String("op", op), logger.Error(err))
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		metrics.Observe(op, metrics.ResultError)
		writeServerError(w, r, h.log, h.production, err)
	}
}
