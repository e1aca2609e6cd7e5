// Package search обрабатывает поиск по заметкам пользователя.
package search

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-service/internal/http/response"
	"github.com/magabrotheeeer/notes-service/internal/lib/sl"
	"github.com/magabrotheeeer/notes-service/internal/models"
	services "github.com/magabrotheeeer/notes-service/internal/services/note"
)

// Response — найденные заметки.
type Response struct {
	response.Response
	Notes []models.Note `json:"notes"`
}

// Service ищет по заметкам.
type Service interface {
	Search(ctx context.Context, ownerID, query string) ([]models.Note, error)
}

// Handler обрабатывает GET /serch-notes и GET /search-notes.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Поиск заметок
// @Description Ищет подстроку без учёта регистра в заголовке или тексте.
// @Tags Notes
// @Produce json
// @Security BearerAuth
// @Param query query string true "Строка поиска"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Search query is required"
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /search-notes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.search"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	notes, err := h.service.Search(r.Context(), user.ID, r.URL.Query().Get("query"))
	switch {
	case errors.Is(err, services.ErrEmptyQuery):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Search query is required"))
		return
	case err != nil:
		log.Error("failed to search notes", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	render.JSON(w, r, Response{
		Response: response.OK("Notes matching the search query retrieved successfully"),
		Notes:    notes,
	})
}
