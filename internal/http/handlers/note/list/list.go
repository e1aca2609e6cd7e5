package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-service/internal/http/response"
	"github.com/magabrotheeeer/notes-service/internal/lib/sl"
	"github.com/magabrotheeeer/notes-service/internal/models"
)

// Response — заметки пользователя, закреплённые первыми.
type Response struct {
	response.Response
	Notes []models.Note `json:"notes"`
}

// Service возвращает заметки владельца.
type Service interface {
	List(ctx context.Context, ownerID string) ([]models.Note, error)
}

// Handler обрабатывает GET /get-all-notes.
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
// @Summary Все заметки пользователя
// @Tags Notes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /get-all-notes [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.list"

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

	notes, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		log.Error("failed to list notes", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	log.Debug("notes listed", slog.Int("count", len(notes)))
	render.JSON(w, r, Response{
		Response: response.OK("All notes retrieved successfully"),
		Notes:    notes,
	})
}
