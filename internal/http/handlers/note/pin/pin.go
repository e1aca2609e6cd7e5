// Package pin обрабатывает закрепление и открепление заметки.
package pin

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-service/internal/http/response"
	"github.com/magabrotheeeer/notes-service/internal/lib/sl"
	"github.com/magabrotheeeer/notes-service/internal/models"
	services "github.com/magabrotheeeer/notes-service/internal/services/note"
)

// Request — новое значение флага. Отсутствующий isPinned считается false.
type Request struct {
	IsPinned *bool `json:"isPinned"`
}

// Response — заметка после изменения флага.
type Response struct {
	response.Response
	Note models.Note `json:"note"`
}

// Service закрепляет заметки.
type Service interface {
	SetPinned(ctx context.Context, ownerID, noteID string, isPinned bool) (models.Note, error)
}

// Handler обрабатывает PUT /update-note-pinned/{noteId}.
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
// @Summary Закрепить или открепить заметку
// @Tags Notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param noteId path string true "ID заметки"
// @Param request body Request true "Флаг закрепления"
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Note not found"
// @Failure 500 {object} response.ErrorResponse
// @Router /update-note-pinned/{noteId} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.pin"

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

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	isPinned := req.IsPinned != nil && *req.IsPinned

	noteID := chi.URLParam(r, "noteId")
	note, err := h.service.SetPinned(r.Context(), user.ID, noteID, isPinned)
	if err != nil {
		if errors.Is(err, services.ErrNoteNotFound) {
			log.Info("note not found", slog.String("note_id", noteID))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("Note not found"))
			return
		}
		log.Error("failed to pin note", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	render.JSON(w, r, Response{
		Response: response.OK("Note updated successfully"),
		Note:     note,
	})
}
