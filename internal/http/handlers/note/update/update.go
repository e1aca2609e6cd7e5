// Package update обрабатывает частичное изменение заметки.
package update

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

// Response — заметка после изменения.
type Response struct {
	response.Response
	Note models.Note `json:"note"`
}

// Service изменяет заметки.
type Service interface {
	Edit(ctx context.Context, ownerID, noteID string, patch models.NotePatch) (models.Note, error)
}

// Handler обрабатывает PUT /edit-note/{noteId}.
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
// @Summary Изменить заметку
// @Description Применяет переданные поля. Пустые title и content игнорируются, запрос только с isPinned отклоняется.
// @Tags Notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param noteId path string true "ID заметки"
// @Param request body models.NotePatch true "Изменяемые поля"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "No changes provided"
// @Failure 401 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse "Note not found"
// @Failure 500 {object} response.ErrorResponse
// @Router /edit-note/{noteId} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.update"

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

	var patch models.NotePatch
	if err := render.DecodeJSON(r.Body, &patch); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	noteID := chi.URLParam(r, "noteId")
	note, err := h.service.Edit(r.Context(), user.ID, noteID, patch)
	switch {
	case errors.Is(err, services.ErrNoChanges):
		log.Info("no changes provided", slog.String("note_id", noteID))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("No changes provided"))
		return
	case errors.Is(err, services.ErrNoteNotFound):
		log.Info("note not found", slog.String("note_id", noteID))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("Note not found"))
		return
	case err != nil:
		log.Error("failed to update note", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	render.JSON(w, r, Response{
		Response: response.OK("Note updated successfully"),
		Note:     note,
	})
}
