// Package create обрабатывает добавление заметки.
package create

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/notes-service/internal/http/middlewarectx"
	"github.com/magabrotheeeer/notes-service/internal/http/response"
	"github.com/magabrotheeeer/notes-service/internal/lib/sl"
	"github.com/magabrotheeeer/notes-service/internal/models"
)

// Response — созданная заметка.
type Response struct {
	response.Response
	Note models.Note `json:"note"`
}

// Service создаёт заметки.
type Service interface {
	Add(ctx context.Context, ownerID string, in models.NoteInput) (models.Note, error)
}

// Handler обрабатывает POST /add-note.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: response.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Добавить заметку
// @Description Создаёт заметку текущего пользователя. tags по умолчанию [], imgUrl null, price 0.
// @Tags Notes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.NoteInput true "Данные заметки"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или не заполнено поле"
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /add-note [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.note.create"

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

	var req models.NoteInput
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Debug("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	note, err := h.service.Add(r.Context(), user.ID, req)
	if err != nil {
		log.Error("failed to add note", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	render.JSON(w, r, Response{
		Response: response.OK("Note added successfully"),
		Note:     note,
	})
}
