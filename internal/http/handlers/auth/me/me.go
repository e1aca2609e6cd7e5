// Package me возвращает профиль текущего пользователя.
package me

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
	services "github.com/magabrotheeeer/notes-service/internal/services/auth"
)

// Response — профиль без пароля.
type Response struct {
	response.Response
	User models.Profile `json:"user"`
}

// Service перечитывает пользователя по ID.
type Service interface {
	CurrentUser(ctx context.Context, userID string) (models.Profile, error)
}

// Handler обрабатывает GET /get-user.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создаёт Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response
// @Failure 401 {object} response.ErrorResponse "Нет токена или пользователь удалён"
// @Failure 500 {object} response.ErrorResponse
// @Router /get-user [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

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

	profile, err := h.service.CurrentUser(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			log.Info("token refers to missing user", slog.String("user_id", user.ID))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}
		log.Error("failed to load user", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	render.JSON(w, r, Response{
		Response: response.OK(""),
		User:     profile,
	})
}
