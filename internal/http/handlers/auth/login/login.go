// Package login обрабатывает вход по email и паролю.
package login

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/notes-service/internal/http/response"
	"github.com/magabrotheeeer/notes-service/internal/lib/sl"
	services "github.com/magabrotheeeer/notes-service/internal/services/auth"
)

// Request — входные данные для входа.
type Request struct {
	Email    string `json:"email" label:"Email" validate:"required"`
	Password string `json:"password" label:"Password" validate:"required"`
}

// Response — ответ при успешном входе.
type Response struct {
	response.Response
	Email       string `json:"email"`
	AccessToken string `json:"accessToken"`
}

// Service проверяет учётные данные.
type Service interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Handler обрабатывает POST /login.
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
// @Summary Вход пользователя
// @Description Проверяет email и пароль, возвращает токен доступа.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Учётные данные"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Не заполнено поле, пользователь не найден или неверный пароль"
// @Failure 500 {object} response.ErrorResponse
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		sl.Op(op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		log.Info("user not found")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("User Not Found"))
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		log.Info("invalid credentials")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("Invalid Credentials"))
		return
	case err != nil:
		log.Error("login failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	render.JSON(w, r, Response{
		Response:    response.OK("Login Successful"),
		Email:       req.Email,
		AccessToken: token,
	})
}
