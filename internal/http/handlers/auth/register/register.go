// Package register обрабатывает создание учётной записи.
package register

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
	"github.com/magabrotheeeer/notes-service/internal/models"
	services "github.com/magabrotheeeer/notes-service/internal/services/auth"
)

// Request — входные данные для регистрации
type Request struct {
	FullName string `json:"fullname" label:"Full Name" validate:"required"`
	Email    string `json:"email" label:"Email" validate:"required"`
	Password string `json:"password" label:"Password" validate:"required"`
}

// Response — созданный пользователь и его токен.
type Response struct {
	response.Response
	User        models.Profile `json:"user"`
	AccessToken string         `json:"accessToken"`
}

// Service регистрирует пользователей.
type Service interface {
	Register(ctx context.Context, fullname, email, password string) (models.User, string, error)
}

// Handler обрабатывает POST /create-account.
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
// @Summary Регистрация пользователя
// @Description Создаёт учётную запись и сразу выдаёт токен доступа. Занятый email возвращает error=true со статусом 200.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Данные пользователя"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON, не заполнено поле или пароль длиннее 72 байт"
// @Failure 500 {object} response.ErrorResponse
// @Router /create-account [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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

	user, token, err := h.service.Register(r.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrPasswordTooLong) {
			log.Info("password is too long")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("Password is too long"))
			return
		}
		if errors.Is(err, services.ErrUserExists) {
			log.Info("email already registered")
			render.JSON(w, r, response.Error("User Already Exists"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("Internal Server Error"))
		return
	}

	log.Info("user registered", slog.String("user_id", user.ID))
	render.JSON(w, r, Response{
		Response:    response.OK("Registration Successful"),
		User:        user.Profile(),
		AccessToken: token,
	})
}
