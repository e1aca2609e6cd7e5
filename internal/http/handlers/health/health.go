// Package health отвечает на корневой маршрут для проверки доступности сервиса.
package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-service/internal/http/response"
)

// Response — ответ корневого маршрута.
type Response struct {
	response.Response
	Data string `json:"data"`
}

// Handler отвечает "hello".
type Handler struct {
	log *slog.Logger
}

// New создаёт Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Проверка доступности
// @Tags Health
// @Produce json
// @Success 200 {object} Response
// @Router / [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, Response{
		Response: response.OK("hello"),
		Data:     "hello",
	})
}
