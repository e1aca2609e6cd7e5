package notes

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/notes-service/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/notes-service/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/notes-service/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/notes-service/internal/http/handlers/health"
	"github.com/magabrotheeeer/notes-service/internal/http/handlers/note/create"
	"github.com/magabrotheeeer/notes-service/internal/http/handlers/note/list"
	"github.com/magabrotheeeer/notes-service/internal/http/handlers/note/pin"
	"github.com/magabrotheeeer/notes-service/internal/http/handlers/note/remove"
	"github.com/magabrotheeeer/notes-service/internal/http/handlers/note/search"
	"github.com/magabrotheeeer/notes-service/internal/http/handlers/note/update"
	"github.com/magabrotheeeer/notes-service/internal/http/middlewarectx"
)

// AuthService — операции с учётными записями, нужные маршрутам.
type AuthService interface {
	register.Service
	login.Service
	me.Service
}

// NoteService — операции с заметками, нужные маршрутам.
type NoteService interface {
	create.Service
	update.Service
	list.Service
	remove.Service
	pin.Service
	search.Service
}

// Deps — зависимости маршрутов.
type Deps struct {
	Auth    AuthService
	Notes   NoteService
	Tokens  middlewarectx.TokenParser
	Metrics *middlewarectx.Metrics
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		deps.Metrics.Middleware,
	)

	// Открытые конечные точки
	r.Get("/", health.New(logger).ServeHTTP)
	r.Post("/create-account", register.New(logger, deps.Auth).ServeHTTP)
	r.Post("/login", login.New(logger, deps.Auth).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(deps.Tokens, logger))

		r.Get("/get-user", me.New(logger, deps.Auth).ServeHTTP)
		r.Post("/add-note", create.New(logger, deps.Notes).ServeHTTP)
		r.Put("/edit-note/{noteId}", update.New(logger, deps.Notes).ServeHTTP)
		r.Get("/get-all-notes", list.New(logger, deps.Notes).ServeHTTP)
		r.Delete("/delete-note/{noteId}", remove.New(logger, deps.Notes).ServeHTTP)
		r.Put("/update-note-pinned/{noteId}", pin.New(logger, deps.Notes).ServeHTTP)

		searchHandler := search.New(logger, deps.Notes)
		// оба написания пути
		r.Get("/serch-notes", searchHandler.ServeHTTP)
		r.Get("/search-notes", searchHandler.ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
