// Package middlewarectx содержит HTTP middleware сервиса заметок.
//
// JWTMiddleware проверяет токен из заголовка Authorization и кладёт в
// контекст снимок пользователя из токена. База данных при этом не
// используется, поэтому снимок может отставать от хранилища.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/notes-service/internal/http/response"
	"github.com/magabrotheeeer/notes-service/internal/lib/jwt"
	"github.com/magabrotheeeer/notes-service/internal/lib/sl"
	"github.com/magabrotheeeer/notes-service/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ для снимка пользователя в контексте.
const User Key = "user"

// TokenParser проверяет токен и возвращает его claims.
type TokenParser interface {
	ParseToken(token string) (*jwt.CustomClaims, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
func JWTMiddleware(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"

			log := log.With(
				sl.Op(op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			tokenStr, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				log.Info("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}

			claims, err := parser.ParseToken(tokenStr)
			if err != nil {
				log.Info("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), claims.User)))
		})
	}
}

// WithIdentity возвращает контекст со снимком пользователя.
func WithIdentity(ctx context.Context, user models.Identity) context.Context {
	return context.WithValue(ctx, User, user)
}

// IdentityFromContext достаёт снимок пользователя, положенный JWTMiddleware.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	user, ok := ctx.Value(User).(models.Identity)
	if !ok || user.ID == "" {
		return models.Identity{}, false
	}
	return user, true
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
