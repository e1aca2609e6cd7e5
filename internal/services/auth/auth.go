// Package services содержит бизнес-логику учётных записей: регистрацию,
// вход и получение профиля текущего пользователя.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/notes-service/internal/lib/password"
	"github.com/magabrotheeeer/notes-service/internal/lib/sl"
	"github.com/magabrotheeeer/notes-service/internal/models"
	"github.com/magabrotheeeer/notes-service/internal/storage"
)

var (
	// ErrUserExists — пользователь с таким email уже зарегистрирован.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials — пароль не подходит.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrPasswordTooLong — пароль длиннее password.MaxLength байт.
	ErrPasswordTooLong = errors.New("password is too long")
)

// UserRepository описывает контракт хранилища пользователей.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его с ID.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// GetUserByEmail возвращает пользователя по email или storage.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID возвращает пользователя по ID или storage.ErrNotFound.
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// TokenMaker выпускает токены доступа.
type TokenMaker interface {
	GenerateToken(user models.Identity) (string, error)
}

// Cache описывает кеш профилей.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Options — настройки AuthService.
type Options struct {
	PasswordCost int           // Стоимость bcrypt, 0 — значение по умолчанию
	ProfileTTL   time.Duration // Время жизни профиля в кеше
}

// AuthService отвечает за регистрацию, вход и профиль пользователя.
type AuthService struct {
	users    UserRepository
	jwtMaker TokenMaker
	cache    Cache
	log      *slog.Logger
	opts     Options
}

// NewAuthService создает новый экземпляр AuthService. cache может быть nil.
func NewAuthService(users UserRepository, jwtMaker TokenMaker, cache Cache, log *slog.Logger, opts Options) *AuthService {
	if opts.ProfileTTL <= 0 {
		opts.ProfileTTL = time.Hour
	}
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		cache:    cache,
		log:      log,
		opts:     opts,
	}
}

// Register создаёт пользователя и сразу выдаёт ему токен.
//
// Занятый email возвращает ErrUserExists, новый пользователь не создаётся.
func (s *AuthService) Register(ctx context.Context, fullname, email, rawPassword string) (models.User, string, error) {
	const op = "services.auth.Register"

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return models.User{}, "", fmt.Errorf("%s: %w", op, ErrUserExists)
	case !errors.Is(err, storage.ErrNotFound):
		return models.User{}, "", fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.Hash(rawPassword, s.opts.PasswordCost)
	if err != nil {
		if errors.Is(err, password.ErrTooLong) {
			return models.User{}, "", fmt.Errorf("%s: %w", op, ErrPasswordTooLong)
		}
		return models.User{}, "", fmt.Errorf("%s: %w", op, err)
	}

	user, err := s.users.CreateUser(ctx, models.User{
		FullName:     fullname,
		Email:        email,
		PasswordHash: hashed,
	})
	if err != nil {
		// параллельная регистрация с тем же email
		if errors.Is(err, storage.ErrDuplicate) {
			return models.User{}, "", fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return models.User{}, "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user registered", slog.String("user_id", user.ID))

	token, err := s.jwtMaker.GenerateToken(user.Identity())
	if err != nil {
		return models.User{}, "", fmt.Errorf("%s: %w", op, err)
	}
	return user, token, nil
}

// Login проверяет пароль и выдаёт токен.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := password.Compare(user.PasswordHash, rawPassword); err != nil {
		if !errors.Is(err, password.ErrMismatch) {
			s.log.Warn("stored password hash is unusable", slog.String("user_id", user.ID), sl.Err(err))
		}
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.GenerateToken(user.Identity())
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// CurrentUser перечитывает профиль пользователя по ID из токена.
//
// Пользователи не меняются после регистрации, поэтому профиль кешируется без инвалидации.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (models.Profile, error) {
	const op = "services.auth.CurrentUser"
	cacheKey := "user:" + userID

	if s.cache != nil {
		var cached models.Profile
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			s.log.Warn("failed to read profile from cache", slog.String("key", cacheKey), sl.Err(err))
		}
		if found {
			return cached, nil
		}
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Profile{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return models.Profile{}, fmt.Errorf("%s: %w", op, err)
	}

	profile := user.Profile()
	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, profile, s.opts.ProfileTTL); err != nil {
			s.log.Warn("failed to cache profile", slog.String("key", cacheKey), sl.Err(err))
		}
	}
	return profile, nil
}
