// Package services реализует операции над заметками. Каждая операция
// получает ID владельца из проверенного токена и работает только с его заметками.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/notes-service/internal/models"
	"github.com/magabrotheeeer/notes-service/internal/storage"
)

var (
	// ErrNoteNotFound — заметки нет или она принадлежит другому пользователю.
	ErrNoteNotFound = errors.New("note not found")
	// ErrNoChanges — в запросе на изменение нет ни одного учитываемого поля.
	ErrNoChanges = errors.New("no changes provided")
	// ErrEmptyQuery — пустая строка поиска.
	ErrEmptyQuery = errors.New("search query is required")
)

// NoteRepository определяет методы для работы с заметками в хранилище.
// Все методы фильтруют заметки по ID владельца.
type NoteRepository interface {
	CreateNote(ctx context.Context, note models.Note) (models.Note, error)
	GetNote(ctx context.Context, id, userID string) (*models.Note, error)
	UpdateNote(ctx context.Context, note models.Note) error
	SetPinned(ctx context.Context, id, userID string, isPinned bool) error
	DeleteNote(ctx context.Context, id, userID string) error
	ListNotes(ctx context.Context, userID string) ([]models.Note, error)
	SearchNotes(ctx context.Context, userID, query string) ([]models.Note, error)
}

// NoteService реализует бизнес-логику работы с заметками.
type NoteService struct {
	repo NoteRepository
	log  *slog.Logger
}

// NewNoteService создает новый экземпляр NoteService.
func NewNoteService(repo NoteRepository, log *slog.Logger) *NoteService {
	return &NoteService{
		repo: repo,
		log:  log,
	}
}

// Add создаёт заметку владельца. Пустые tags, imgUrl и price получают
// значения по умолчанию: [], null и 0.
func (s *NoteService) Add(ctx context.Context, ownerID string, in models.NoteInput) (models.Note, error) {
	const op = "services.note.Add"

	note := models.Note{
		Title:   in.Title,
		Content: in.Content,
		Tags:    in.Tags,
		Price:   in.Price,
		UserID:  ownerID,
	}
	if note.Tags == nil {
		note.Tags = []string{}
	}
	if in.ImgURL != nil && *in.ImgURL != "" {
		note.ImgURL = in.ImgURL
	}

	created, err := s.repo.CreateNote(ctx, note)
	if err != nil {
		return models.Note{}, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("note created", slog.String("note_id", created.ID), slog.String("user_id", ownerID))
	return created, nil
}

// Edit применяет частичное обновление к заметке владельца.
func (s *NoteService) Edit(ctx context.Context, ownerID, noteID string, patch models.NotePatch) (models.Note, error) {
	const op = "services.note.Edit"

	if !patch.HasChanges() {
		return models.Note{}, fmt.Errorf("%s: %w", op, ErrNoChanges)
	}

	note, err := s.get(ctx, op, ownerID, noteID)
	if err != nil {
		return models.Note{}, err
	}

	patch.Apply(note)

	if err := s.repo.UpdateNote(ctx, *note); err != nil {
		return models.Note{}, s.mapErr(op, err)
	}
	s.log.Info("note updated", slog.String("note_id", noteID))
	return *note, nil
}

// List возвращает заметки владельца: закреплённые первыми, дальше в порядке создания.
func (s *NoteService) List(ctx context.Context, ownerID string) ([]models.Note, error) {
	const op = "services.note.List"

	notes, err := s.repo.ListNotes(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

// Delete удаляет заметку владельца.
func (s *NoteService) Delete(ctx context.Context, ownerID, noteID string) error {
	const op = "services.note.Delete"

	if _, err := s.get(ctx, op, ownerID, noteID); err != nil {
		return err
	}
	if err := s.repo.DeleteNote(ctx, noteID, ownerID); err != nil {
		return s.mapErr(op, err)
	}
	s.log.Info("note deleted", slog.String("note_id", noteID))
	return nil
}

// SetPinned безусловно перезаписывает флаг закрепления.
func (s *NoteService) SetPinned(ctx context.Context, ownerID, noteID string, isPinned bool) (models.Note, error) {
	const op = "services.note.SetPinned"

	note, err := s.get(ctx, op, ownerID, noteID)
	if err != nil {
		return models.Note{}, err
	}
	if err := s.repo.SetPinned(ctx, noteID, ownerID, isPinned); err != nil {
		return models.Note{}, s.mapErr(op, err)
	}
	note.IsPinned = isPinned
	return *note, nil
}

// Search ищет подстроку без учёта регистра в заголовке или тексте заметок владельца.
func (s *NoteService) Search(ctx context.Context, ownerID, query string) ([]models.Note, error) {
	const op = "services.note.Search"

	if query == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyQuery)
	}
	notes, err := s.repo.SearchNotes(ctx, ownerID, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if notes == nil {
		notes = []models.Note{}
	}
	return notes, nil
}

func (s *NoteService) get(ctx context.Context, op, ownerID, noteID string) (*models.Note, error) {
	note, err := s.repo.GetNote(ctx, noteID, ownerID)
	if err != nil {
		return nil, s.mapErr(op, err)
	}
	return note, nil
}

func (s *NoteService) mapErr(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNoteNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
