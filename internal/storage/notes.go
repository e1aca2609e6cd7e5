package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/notes-service/internal/models"
)

const noteColumns = `id, user_id, title, content, tags, img_url, price, is_pinned, created_on`

// Закреплённые заметки первыми, дальше порядок создания.
const noteOrder = `ORDER BY is_pinned DESC, seq ASC`

// scanner общий для *sql.Row и *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// CreateNote сохраняет заметку и возвращает её с заполненными ID и CreatedOn.
func (s *Storage) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	const op = "storage.CreateNote"

	if note.Tags == nil {
		note.Tags = []string{}
	}
	tags, err := json.Marshal(note.Tags)
	if err != nil {
		return models.Note{}, fmt.Errorf("%s: %w", op, err)
	}

	note.ID = uuid.NewString()
	note.CreatedOn = time.Now().UTC().Truncate(time.Microsecond)

	query := `INSERT INTO notes (id, user_id, title, content, tags, img_url, price, is_pinned, created_on)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if _, err = s.DB.ExecContext(ctx, query,
		note.ID, note.UserID, note.Title, note.Content, string(tags),
		nullString(note.ImgURL), note.Price, note.IsPinned, note.CreatedOn); err != nil {
		return models.Note{}, fmt.Errorf("%s: %w", op, err)
	}
	return note, nil
}

// GetNote возвращает заметку по id, только если она принадлежит userID.
// Чужая и несуществующая заметка одинаково дают ErrNotFound.
func (s *Storage) GetNote(ctx context.Context, id, userID string) (*models.Note, error) {
	const op = "storage.GetNote"

	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1 AND user_id = $2`
	n, err := scanNote(s.DB.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// UpdateNote перезаписывает изменяемые поля заметки владельца.
func (s *Storage) UpdateNote(ctx context.Context, note models.Note) error {
	const op = "storage.UpdateNote"

	if _, err := uuid.Parse(note.ID); err != nil {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if note.Tags == nil {
		note.Tags = []string{}
	}
	tags, err := json.Marshal(note.Tags)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE notes
			  SET title = $3, content = $4, tags = $5, img_url = $6, price = $7, is_pinned = $8
			  WHERE id = $1 AND user_id = $2`
	res, err := s.DB.ExecContext(ctx, query,
		note.ID, note.UserID, note.Title, note.Content, string(tags),
		nullString(note.ImgURL), note.Price, note.IsPinned)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}

// SetPinned меняет только флаг закрепления.
func (s *Storage) SetPinned(ctx context.Context, id, userID string, isPinned bool) error {
	const op = "storage.SetPinned"

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	res, err := s.DB.ExecContext(ctx,
		`UPDATE notes SET is_pinned = $3 WHERE id = $1 AND user_id = $2`,
		id, userID, isPinned)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}

// DeleteNote удаляет заметку владельца.
func (s *Storage) DeleteNote(ctx context.Context, id, userID string) error {
	const op = "storage.DeleteNote"

	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM notes WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}

// ListNotes возвращает все заметки пользователя.
func (s *Storage) ListNotes(ctx context.Context, userID string) ([]models.Note, error) {
	const op = "storage.ListNotes"

	query := `SELECT ` + noteColumns + ` FROM notes WHERE user_id = $1 ` + noteOrder
	notes, err := s.queryNotes(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return notes, nil
}

// SearchNotes ищет подстроку без учёта регистра в заголовке или тексте заметок пользователя.
func (s *Storage) SearchNotes(ctx context.Context, userID, query string) ([]models.Note, error) {
	const op = "storage.SearchNotes"

	q := `SELECT ` + noteColumns + ` FROM notes
		  WHERE user_id = $1
		    AND (strpos(lower(title), lower($2)) > 0 OR strpos(lower(content), lower($2)) > 0) ` + noteOrder
	notes, err := s.queryNotes(ctx, q, userID, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return notes, nil
}

func (s *Storage) queryNotes(ctx context.Context, query string, args ...any) ([]models.Note, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

func scanNote(row scanner) (*models.Note, error) {
	var (
		n      models.Note
		tags   []byte
		imgURL sql.NullString
	)
	if err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &tags,
		&imgURL, &n.Price, &n.IsPinned, &n.CreatedOn); err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &n.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	if imgURL.Valid {
		n.ImgURL = &imgURL.String
	}
	return &n, nil
}

func checkAffected(op string, res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
