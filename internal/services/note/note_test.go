package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/notes-service/internal/models"
	"github.com/magabrotheeeer/notes-service/internal/storage"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateNote(ctx context.Context, note models.Note) (models.Note, error) {
	args := m.Called(ctx, note)
	return args.Get(0).(models.Note), args.Error(1)
}

func (m *RepoMock) GetNote(ctx context.Context, id, userID string) (*models.Note, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Note), args.Error(1)
}

func (m *RepoMock) UpdateNote(ctx context.Context, note models.Note) error {
	return m.Called(ctx, note).Error(0)
}

func (m *RepoMock) SetPinned(ctx context.Context, id, userID string, isPinned bool) error {
	return m.Called(ctx, id, userID, isPinned).Error(0)
}

func (m *RepoMock) DeleteNote(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

func (m *RepoMock) ListNotes(ctx context.Context, userID string) ([]models.Note, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Note), args.Error(1)
}

func (m *RepoMock) SearchNotes(ctx context.Context, userID, query string) ([]models.Note, error) {
	args := m.Called(ctx, userID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Note), args.Error(1)
}

// memRepo — хранилище в памяти с той же семантикой фильтрации и сортировки, что и PostgreSQL.
type memRepo struct {
	mu    sync.Mutex
	notes []models.Note
}

func (r *memRepo) CreateNote(_ context.Context, note models.Note) (models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	note.ID = uuid.NewString()
	r.notes = append(r.notes, note)
	return note, nil
}

func (r *memRepo) find(id, userID string) int {
	for i, n := range r.notes {
		if n.ID == id && n.UserID == userID {
			return i
		}
	}
	return -1
}

func (r *memRepo) GetNote(_ context.Context, id, userID string) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.find(id, userID)
	if i < 0 {
		return nil, storage.ErrNotFound
	}
	n := r.notes[i]
	return &n, nil
}

func (r *memRepo) UpdateNote(_ context.Context, note models.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.find(note.ID, note.UserID)
	if i < 0 {
		return storage.ErrNotFound
	}
	r.notes[i] = note
	return nil
}

func (r *memRepo) SetPinned(_ context.Context, id, userID string, isPinned bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.find(id, userID)
	if i < 0 {
		return storage.ErrNotFound
	}
	r.notes[i].IsPinned = isPinned
	return nil
}

func (r *memRepo) DeleteNote(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.find(id, userID)
	if i < 0 {
		return storage.ErrNotFound
	}
	r.notes = append(r.notes[:i], r.notes[i+1:]...)
	return nil
}

func (r *memRepo) filter(userID string, keep func(models.Note) bool) []models.Note {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Note{}
	for _, n := range r.notes {
		if n.UserID == userID && keep(n) {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].IsPinned && !out[j].IsPinned })
	return out
}

func (r *memRepo) ListNotes(_ context.Context, userID string) ([]models.Note, error) {
	return r.filter(userID, func(models.Note) bool { return true }), nil
}

func (r *memRepo) SearchNotes(_ context.Context, userID, query string) ([]models.Note, error) {
	q := strings.ToLower(query)
	return r.filter(userID, func(n models.Note) bool {
		return strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q)
	}), nil
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

const (
	alice = "alice-id"
	bob   = "bob-id"
)

func add(t *testing.T, s *NoteService, owner, title, content string) models.Note {
	t.Helper()
	n, err := s.Add(context.Background(), owner, models.NoteInput{Title: title, Content: content})
	require.NoError(t, err)
	return n
}

func TestNoteService_AddDefaults(t *testing.T) {
	repo := new(RepoMock)
	empty := ""
	repo.On("CreateNote", mock.Anything, models.Note{
		Title:   "T",
		Content: "C",
		Tags:    []string{},
		UserID:  alice,
	}).Return(models.Note{ID: "n1", Title: "T", Content: "C", Tags: []string{}, UserID: alice}, nil).Once()

	s := NewNoteService(repo, newNoopLogger())
	got, err := s.Add(context.Background(), alice, models.NoteInput{Title: "T", Content: "C", ImgURL: &empty})
	require.NoError(t, err)
	assert.Equal(t, "n1", got.ID)
	assert.Nil(t, got.ImgURL)
	assert.Equal(t, 0.0, got.Price)
	repo.AssertExpectations(t)
}

func TestNoteService_AddRepoError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateNote", mock.Anything, mock.Anything).Return(models.Note{}, errors.New("db down")).Once()

	_, err := NewNoteService(repo, newNoopLogger()).Add(context.Background(), alice, models.NoteInput{Title: "T", Content: "C"})
	assert.Error(t, err)
}

func TestNoteService_OwnershipIsolation(t *testing.T) {
	s := NewNoteService(&memRepo{}, newNoopLogger())
	ctx := context.Background()
	n := add(t, s, alice, "secret", "alice only")

	_, err := s.Edit(ctx, bob, n.ID, models.NotePatch{Title: models.Some("hacked")})
	assert.ErrorIs(t, err, ErrNoteNotFound)

	assert.ErrorIs(t, s.Delete(ctx, bob, n.ID), ErrNoteNotFound)

	_, err = s.SetPinned(ctx, bob, n.ID, true)
	assert.ErrorIs(t, err, ErrNoteNotFound)

	notes, err := s.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, notes)

	found, err := s.Search(ctx, bob, "secret")
	require.NoError(t, err)
	assert.Empty(t, found)

	// заметка Алисы не изменилась
	notes, err = s.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "secret", notes[0].Title)
	assert.False(t, notes[0].IsPinned)
}

func TestNoteService_MissingNoteLooksLikeForeign(t *testing.T) {
	s := NewNoteService(&memRepo{}, newNoopLogger())
	_, err := s.Edit(context.Background(), alice, uuid.NewString(), models.NotePatch{Title: models.Some("x")})
	assert.ErrorIs(t, err, ErrNoteNotFound)
}

func TestNoteService_EditOnlyPinnedIsRejected(t *testing.T) {
	repo := new(RepoMock)
	s := NewNoteService(repo, newNoopLogger())

	_, err := s.Edit(context.Background(), alice, "n1", models.NotePatch{IsPinned: models.Some(false)})
	assert.ErrorIs(t, err, ErrNoChanges)
	repo.AssertNotCalled(t, "GetNote", mock.Anything, mock.Anything, mock.Anything)
}

func TestNoteService_EditAppliesPinnedWithOtherField(t *testing.T) {
	s := NewNoteService(&memRepo{}, newNoopLogger())
	ctx := context.Background()
	n := add(t, s, alice, "T", "C")

	got, err := s.Edit(ctx, alice, n.ID, models.NotePatch{IsPinned: models.Some(true), Price: models.Some(0.0)})
	require.NoError(t, err)
	assert.True(t, got.IsPinned)
}

func TestNoteService_EditRoundTrip(t *testing.T) {
	s := NewNoteService(&memRepo{}, newNoopLogger())
	ctx := context.Background()
	n := add(t, s, alice, "old", "body")

	_, err := s.Edit(ctx, alice, n.ID, models.NotePatch{Title: models.Some("new")})
	require.NoError(t, err)

	notes, err := s.List(ctx, alice)
	require.NoError(t, err)
	count := 0
	for _, note := range notes {
		if note.Title == "new" {
			count++
		}
		assert.NotEqual(t, "old", note.Title)
	}
	assert.Equal(t, 1, count)
}

func TestNoteService_EditUpdateError(t *testing.T) {
	repo := new(RepoMock)
	repo.On("GetNote", mock.Anything, "n1", alice).Return(&models.Note{ID: "n1", UserID: alice, Title: "T"}, nil).Once()
	repo.On("UpdateNote", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	_, err := NewNoteService(repo, newNoopLogger()).Edit(context.Background(), alice, "n1", models.NotePatch{Title: models.Some("x")})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoteNotFound)
}

func TestNoteService_ListPinnedFirst(t *testing.T) {
	s := NewNoteService(&memRepo{}, newNoopLogger())
	ctx := context.Background()

	n1 := add(t, s, alice, "N1", "c")
	n2 := add(t, s, alice, "N2", "c")
	n3 := add(t, s, alice, "N3", "c")
	_, err := s.SetPinned(ctx, alice, n2.ID, true)
	require.NoError(t, err)

	notes, err := s.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, notes, 3)
	assert.Equal(t, []string{n2.ID, n1.ID, n3.ID}, []string{notes[0].ID, notes[1].ID, notes[2].ID})
}

func TestNoteService_ListNilBecomesEmpty(t *testing.T) {
	repo := new(RepoMock)
	repo.On("ListNotes", mock.Anything, alice).Return([]models.Note(nil), nil).Once()

	notes, err := NewNoteService(repo, newNoopLogger()).List(context.Background(), alice)
	require.NoError(t, err)
	assert.NotNil(t, notes)
}

func TestNoteService_Delete(t *testing.T) {
	s := NewNoteService(&memRepo{}, newNoopLogger())
	ctx := context.Background()
	n := add(t, s, alice, "T", "C")

	require.NoError(t, s.Delete(ctx, alice, n.ID))
	assert.ErrorIs(t, s.Delete(ctx, alice, n.ID), ErrNoteNotFound)
}

func TestNoteService_SetPinnedUnconditional(t *testing.T) {
	s := NewNoteService(&memRepo{}, newNoopLogger())
	ctx := context.Background()
	n := add(t, s, alice, "T", "C")

	for _, pinned := range []bool{true, true, false} {
		got, err := s.SetPinned(ctx, alice, n.ID, pinned)
		require.NoError(t, err)
		assert.Equal(t, pinned, got.IsPinned)
	}
}

func TestNoteService_Search(t *testing.T) {
	s := NewNoteService(&memRepo{}, newNoopLogger())
	ctx := context.Background()

	plan := add(t, s, alice, "ABC Plan", "x")
	inner := add(t, s, alice, "Misc", "some abc text")
	add(t, s, alice, "Other", "nothing")
	add(t, s, bob, "abc", "abc")

	found, err := s.Search(ctx, alice, "abc")
	require.NoError(t, err)
	ids := []string{}
	for _, n := range found {
		ids = append(ids, n.ID)
	}
	assert.ElementsMatch(t, []string{plan.ID, inner.ID}, ids)

	_, err = s.Search(ctx, alice, "")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}
