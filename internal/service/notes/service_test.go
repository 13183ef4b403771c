package notes

import (
	"context"
	"errors"
	"testing"
	"time"

	"notes-app/internal/model"
	"notes-app/internal/repository"
	"notes-app/internal/repository/memory"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepository - простой mock репозитория для тестирования
type mockRepository struct {
	notes       map[string]model.Note
	createError error
	listError   error
	updateCalls int
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		notes: make(map[string]model.Note),
	}
}

func (m *mockRepository) Create(ctx context.Context, note model.Note) (model.Note, error) {
	if m.createError != nil {
		return model.Note{}, m.createError
	}

	if note.ID == "" {
		note.ID = "test-id-" + time.Now().Format("20060102150405.000000000")
	}

	now := time.Now()
	note.CreatedAt = now
	note.UpdatedAt = now
	m.notes[note.ID] = note
	return note, nil
}

func (m *mockRepository) GetByID(ctx context.Context, id string) (model.Note, error) {
	note, exists := m.notes[id]
	if !exists {
		return model.Note{}, repository.ErrNoteNotFound
	}
	return note, nil
}

func (m *mockRepository) List(ctx context.Context) ([]model.Note, error) {
	if m.listError != nil {
		return nil, m.listError
	}

	notes := make([]model.Note, 0, len(m.notes))
	for _, note := range m.notes {
		notes = append(notes, note)
	}
	return notes, nil
}

func (m *mockRepository) Update(ctx context.Context, note model.Note) (model.Note, error) {
	m.updateCalls++
	if _, exists := m.notes[note.ID]; !exists {
		return model.Note{}, repository.ErrNoteNotFound
	}

	note.UpdatedAt = note.UpdatedAt.Add(time.Millisecond)
	m.notes[note.ID] = note
	return note, nil
}

func (m *mockRepository) Delete(ctx context.Context, id string) error {
	if _, exists := m.notes[id]; !exists {
		return repository.ErrNoteNotFound
	}
	delete(m.notes, id)
	return nil
}

// Проверяем, что mockRepository реализует интерфейс
var _ repository.NoteRepository = (*mockRepository)(nil)

func seedNote(m *mockRepository) model.Note {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	note := model.Note{
		ID:        "test-id",
		Title:     "Original Title",
		Content:   "Original Content",
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	m.notes[note.ID] = note
	return note
}

func TestNoteService_Create_Success(t *testing.T) {
	ctx := context.Background()
	service := NewNoteService(newMockRepository(), nil, zerolog.Nop())

	note, err := service.Create(ctx, "Test Note", "Test Content")
	require.NoError(t, err)

	assert.Equal(t, "Test Note", note.Title)
	assert.Equal(t, "Test Content", note.Content)
	assert.NotEmpty(t, note.ID)
	assert.False(t, note.CreatedAt.IsZero())
	assert.Equal(t, note.CreatedAt, note.UpdatedAt)
}

func TestNoteService_Create_OnlyOneField(t *testing.T) {
	ctx := context.Background()
	service := NewNoteService(newMockRepository(), nil, zerolog.Nop())

	onlyTitle, err := service.Create(ctx, "Title", "")
	require.NoError(t, err)
	assert.Equal(t, "", onlyTitle.Content)

	onlyContent, err := service.Create(ctx, "", "Content")
	require.NoError(t, err)
	assert.Equal(t, "", onlyContent.Title)
}

func TestNoteService_Create_BothEmpty(t *testing.T) {
	ctx := context.Background()
	mockRepo := newMockRepository()
	service := NewNoteService(mockRepo, nil, zerolog.Nop())

	for _, tc := range [][2]string{{"", ""}, {"   ", "\t\n"}} {
		note, err := service.Create(ctx, tc[0], tc[1])

		assert.ErrorIs(t, err, model.ErrNoteEmpty)
		assert.Equal(t, model.Note{}, note, "Expected empty note on error")
	}
	assert.Empty(t, mockRepo.notes, "validation failure must not touch the store")
}

func TestNoteService_Create_Trims(t *testing.T) {
	ctx := context.Background()
	service := NewNoteService(newMockRepository(), nil, zerolog.Nop())

	note, err := service.Create(ctx, "  A  ", "  B  ")
	require.NoError(t, err)

	assert.Equal(t, "A", note.Title)
	assert.Equal(t, "B", note.Content)
}

func TestNoteService_Create_RepositoryError(t *testing.T) {
	mockRepo := newMockRepository()
	mockRepo.createError = errors.New("disk full")
	service := NewNoteService(mockRepo, nil, zerolog.Nop())

	_, err := service.Create(context.Background(), "t", "c")

	assert.EqualError(t, err, "disk full")
}

func TestNoteService_Get(t *testing.T) {
	ctx := context.Background()
	mockRepo := newMockRepository()
	existing := seedNote(mockRepo)
	service := NewNoteService(mockRepo, nil, zerolog.Nop())

	note, err := service.Get(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing, note)

	_, err = service.Get(ctx, "non-existent-id")
	assert.ErrorIs(t, err, repository.ErrNoteNotFound)

	_, err = service.Get(ctx, "")
	assert.EqualError(t, err, "id cannot be empty")
}

func TestNoteService_List(t *testing.T) {
	mockRepo := newMockRepository()
	seedNote(mockRepo)
	service := NewNoteService(mockRepo, nil, zerolog.Nop())

	notes, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, notes, 1)

	mockRepo.listError = errors.New("list error")
	_, err = service.List(context.Background())
	assert.Error(t, err)
}

func TestNoteService_Update_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := newMockRepository()
	existing := seedNote(mockRepo)
	service := NewNoteService(mockRepo, nil, zerolog.Nop())

	updated, err := service.Update(ctx, existing.ID, "Updated Title", "Updated Content")
	require.NoError(t, err)

	assert.Equal(t, "Updated Title", updated.Title)
	assert.Equal(t, "Updated Content", updated.Content)
	assert.Equal(t, existing.ID, updated.ID)
	assert.Equal(t, existing.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(existing.UpdatedAt))
}

func TestNoteService_Update_EmptyFieldKeepsStoredValue(t *testing.T) {
	ctx := context.Background()
	mockRepo := newMockRepository()
	existing := seedNote(mockRepo)
	service := NewNoteService(mockRepo, nil, zerolog.Nop())

	// Пустой content не затирает сохраненное значение
	updated, err := service.Update(ctx, existing.ID, "Only Title", "")
	require.NoError(t, err)
	assert.Equal(t, "Only Title", updated.Title)
	assert.Equal(t, "Original Content", updated.Content)

	// Пробельный title тоже не затирает
	updated, err = service.Update(ctx, existing.ID, "   ", "Only Content")
	require.NoError(t, err)
	assert.Equal(t, "Only Title", updated.Title)
	assert.Equal(t, "Only Content", updated.Content)
}

func TestNoteService_Update_BothEmpty(t *testing.T) {
	ctx := context.Background()
	mockRepo := newMockRepository()
	existing := seedNote(mockRepo)
	service := NewNoteService(mockRepo, nil, zerolog.Nop())

	_, err := service.Update(ctx, existing.ID, "", "  ")

	assert.ErrorIs(t, err, model.ErrNoteEmpty)
	assert.Equal(t, 0, mockRepo.updateCalls)
	assert.Equal(t, existing, mockRepo.notes[existing.ID])
}

func TestNoteService_Update_NotFoundBeforeValidation(t *testing.T) {
	service := NewNoteService(newMockRepository(), nil, zerolog.Nop())

	note, err := service.Update(context.Background(), "non-existent-id", "", "")

	assert.ErrorIs(t, err, repository.ErrNoteNotFound)
	assert.Equal(t, model.Note{}, note)
}

func TestNoteService_Update_EmptyID(t *testing.T) {
	service := NewNoteService(newMockRepository(), nil, zerolog.Nop())

	_, err := service.Update(context.Background(), "", "title", "content")

	assert.EqualError(t, err, "id cannot be empty")
}

func TestNoteService_Delete(t *testing.T) {
	ctx := context.Background()
	mockRepo := newMockRepository()
	existing := seedNote(mockRepo)
	service := NewNoteService(mockRepo, nil, zerolog.Nop())

	require.NoError(t, service.Delete(ctx, existing.ID))
	_, exists := mockRepo.notes[existing.ID]
	assert.False(t, exists, "Expected note to be deleted")

	assert.ErrorIs(t, service.Delete(ctx, existing.ID), repository.ErrNoteNotFound)
	assert.EqualError(t, service.Delete(ctx, ""), "id cannot be empty")
}

func TestNoteService_PublishesEvents(t *testing.T) {
	ctx := context.Background()
	events := NewEventService()
	ch := events.Subscribe()
	defer events.Unsubscribe(ch)
	service := NewNoteService(memory.NewRepository(), events, zerolog.Nop())

	created, err := service.Create(ctx, "T", "C")
	require.NoError(t, err)
	_, err = service.Update(ctx, created.ID, "T2", "")
	require.NoError(t, err)
	require.NoError(t, service.Delete(ctx, created.ID))

	// Ошибки валидации событий не порождают
	_, _ = service.Create(ctx, "", "")

	var got []model.EventType
	for i := 0; i < 3; i++ {
		ev := <-ch
		assert.Equal(t, created.ID, ev.Note.ID)
		got = append(got, ev.Type)
	}
	assert.Equal(t, []model.EventType{model.EventCreated, model.EventUpdated, model.EventDeleted}, got)
	assert.Len(t, ch, 0)
}
