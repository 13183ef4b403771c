package memory

import (
	"context"
	"sync"
	"time"

	"notes-app/internal/model"
	"notes-app/internal/repository"
)

// ErrNoteNotFound возвращается, когда заметка не найдена
var ErrNoteNotFound = repository.ErrNoteNotFound

var _ repository.NoteRepository = (*repo)(nil)

// WelcomeNote - заметка, которой наполняется пустое хранилище при включенном seed
var WelcomeNote = model.Note{
	ID:      "1",
	Title:   "Welcome to Notes App",
	Content: "This is your first note. You can edit or delete it.",
}

type repo struct {
	mu    sync.RWMutex
	notes []model.Note // от новых к старым
	now   repository.Clock
	newID repository.IDGenerator
}

// Option настраивает in-memory репозиторий
type Option func(*repo)

// WithClock подменяет источник времени (для тестов)
func WithClock(clock repository.Clock) Option {
	return func(r *repo) { r.now = clock }
}

// WithIDGenerator подменяет генератор идентификаторов
func WithIDGenerator(gen repository.IDGenerator) Option {
	return func(r *repo) { r.newID = gen }
}

// WithSeed добавляет начальные заметки (первая в списке - самая новая)
func WithSeed(notes ...model.Note) Option {
	return func(r *repo) {
		for i := len(notes) - 1; i >= 0; i-- {
			note := notes[i]
			ts := repository.Timestamp(r.now())
			if note.CreatedAt.IsZero() {
				note.CreatedAt = ts
			}
			if note.UpdatedAt.IsZero() {
				note.UpdatedAt = note.CreatedAt
			}
			r.notes = append([]model.Note{note}, r.notes...)
		}
	}
}

// NewRepository создает новый экземпляр in-memory репозитория на основе упорядоченного слайса
func NewRepository(opts ...Option) repository.NoteRepository {
	r := &repo{
		notes: make([]model.Note, 0),
		now:   time.Now,
		newID: repository.NewID,
	}
	// Часы и генератор должны быть настроены до seed
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create создает новую заметку и добавляет её в начало списка
func (r *repo) Create(ctx context.Context, note model.Note) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Генерируем ID если не передан
	if note.ID == "" {
		note.ID = r.newID()
	}

	// createdAt и updatedAt совпадают при создании
	now := repository.Timestamp(r.now())
	note.CreatedAt = now
	note.UpdatedAt = now

	r.notes = append([]model.Note{note}, r.notes...)

	return note, nil
}

// GetByID возвращает заметку по её ID
func (r *repo) GetByID(ctx context.Context, id string) (model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Note{}, ErrNoteNotFound
	}

	return r.notes[i], nil
}

// List возвращает копию списка всех заметок
func (r *repo) List(ctx context.Context) ([]model.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	notes := make([]model.Note, len(r.notes))
	copy(notes, r.notes)

	return notes, nil
}

// Update обновляет существующую заметку, сохраняя её позицию, ID и CreatedAt
func (r *repo) Update(ctx context.Context, note model.Note) (model.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(note.ID)
	if i < 0 {
		return model.Note{}, ErrNoteNotFound
	}

	stored := r.notes[i]
	stored.Title = note.Title
	stored.Content = note.Content
	stored.UpdatedAt = repository.NextUpdatedAt(stored.UpdatedAt, r.now())
	r.notes[i] = stored

	return stored, nil
}

// Delete удаляет заметку по ID
func (r *repo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrNoteNotFound
	}

	r.notes = append(r.notes[:i:i], r.notes[i+1:]...)

	return nil
}

func (r *repo) indexOf(id string) int {
	for i := range r.notes {
		if r.notes[i].ID == id {
			return i
		}
	}
	return -1
}
