package repository

import (
	"context"
	"errors"
	"time"

	"notes-app/internal/model"

	"github.com/google/uuid"
)

// ErrNoteNotFound возвращается, когда заметка не найдена
var ErrNoteNotFound = errors.New("note not found")

// NoteRepository интерфейс для работы с заметками в хранилище
type NoteRepository interface {
	// Create создает новую заметку и возвращает созданную заметку с ID.
	// Новая заметка становится первой в списке.
	Create(ctx context.Context, note model.Note) (model.Note, error)

	// GetByID возвращает заметку по её ID
	GetByID(ctx context.Context, id string) (model.Note, error)

	// List возвращает список всех заметок, начиная с самой новой
	List(ctx context.Context) ([]model.Note, error)

	// Update заменяет title и content существующей заметки и возвращает обновленную заметку
	Update(ctx context.Context, note model.Note) (model.Note, error)

	// Delete удаляет заметку по ID
	Delete(ctx context.Context, id string) error
}

// Clock возвращает текущее время
type Clock func() time.Time

// IDGenerator выдает новый уникальный идентификатор заметки
type IDGenerator func() string

// NewID генерирует UUID для новой заметки
func NewID() string {
	return uuid.New().String()
}

// Timestamp приводит время к UTC с точностью до миллисекунд (как ISO-8601 в JSON)
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// NextUpdatedAt возвращает новое значение updatedAt, которое никогда не меньше предыдущего
func NextUpdatedAt(prev, now time.Time) time.Time {
	now = Timestamp(now)
	if now.Before(prev) {
		return prev
	}
	return now
}
