package service

import (
	"context"
	"errors"

	"notes-app/internal/model"
)

// ErrInvalidID возвращается при пустом ID заметки
var ErrInvalidID = errors.New("id cannot be empty")

// NoteService интерфейс для бизнес-логики работы с заметками (сторона backend)
type NoteService interface {
	// Create создает новую заметку с указанными title и content
	Create(ctx context.Context, title, content string) (model.Note, error)

	// Get возвращает заметку по её ID
	Get(ctx context.Context, id string) (model.Note, error)

	// List возвращает список всех заметок, начиная с самой новой
	List(ctx context.Context) ([]model.Note, error)

	// Update обновляет заметку с указанным ID.
	// Пустые после обрезки поля не затирают сохраненные значения.
	Update(ctx context.Context, id, title, content string) (model.Note, error)

	// Delete удаляет заметку по ID
	Delete(ctx context.Context, id string) error
}
