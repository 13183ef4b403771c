package queries

import (
	"context"

	"notes-app/internal/model"
	"notes-app/internal/query"
)

// NoteMutation объединяет создание и обновление: форма без ID создает
// заметку, с ID обновляет существующую
type NoteMutation struct {
	create *query.Mutation[model.NoteFormData, model.Note]
	update *query.Mutation[model.NoteFormData, model.Note]
}

// NoteMutation создает объединенную мутацию создания/обновления
func (q *Queries) NoteMutation() *NoteMutation {
	return &NoteMutation{
		create: q.CreateNote(),
		update: q.UpdateNote(),
	}
}

// Mutate создает или обновляет заметку в зависимости от наличия ID
func (m *NoteMutation) Mutate(ctx context.Context, data model.NoteFormData) (model.Note, error) {
	if data.IsNew() {
		return m.create.Mutate(ctx, data)
	}
	return m.update.Mutate(ctx, data)
}

func (m *NoteMutation) IsLoading() bool {
	return m.create.IsPending() || m.update.IsPending()
}

func (m *NoteMutation) IsError() bool {
	return m.create.IsError() || m.update.IsError()
}

func (m *NoteMutation) IsSuccess() bool {
	return m.create.IsSuccess() || m.update.IsSuccess()
}

// Error возвращает ошибку любой из мутаций
func (m *NoteMutation) Error() error {
	if err := m.create.Err(); err != nil {
		return err
	}
	return m.update.Err()
}
