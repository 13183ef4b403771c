package model

import (
	"errors"
	"strings"
	"time"
)

// ErrNoteEmpty возвращается, когда у заметки пустые и заголовок, и содержание
var ErrNoteEmpty = errors.New("title or content is required")

// Note представляет заметку (доменная модель и формат обмена с REST API)
type Note struct {
	ID        string    `json:"id"`        // Идентификатор, назначается сервером
	Title     string    `json:"title"`     // Заголовок заметки (может быть пустым)
	Content   string    `json:"content"`   // Содержание заметки (может быть пустым)
	CreatedAt time.Time `json:"createdAt"` // Дата создания, не меняется после создания
	UpdatedAt time.Time `json:"updatedAt"` // Дата последнего обновления
}

// WasUpdated сообщает, отличается ли время обновления от времени создания
func (n *Note) WasUpdated() bool {
	return !n.UpdatedAt.IsZero() && !n.UpdatedAt.Equal(n.CreatedAt)
}

// NoteFormData - данные формы. Пустой ID означает создание новой заметки.
type NoteFormData struct {
	ID      string `json:"id,omitempty"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// IsNew сообщает, описывает ли форма новую заметку
func (d NoteFormData) IsNew() bool {
	return d.ID == ""
}

// Trimmed возвращает копию с обрезанными пробелами в текстовых полях
func (d NoteFormData) Trimmed() NoteFormData {
	return NoteFormData{
		ID:      d.ID,
		Title:   strings.TrimSpace(d.Title),
		Content: strings.TrimSpace(d.Content),
	}
}

// NoteRequest - тело запросов POST /notes и PUT /notes/{id}
type NoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DeleteResponse - тело ответа DELETE /notes/{id}
type DeleteResponse struct {
	Message string `json:"message"`
}

// ErrorResponse - тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// IsBlank сообщает, пусты ли обе строки после обрезки пробелов
func IsBlank(title, content string) bool {
	return strings.TrimSpace(title) == "" && strings.TrimSpace(content) == ""
}
