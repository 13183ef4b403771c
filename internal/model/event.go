package model

// EventType - тип изменения заметки
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// NoteEvent описывает изменение заметки в хранилище.
// Для EventDeleted заполнен только Note.ID.
type NoteEvent struct {
	Type EventType `json:"type"`
	Note Note      `json:"note"`
}
