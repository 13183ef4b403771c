package ui

import (
	"time"

	"notes-app/internal/model"
)

// UntitledNote - заголовок карточки заметки без заголовка
const UntitledNote = "Untitled Note"

// DateLayout - формат дат на карточке, например "Jan 2, 2024, 03:04 PM"
const DateLayout = "Jan 2, 2006, 03:04 PM"

// FormatDate форматирует время в часовом поясе loc; нулевое время дает пустую строку
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// Actions - доступные на карточке действия
type Actions struct {
	Edit   bool
	Delete bool
}

// CardView - данные для шаблона карточки заметки
type CardView struct {
	ID        string
	Title     string
	Content   string
	Created   string
	Updated   string // пусто, если заметка не обновлялась
	CanEdit   bool
	CanDelete bool
}

// NewCardView готовит карточку заметки к отрисовке
func NewCardView(note model.Note, loc *time.Location, actions Actions) CardView {
	card := CardView{
		ID:        note.ID,
		Title:     note.Title,
		Content:   note.Content,
		Created:   FormatDate(note.CreatedAt, loc),
		CanEdit:   actions.Edit,
		CanDelete: actions.Delete,
	}
	if card.Title == "" {
		card.Title = UntitledNote
	}
	if note.WasUpdated() {
		card.Updated = FormatDate(note.UpdatedAt, loc)
	}
	return card
}
