package ui

import (
	"notes-app/internal/model"
)

// Подписи формы
const (
	SubmitCreateLabel = "Create Note"
	SubmitUpdateLabel = "Update Note"
)

// Form - состояние формы заметки.
// Без заметки форма работает в режиме создания, с заметкой - в режиме редактирования.
type Form struct {
	note    *model.Note
	title   string
	content string
}

// NewForm создает форму; note == nil означает создание новой заметки
func NewForm(note *model.Note) *Form {
	f := &Form{}
	f.SetNote(note)
	return f
}

// SetNote переключает редактируемую заметку и сбрасывает поля к ее значениям
func (f *Form) SetNote(note *model.Note) {
	if note == nil {
		f.note = nil
		f.title, f.content = "", ""
		return
	}
	n := *note
	f.note = &n
	f.title, f.content = n.Title, n.Content
}

// Note возвращает редактируемую заметку или nil в режиме создания
func (f *Form) Note() *model.Note {
	return f.note
}

// IsEdit сообщает, редактирует ли форма существующую заметку
func (f *Form) IsEdit() bool {
	return f.note != nil
}

func (f *Form) Title() string   { return f.title }
func (f *Form) Content() string { return f.content }

func (f *Form) SetTitle(title string)     { f.title = title }
func (f *Form) SetContent(content string) { f.content = content }

// CanSubmit сообщает, заполнено ли хотя бы одно поле после обрезки пробелов
func (f *Form) CanSubmit() bool {
	return !model.IsBlank(f.title, f.content)
}

// SubmitLabel возвращает подпись кнопки отправки
func (f *Form) SubmitLabel() string {
	if f.IsEdit() {
		return SubmitUpdateLabel
	}
	return SubmitCreateLabel
}

// Submit передает обрезанные данные формы в onSubmit.
// Пустая форма не отправляется. После отправки в режиме создания поля очищаются.
func (f *Form) Submit(onSubmit func(model.NoteFormData)) bool {
	if !f.CanSubmit() {
		return false
	}

	data := model.NoteFormData{Title: f.title, Content: f.content}
	if f.note != nil {
		data.ID = f.note.ID
	}
	onSubmit(data.Trimmed())

	if f.note == nil {
		f.title, f.content = "", ""
	}
	return true
}

// Cancel вызывает onCancel (если задан) и очищает поля
func (f *Form) Cancel(onCancel func()) {
	if onCancel != nil {
		onCancel()
	}
	f.title, f.content = "", ""
}

// FormView - данные для шаблона формы
type FormView struct {
	ID          string
	Title       string
	Content     string
	SubmitLabel string
	CanSubmit   bool
	ShowCancel  bool
}

// View возвращает данные для отрисовки формы
func (f *Form) View(showCancel bool) FormView {
	v := FormView{
		Title:       f.title,
		Content:     f.content,
		SubmitLabel: f.SubmitLabel(),
		CanSubmit:   f.CanSubmit(),
		ShowCancel:  showCancel,
	}
	if f.note != nil {
		v.ID = f.note.ID
	}
	return v
}
