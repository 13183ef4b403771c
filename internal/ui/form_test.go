package ui

import (
	"testing"

	"notes-app/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestForm_CreateModeStartsEmpty(t *testing.T) {
	f := NewForm(nil)

	assert.False(t, f.IsEdit())
	assert.Empty(t, f.Title())
	assert.Empty(t, f.Content())
	assert.Equal(t, "Create Note", f.SubmitLabel())
	assert.False(t, f.CanSubmit())
}

func TestForm_EditModePrefills(t *testing.T) {
	note := &model.Note{ID: "1", Title: "Test Note", Content: "Test Content"}

	f := NewForm(note)

	assert.True(t, f.IsEdit())
	assert.Equal(t, "Test Note", f.Title())
	assert.Equal(t, "Test Content", f.Content())
	assert.Equal(t, "Update Note", f.SubmitLabel())
}

func TestForm_SetNoteResetsFields(t *testing.T) {
	f := NewForm(&model.Note{ID: "1", Title: "First"})
	f.SetTitle("changed")

	f.SetNote(&model.Note{ID: "2", Title: "Second", Content: "B"})
	assert.Equal(t, "Second", f.Title())
	assert.Equal(t, "B", f.Content())

	f.SetNote(nil)
	assert.False(t, f.IsEdit())
	assert.Empty(t, f.Title())
}

func TestForm_SubmitTrims(t *testing.T) {
	f := NewForm(nil)
	f.SetTitle("  A  ")
	f.SetContent("  B  ")

	var got model.NoteFormData
	ok := f.Submit(func(d model.NoteFormData) { got = d })

	assert.True(t, ok)
	assert.Equal(t, model.NoteFormData{Title: "A", Content: "B"}, got)
	// В режиме создания поля очищаются после отправки
	assert.Empty(t, f.Title())
	assert.Empty(t, f.Content())
}

func TestForm_SubmitBlankIsNoop(t *testing.T) {
	f := NewForm(nil)
	f.SetTitle("   ")
	f.SetContent("\n\t")

	called := false
	ok := f.Submit(func(model.NoteFormData) { called = true })

	assert.False(t, ok)
	assert.False(t, called)
	assert.False(t, f.CanSubmit())
	assert.False(t, f.View(true).CanSubmit)
}

func TestForm_SubmitEditKeepsID(t *testing.T) {
	f := NewForm(&model.Note{ID: "1", Title: "Old", Content: "Body"})
	f.SetTitle(" New ")

	var got model.NoteFormData
	f.Submit(func(d model.NoteFormData) { got = d })

	assert.Equal(t, model.NoteFormData{ID: "1", Title: "New", Content: "Body"}, got)
	// В режиме редактирования поля сохраняются
	assert.Equal(t, " New ", f.Title())
}

func TestForm_Cancel(t *testing.T) {
	f := NewForm(&model.Note{ID: "1", Title: "Old"})

	called := false
	f.Cancel(func() { called = true })

	assert.True(t, called)
	assert.Empty(t, f.Title())

	assert.NotPanics(t, func() { f.Cancel(nil) })
}

func TestForm_View(t *testing.T) {
	f := NewForm(&model.Note{ID: "7", Title: "T"})

	v := f.View(false)

	assert.Equal(t, FormView{ID: "7", Title: "T", SubmitLabel: "Update Note", CanSubmit: true}, v)
}
