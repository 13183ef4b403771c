package app

import (
	"context"
	"sync"
	"time"

	"notes-app/internal/client/queries"
	"notes-app/internal/model"
	"notes-app/internal/query"
	"notes-app/internal/ui"

	"github.com/rs/zerolog"
)

// Сообщения пользователю
const (
	AlertSaveFailed      = "Failed to save note. Please try again."
	AlertDeleteFailed    = "Failed to delete note. Please try again."
	AlertLoadFailed      = "Failed to load note. Please try again."
	ConfirmDeleteMessage = "Are you sure you want to delete this note?"
)

// Mode - режим главного экрана
type Mode int

const (
	// ModeList - виден только список заметок
	ModeList Mode = iota
	// ModeForm - открыта форма создания или редактирования
	ModeForm
)

func (m Mode) String() string {
	if m == ModeForm {
		return "form"
	}
	return "list"
}

// State - состояние главного экрана.
// Editing задан только в ModeForm при редактировании существующей заметки.
type State struct {
	Mode    Mode
	Editing *model.Note
}

// Confirmer спрашивает подтверждение у пользователя
type Confirmer func(message string) bool

// App - контроллер главного экрана: список заметок и форма
type App struct {
	mu sync.Mutex

	queries *queries.Queries
	save    *queries.NoteMutation
	remove  *query.Mutation[string, model.DeleteResponse]
	loc     *time.Location
	log     zerolog.Logger

	state State
	form  *ui.Form
	alert string
}

// New создает контроллер в режиме списка
func New(q *queries.Queries, loc *time.Location, log zerolog.Logger) *App {
	if loc == nil {
		loc = time.UTC
	}
	return &App{
		queries: q,
		save:    q.NoteMutation(),
		remove:  q.DeleteNote(),
		loc:     loc,
		log:     log.With().Str("component", "app").Logger(),
		form:    ui.NewForm(nil),
	}
}

// State возвращает копию текущего состояния
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stateLocked()
}

func (a *App) stateLocked() State {
	s := a.state
	if s.Editing != nil {
		n := *s.Editing
		s.Editing = &n
	}
	return s
}

// OpenNew открывает пустую форму; доступно только в режиме списка
func (a *App) OpenNew() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state.Mode != ModeList {
		return false
	}
	a.openLocked(nil)
	return true
}

// Edit открывает форму редактирования заметки из любого состояния
func (a *App) Edit(note model.Note) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.openLocked(&note)
}

// EditByID загружает заметку (из кэша, если она свежая) и открывает ее на редактирование.
// При ошибке загрузки состояние не меняется и выставляется предупреждение.
func (a *App) EditByID(ctx context.Context, id string) error {
	res := a.queries.Note(ctx, id)
	if res.IsError() {
		a.log.Warn().Err(res.Err).Str("id", id).Msg("failed to open note for editing")
		a.mu.Lock()
		a.alert = AlertLoadFailed
		a.mu.Unlock()
		return res.Err
	}
	a.Edit(res.Data)
	return nil
}

func (a *App) openLocked(note *model.Note) {
	a.state = State{Mode: ModeForm, Editing: note}
	a.form.SetNote(note)
}

func (a *App) closeLocked() {
	a.state = State{Mode: ModeList}
	a.form.SetNote(nil)
}

// SetFields обновляет поля открытой формы
func (a *App) SetFields(title, content string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.form.SetTitle(title)
	a.form.SetContent(content)
}

// Submit отправляет форму. При успехе форма закрывается, при ошибке
// остается открытой и выставляется предупреждение. Пустая форма не отправляется.
func (a *App) Submit(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state.Mode != ModeForm {
		return nil
	}

	var err error
	submitted := a.form.Submit(func(data model.NoteFormData) {
		_, err = a.save.Mutate(ctx, data)
	})
	if !submitted {
		return nil
	}
	if err != nil {
		a.log.Error().Err(err).Msg("failed to save note")
		a.alert = AlertSaveFailed
		return err
	}
	a.closeLocked()
	return nil
}

// Cancel закрывает форму без сохранения
func (a *App) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.form.Cancel(a.closeLocked)
}

// Delete удаляет заметку после подтверждения. Если удаленная заметка
// открыта на редактирование, форма закрывается.
func (a *App) Delete(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	if confirm != nil && !confirm(ConfirmDeleteMessage) {
		return false, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if _, err := a.remove.Mutate(ctx, id); err != nil {
		a.log.Error().Err(err).Str("id", id).Msg("failed to delete note")
		a.alert = AlertDeleteFailed
		return false, err
	}
	if a.state.Editing != nil && a.state.Editing.ID == id {
		a.closeLocked()
	}
	return true, nil
}

// Notes возвращает список заметок из кэша запросов
func (a *App) Notes(ctx context.Context) query.Result[[]model.Note] {
	return a.queries.Notes(ctx)
}

// TakeAlert возвращает и сбрасывает текущее предупреждение
func (a *App) TakeAlert() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	alert := a.alert
	a.alert = ""
	return alert
}

// Page собирает данные главной страницы
func (a *App) Page(ctx context.Context) ui.Page {
	list := ui.NewListView(a.Notes(ctx), a.loc, ui.Actions{Edit: true, Delete: true})

	a.mu.Lock()
	defer a.mu.Unlock()

	page := ui.Page{
		Alert:         a.alert,
		ShowNewButton: a.state.Mode == ModeList,
		List:          list,
	}
	a.alert = ""
	if a.state.Mode == ModeForm {
		view := a.form.View(true)
		page.Form = &view
	}
	return page
}
