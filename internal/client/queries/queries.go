package queries

import (
	"context"
	"time"

	"notes-app/internal/client/httpclient"
	"notes-app/internal/client/notes"
	"notes-app/internal/model"
	"notes-app/internal/query"

	"github.com/rs/zerolog"
)

// DefaultStaleTime - окно свежести запросов заметок
const DefaultStaleTime = 5 * time.Minute

// API - операции сервиса заметок, которые оборачивает кэш
type API interface {
	FetchNotes(ctx context.Context) ([]model.Note, error)
	FetchNote(ctx context.Context, id string) (model.Note, error)
	CreateNote(ctx context.Context, req model.NoteRequest) (model.Note, error)
	UpdateNote(ctx context.Context, id string, req model.NoteRequest) (model.Note, error)
	DeleteNote(ctx context.Context, id string) (model.DeleteResponse, error)
}

var _ API = (*notes.Client)(nil)

// Queries - запросы и мутации заметок поверх общего кэша
type Queries struct {
	api       API
	cache     *query.Cache
	staleTime time.Duration
	log       zerolog.Logger
}

// New создает набор запросов. staleTime <= 0 означает DefaultStaleTime.
func New(api API, cache *query.Cache, staleTime time.Duration, log zerolog.Logger) *Queries {
	if staleTime <= 0 {
		staleTime = DefaultStaleTime
	}
	return &Queries{
		api:       api,
		cache:     cache,
		staleTime: staleTime,
		log:       log.With().Str("component", "note_queries").Logger(),
	}
}

// NewCache создает кэш с политикой повторов клиента API
func NewCache(retry int, retryDelay time.Duration, log zerolog.Logger) *query.Cache {
	return query.NewCache(
		query.WithRetry(retry, retryDelay),
		query.WithRetryPolicy(httpclient.Retryable),
		query.WithLogger(log.With().Str("component", "query_cache").Logger()),
	)
}

// Cache возвращает кэш запросов
func (q *Queries) Cache() *query.Cache {
	return q.cache
}

// Notes возвращает список заметок
func (q *Queries) Notes(ctx context.Context) query.Result[[]model.Note] {
	return query.Fetch(ctx, q.cache, Lists(), q.staleTime, q.api.FetchNotes)
}

// Note возвращает заметку по ID; без ID запрос не выполняется
func (q *Queries) Note(ctx context.Context, id string) query.Result[model.Note] {
	if id == "" {
		return query.Result[model.Note]{Status: query.StatusIdle}
	}
	return query.Fetch(ctx, q.cache, Detail(id), q.staleTime, func(ctx context.Context) (model.Note, error) {
		return q.api.FetchNote(ctx, id)
	})
}

// CreateNote - мутация создания заметки
func (q *Queries) CreateNote() *query.Mutation[model.NoteFormData, model.Note] {
	return query.NewMutation(
		func(ctx context.Context, data model.NoteFormData) (model.Note, error) {
			return q.api.CreateNote(ctx, notes.FormDataToRequest(data))
		},
		func(note model.Note, _ model.NoteFormData) {
			q.cache.Invalidate(Lists())
			q.cache.SetData(Detail(note.ID), note)
			q.log.Info().Str("id", note.ID).Msg("note created")
		},
	)
}

// UpdateNote - мутация обновления заметки, ID берется из данных формы
func (q *Queries) UpdateNote() *query.Mutation[model.NoteFormData, model.Note] {
	return query.NewMutation(
		func(ctx context.Context, data model.NoteFormData) (model.Note, error) {
			return q.api.UpdateNote(ctx, data.ID, notes.FormDataToRequest(data))
		},
		func(note model.Note, data model.NoteFormData) {
			q.cache.Invalidate(Lists())
			q.cache.SetData(Detail(data.ID), note)
			q.log.Info().Str("id", data.ID).Msg("note updated")
		},
	)
}

// DeleteNote - мутация удаления заметки
func (q *Queries) DeleteNote() *query.Mutation[string, model.DeleteResponse] {
	return query.NewMutation(
		q.api.DeleteNote,
		func(_ model.DeleteResponse, id string) {
			q.cache.Remove(Detail(id))
			q.cache.Invalidate(Lists())
			q.log.Info().Str("id", id).Msg("note deleted")
		},
	)
}

// HandleEvent применяет событие об изменении заметки к кэшу
func (q *Queries) HandleEvent(event model.NoteEvent) {
	switch event.Type {
	case model.EventDeleted:
		q.cache.Remove(Detail(event.Note.ID))
	default:
		if event.Note.ID != "" {
			q.cache.Invalidate(Detail(event.Note.ID))
		}
	}
	q.cache.Invalidate(Lists())
}
