package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"notes-app/internal/model"
	"notes-app/internal/repository"
	svc "notes-app/internal/service"
	"notes-app/internal/service/notes"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Тексты ошибок API
const (
	MsgNoteNotFound  = "Note not found"
	MsgNoteEmpty     = "Title or content is required"
	MsgInvalidBody   = "Invalid request body"
	MsgInternalError = "Internal server error"
	MsgNoteDeleted   = "Note deleted successfully"
)

const eventWriteWait = 10 * time.Second

// Handler реализует REST API заметок
type Handler struct {
	noteService svc.NoteService
	events      *notes.EventService
	upgrader    websocket.Upgrader
	log         zerolog.Logger
}

// NewHandler создает новый экземпляр REST хэндлера.
// events может быть nil, тогда поток событий недоступен.
func NewHandler(noteService svc.NoteService, events *notes.EventService, log zerolog.Logger) *Handler {
	return &Handler{
		noteService: noteService,
		events:      events,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Разрешенные источники проверяет CORS слой
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log: log.With().Str("component", "rest_handler").Logger(),
	}
}

// Routes возвращает маршруты API относительно базового пути
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/notes", h.ListNotes)
	r.Post("/notes", h.CreateNote)
	r.Get("/notes/events", h.SubscribeToEvents)
	r.Get("/notes/{id}", h.GetNote)
	r.Put("/notes/{id}", h.UpdateNote)
	r.Delete("/notes/{id}", h.DeleteNote)
	return r
}

// ListNotes возвращает все заметки, новые первыми
func (h *Handler) ListNotes(w http.ResponseWriter, r *http.Request) {
	list, err := h.noteService.List(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}
	if list == nil {
		list = []model.Note{}
	}
	h.writeJSON(w, http.StatusOK, list)
}

// GetNote возвращает заметку по ID
func (h *Handler) GetNote(w http.ResponseWriter, r *http.Request) {
	note, err := h.noteService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, note)
}

// CreateNote создает заметку
func (h *Handler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req model.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	note, err := h.noteService.Create(r.Context(), req.Title, req.Content)
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, note)
}

// UpdateNote обновляет заметку по ID
func (h *Handler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req model.NoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	note, err := h.noteService.Update(r.Context(), chi.URLParam(r, "id"), req.Title, req.Content)
	if err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, note)
}

// DeleteNote удаляет заметку по ID
func (h *Handler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := h.noteService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, model.DeleteResponse{Message: MsgNoteDeleted})
}

// SubscribeToEvents отдает события изменения заметок через websocket
func (h *Handler) SubscribeToEvents(w http.ResponseWriter, r *http.Request) {
	if h.events == nil {
		h.writeError(w, http.StatusNotFound, "Event stream is disabled")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade уже записал ответ с ошибкой
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	// Снимаем таймауты http.Server, унаследованные соединением
	_ = conn.SetReadDeadline(time.Time{})

	eventChan := h.events.Subscribe()
	defer h.events.Unsubscribe(eventChan)

	h.log.Info().Str("remote", r.RemoteAddr).Msg("client subscribed to note events")

	// Чтение нужно, чтобы заметить закрытие соединения клиентом
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			h.log.Info().Str("remote", r.RemoteAddr).Msg("client unsubscribed from note events")
			return
		case <-r.Context().Done():
			return
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(eventWriteWait))
			if err := conn.WriteJSON(event); err != nil {
				h.log.Warn().Err(err).Msg("failed to send note event")
				return
			}
		}
	}
}

// handleError конвертирует внутренние ошибки в HTTP статусы
func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNoteNotFound):
		h.writeError(w, http.StatusNotFound, MsgNoteNotFound)
	case errors.Is(err, model.ErrNoteEmpty):
		h.writeError(w, http.StatusBadRequest, MsgNoteEmpty)
	case errors.Is(err, svc.ErrInvalidID):
		h.writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error().Err(err).Msg("request failed")
		h.writeError(w, http.StatusInternalServerError, MsgInternalError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, model.ErrorResponse{Error: msg})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn().Err(err).Msg("failed to write response")
	}
}
