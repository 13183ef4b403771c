package web

import (
	"net/http"
	"sync"
	"time"

	"notes-app/internal/app"
	"notes-app/internal/client/queries"
	"notes-app/internal/ui"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// SessionCookie - имя cookie с идентификатором сессии браузера
const SessionCookie = "notes_session"

// DefaultSessionIdle - время неактивности, после которого сессия удаляется
const DefaultSessionIdle = 30 * time.Minute

// session - состояние одного браузера
type session struct {
	app      *app.App
	lastSeen time.Time
}

// Server отдает HTML интерфейс заметок. У каждой сессии браузера свой app.App.
// Сессия создается только запросами, меняющими состояние; GET без cookie
// отрисовывает страницу по умолчанию.
type Server struct {
	queries  *queries.Queries
	renderer *ui.Renderer
	loc      *time.Location
	log      zerolog.Logger
	idle     time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*session
}

// Option настраивает Server
type Option func(*Server)

// WithSessionIdle задает время неактивности, после которого сессия удаляется
func WithSessionIdle(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.idle = d
		}
	}
}

// WithClock подменяет источник времени
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New создает HTML сервер поверх общего кэша запросов
func New(q *queries.Queries, loc *time.Location, log zerolog.Logger, opts ...Option) (*Server, error) {
	renderer, err := ui.NewRenderer()
	if err != nil {
		return nil, err
	}
	s := &Server{
		queries:  q,
		renderer: renderer,
		loc:      loc,
		log:      log.With().Str("component", "web").Logger(),
		idle:     DefaultSessionIdle,
		now:      time.Now,
		sessions: make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Routes возвращает маршруты HTML интерфейса
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", s.index)
	r.Post("/new", s.openNew)
	r.Post("/submit", s.submit)
	r.Post("/cancel", s.cancel)
	r.Post("/notes/{id}/edit", s.edit)
	r.Get("/notes/{id}/delete", s.confirmDelete)
	r.Post("/notes/{id}/delete", s.delete)
	return r
}

// lookup возвращает существующую сессию запроса и продлевает ее
func (s *Server) lookup(r *http.Request) (*app.App, bool) {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess, ok := s.sessions[c.Value]
	if !ok {
		return nil, false
	}
	if now.Sub(sess.lastSeen) >= s.idle {
		delete(s.sessions, c.Value)
		return nil, false
	}
	sess.lastSeen = now
	return sess.app, true
}

// session возвращает контроллер сессии, создавая новую сессию при необходимости
func (s *Server) session(w http.ResponseWriter, r *http.Request) *app.App {
	if a, ok := s.lookup(r); ok {
		return a
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.evictLocked(now)

	id := uuid.NewString()
	a := app.New(s.queries, s.loc, s.log.With().Str("session", id).Logger())
	s.sessions[id] = &session{app: a, lastSeen: now}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return a
}

// evictLocked удаляет сессии, неактивные дольше s.idle
func (s *Server) evictLocked(now time.Time) {
	n := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastSeen) >= s.idle {
			delete(s.sessions, id)
			n++
		}
	}
	if n > 0 {
		s.log.Debug().Int("evicted", n).Int("active", len(s.sessions)).Msg("idle sessions evicted")
	}
}

// Sessions возвращает число активных сессий
func (s *Server) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	a, ok := s.lookup(r)
	if !ok {
		a = app.New(s.queries, s.loc, s.log)
	}
	page := a.Page(r.Context())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.renderer.Page(w, page); err != nil {
		s.log.Error().Err(err).Msg("failed to render page")
	}
}

func (s *Server) openNew(w http.ResponseWriter, r *http.Request) {
	s.session(w, r).OpenNew()
	redirectHome(w, r)
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	a := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	a.SetFields(r.PostForm.Get("title"), r.PostForm.Get("content"))
	// Ошибка сохранения уже отражена в предупреждении сессии
	_ = a.Submit(r.Context())
	redirectHome(w, r)
}

func (s *Server) cancel(w http.ResponseWriter, r *http.Request) {
	s.session(w, r).Cancel()
	redirectHome(w, r)
}

func (s *Server) edit(w http.ResponseWriter, r *http.Request) {
	a := s.session(w, r)
	// Ошибка загрузки отражена в предупреждении сессии
	_ = a.EditByID(r.Context(), chi.URLParam(r, "id"))
	redirectHome(w, r)
}

func (s *Server) confirmDelete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	page := ui.ConfirmPage{ID: chi.URLParam(r, "id"), Message: app.ConfirmDeleteMessage}
	if err := s.renderer.Confirm(w, page); err != nil {
		s.log.Error().Err(err).Msg("failed to render confirmation")
	}
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	a := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	confirmed := r.PostForm.Get("confirm") == "yes"
	_, _ = a.Delete(r.Context(), chi.URLParam(r, "id"), func(string) bool { return confirmed })
	redirectHome(w, r)
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
