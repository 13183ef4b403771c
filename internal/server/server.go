package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"notes-app/internal/api/gateway"
	"notes-app/internal/api/rest"
	"notes-app/internal/api/swagger"
	"notes-app/internal/client/httpclient"
	"notes-app/internal/client/notes"
	"notes-app/internal/client/queries"
	"notes-app/internal/config"
	"notes-app/internal/repository"
	"notes-app/internal/repository/memory"
	"notes-app/internal/repository/sqlite"
	notesService "notes-app/internal/service/notes"
	"notes-app/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Server представляет HTTP сервер приложения: HTML интерфейс и mock backend
type Server struct {
	// HTTP компоненты
	Router     chi.Router
	HTTPServer *http.Server
	HTTPAddr   string
	Listener   net.Listener

	// Контекст сервера: отменяется при shutdown и останавливает
	// подписку на события и websocket стримы
	Ctx    context.Context
	Cancel context.CancelFunc

	// Конфигурация
	Config *config.Config

	// APIBaseURL - абсолютный адрес REST API, с которым работает клиент
	APIBaseURL string

	log     zerolog.Logger
	db      *sql.DB
	events  *notesService.EventService
	client  *notes.Client
	queries *queries.Queries
}

// NewServer создает сервер и занимает HTTP порт
func NewServer(cfg *config.Config, log zerolog.Logger) (*Server, error) {
	httpAddr := net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.PortHTTP))

	listener, err := net.Listen("tcp", httpAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", httpAddr, err)
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())

	return &Server{
		Router:   chi.NewRouter(),
		HTTPAddr: listener.Addr().String(),
		Listener: listener,
		Ctx:      serverCtx,
		Cancel:   serverCancel,
		Config:   cfg,
		log:      log,
	}, nil
}

// Initialize инициализирует компоненты сервера.
// Backend: Repository → Service → Handler. Клиент: HTTP клиент → сервис заметок → кэш → UI.
func (s *Server) Initialize() error {
	baseURL, err := config.ResolveBaseURL(s.Config.API.BaseURL, s.HTTPAddr)
	if err != nil {
		return err
	}
	s.APIBaseURL = baseURL

	if s.Config.Mock.Enabled {
		if err := s.initMockBackend(); err != nil {
			return err
		}
	}

	if err := s.initClient(); err != nil {
		return err
	}

	s.HTTPServer = &http.Server{
		Handler:           gateway.Handler(s.Router, s.Config.Gateway, s.log),
		ReadTimeout:       seconds(s.Config.Server.HTTPReadTimeout),
		WriteTimeout:      seconds(s.Config.Server.HTTPWriteTimeout),
		IdleTimeout:       seconds(s.Config.Server.HTTPIdleTimeout),
		ReadHeaderTimeout: seconds(s.Config.Server.HTTPReadHeaderTimeout),
		BaseContext:       func(net.Listener) context.Context { return s.Ctx },
	}

	return nil
}

func (s *Server) initMockBackend() error {
	noteRepo, err := s.newRepository()
	if err != nil {
		return err
	}

	s.events = notesService.NewEventService()
	noteSvc := notesService.NewNoteService(noteRepo, s.events, s.log)
	s.log.Info().Msg("initialized note service")

	noteHandler := rest.NewHandler(noteSvc, s.events, s.log)
	basePath := apiBasePath(s.APIBaseURL)
	s.Router.Mount(basePath, noteHandler.Routes())
	s.log.Info().Str("base_path", basePath).Msg("mock REST API mounted")

	if s.Config.Swagger.Enabled {
		if err := swagger.ServeSwagger(s.Router, basePath, s.log); err != nil {
			return err
		}
	}
	return nil
}

// newRepository создает хранилище mock backend согласно конфигурации
func (s *Server) newRepository() (repository.NoteRepository, error) {
	switch s.Config.Mock.Storage {
	case "", "memory":
		var opts []memory.Option
		if s.Config.Mock.Seed {
			opts = append(opts, memory.WithSeed(memory.WelcomeNote))
		}
		s.log.Info().Msg("initialized in-memory repository")
		return memory.NewRepository(opts...), nil

	case "sqlite":
		db, err := sqlite.Open(s.Ctx, s.Config.Mock.SQLitePath)
		if err != nil {
			return nil, err
		}
		s.db = db
		repo := sqlite.NewRepository(db)
		if s.Config.Mock.Seed {
			if err := sqlite.Seed(s.Ctx, repo, memory.WelcomeNote); err != nil {
				return nil, err
			}
		}
		s.log.Info().Str("path", s.Config.Mock.SQLitePath).Msg("initialized sqlite repository")
		return repo, nil

	default:
		return nil, fmt.Errorf("unknown mock storage %q", s.Config.Mock.Storage)
	}
}

func (s *Server) initClient() error {
	httpClient := &http.Client{Timeout: seconds(s.Config.API.TimeoutSeconds)}
	apiClient := httpclient.New(s.APIBaseURL,
		httpclient.WithHTTPClient(httpClient),
		httpclient.WithLogger(s.log.With().Str("component", "http_client").Logger()),
	)
	s.client = notes.NewClient(apiClient)

	q := s.Config.Query
	cache := queries.NewCache(q.Retry, time.Duration(q.RetryDelayMS)*time.Millisecond, s.log)
	s.queries = queries.New(s.client, cache, seconds(q.StaleTimeSeconds), s.log)

	loc, err := displayLocation(s.Config.Server.DisplayTimezone)
	if err != nil {
		return err
	}

	idle := time.Duration(s.Config.Server.SessionIdleMinutes) * time.Minute
	ui, err := web.New(s.queries, loc, s.log, web.WithSessionIdle(idle))
	if err != nil {
		return err
	}
	s.Router.Mount("/", ui.Routes())
	s.log.Info().Str("api", s.APIBaseURL).Msg("initialized web UI")
	return nil
}

// Start запускает HTTP сервер и подписку на события в горутинах.
// Возвращает канал ошибок для отслеживания ошибок сервера.
func (s *Server) Start() <-chan error {
	errChan := make(chan error, 1)

	go func() {
		s.log.Info().Str("addr", s.HTTPAddr).Msg("HTTP server listening")
		if err := s.HTTPServer.Serve(s.Listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	if s.Config.API.WatchEvents {
		reconnect := seconds(s.Config.API.WatchReconnectSeconds)
		log := s.log.With().Str("component", "event_watcher").Logger()
		go s.client.WatchLoop(s.Ctx, reconnect, log, s.queries.HandleEvent)
	}

	return errChan
}

// Shutdown выполняет graceful shutdown сервера
func (s *Server) Shutdown() error {
	s.log.Info().Msg("starting graceful shutdown")

	// Отменяем контекст сервера до Shutdown: websocket стримы не завершаются сами
	s.Cancel()

	shutdownTimeout := seconds(s.Config.Server.GracefulShutdownTimeout)
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if s.HTTPServer != nil {
		if err := s.HTTPServer.Shutdown(ctx); err != nil {
			s.log.Warn().Err(err).Msg("graceful shutdown timeout, forcing stop")
			errs = append(errs, err, s.HTTPServer.Close())
		}
	} else {
		errs = append(errs, s.Listener.Close())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}

	s.log.Info().Msg("HTTP server stopped")
	return errors.Join(errs...)
}

// apiBasePath возвращает путь, под которым монтируется mock API
func apiBasePath(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || strings.Trim(u.Path, "/") == "" {
		return config.DefaultBaseURL
	}
	return "/" + strings.Trim(u.Path, "/")
}

func displayLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load display timezone %q: %w", name, err)
	}
	return loc, nil
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
