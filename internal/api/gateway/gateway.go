package gateway

import (
	"net/http"
	"strings"

	"notes-app/internal/api/http/middleware"
	"notes-app/internal/config"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Handler оборачивает mux в общую цепочку middleware HTTP сервера
func Handler(mux http.Handler, cfg *config.ConfigGateway, log zerolog.Logger) http.Handler {
	log = log.With().Str("component", "gateway").Logger()

	// Применение middleware (в обратном порядке выполнения):
	// 1. CORS (обработка CORS заголовков, самый внешний слой)
	// 2. Logging (логирует все запросы)
	// 3. Rate Limiting (ограничивает количество запросов)
	var handler http.Handler = mux
	handler = middleware.RateLimit(handler, cfg.RateLimitRPS, cfg.RateLimitBurst, log)
	handler = middleware.Logging(handler, log)
	handler = setupCORS(cfg).Handler(handler)

	log.Info().Str("origins", cfg.CORSAllowedOrigins).Msg("CORS enabled")
	return handler
}

// setupCORS настраивает CORS middleware используя конфигурацию
func setupCORS(cfg *config.ConfigGateway) *cors.Cors {
	origins := strings.Split(cfg.CORSAllowedOrigins, ",")
	// Убираем пробелы из origins
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	maxAge := cfg.CORSMaxAge
	if maxAge == 0 {
		maxAge = 86400 // 24 часа по умолчанию
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Content-Type",
			"Accept",
			"X-Requested-With",
		},
		MaxAge: maxAge,
	})
}
