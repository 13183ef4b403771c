package swagger

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

//go:embed embed/notes.swagger.json
var swaggerContent embed.FS

// Spec возвращает swagger.json с basePath, равным пути монтирования API
func Spec(basePath string) ([]byte, error) {
	raw, err := swaggerContent.ReadFile("embed/notes.swagger.json")
	if err != nil {
		return nil, fmt.Errorf("read swagger spec: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse swagger spec: %w", err)
	}
	if basePath == "" {
		basePath = "/"
	}
	doc["basePath"] = basePath

	return json.MarshalIndent(doc, "", "  ")
}

// ServeSwagger добавляет маршрут GET /swagger.json в указанный роутер
func ServeSwagger(r chi.Router, basePath string, log zerolog.Logger) error {
	spec, err := Spec(basePath)
	if err != nil {
		return err
	}

	r.Get("/swagger.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(spec)
	})

	log.Info().Msg("Swagger JSON available at /swagger.json")
	return nil
}
