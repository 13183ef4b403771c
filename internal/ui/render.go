package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page - данные главной страницы
type Page struct {
	Alert         string
	ShowNewButton bool
	Form          *FormView // nil, если форма закрыта
	List          ListView
}

// ConfirmPage - данные страницы подтверждения удаления
type ConfirmPage struct {
	ID      string
	Message string
}

// Renderer отрисовывает HTML страницы из встроенных шаблонов
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer разбирает встроенные шаблоны
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Page отрисовывает главную страницу
func (r *Renderer) Page(w io.Writer, page Page) error {
	return r.tmpl.ExecuteTemplate(w, "page", page)
}

// Confirm отрисовывает страницу подтверждения удаления
func (r *Renderer) Confirm(w io.Writer, page ConfirmPage) error {
	return r.tmpl.ExecuteTemplate(w, "confirm", page)
}

// List отрисовывает только список заметок
func (r *Renderer) List(w io.Writer, list ListView) error {
	return r.tmpl.ExecuteTemplate(w, "list", list)
}

// Card отрисовывает одну карточку
func (r *Renderer) Card(w io.Writer, card CardView) error {
	return r.tmpl.ExecuteTemplate(w, "card", card)
}
