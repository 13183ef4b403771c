package notes

import (
	"context"
	"net/url"

	"notes-app/internal/client/httpclient"
	"notes-app/internal/model"
)

// Client - сервис заметок поверх REST API.
// Ошибки не проглатываются и не повторяются: это задача слоя кэша.
type Client struct {
	http *httpclient.Client
}

// NewClient создает сервис заметок поверх базового HTTP клиента
func NewClient(http *httpclient.Client) *Client {
	return &Client{http: http}
}

// FetchNotes возвращает все заметки в порядке, заданном backend (новые первыми)
func (c *Client) FetchNotes(ctx context.Context) ([]model.Note, error) {
	notes, err := httpclient.Get[[]model.Note](ctx, c.http, "/notes")
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return notes, nil
}

// FetchNote возвращает одну заметку по ID
func (c *Client) FetchNote(ctx context.Context, id string) (model.Note, error) {
	return httpclient.Get[model.Note](ctx, c.http, notePath(id))
}

// CreateNote создает заметку
func (c *Client) CreateNote(ctx context.Context, req model.NoteRequest) (model.Note, error) {
	return httpclient.Post[model.Note](ctx, c.http, "/notes", req)
}

// UpdateNote обновляет заметку по ID
func (c *Client) UpdateNote(ctx context.Context, id string, req model.NoteRequest) (model.Note, error) {
	return httpclient.Put[model.Note](ctx, c.http, notePath(id), req)
}

// DeleteNote удаляет заметку по ID
func (c *Client) DeleteNote(ctx context.Context, id string) (model.DeleteResponse, error) {
	return httpclient.Delete[model.DeleteResponse](ctx, c.http, notePath(id))
}

// FormDataToRequest превращает данные формы в тело запроса (ID в тело не попадает)
func FormDataToRequest(data model.NoteFormData) model.NoteRequest {
	return model.NoteRequest{
		Title:   data.Title,
		Content: data.Content,
	}
}

func notePath(id string) string {
	return "/notes/" + url.PathEscape(id)
}
