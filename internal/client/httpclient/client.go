package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// Client - базовый клиент REST API: общий адрес, транспорт и логирование
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
}

// Option настраивает Client
type Option func(*Client)

// WithHTTPClient задает транспорт (по умолчанию http.Client без таймаута)
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger задает логгер
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) { c.log = log }
}

// New создает клиента для API с базовым адресом baseURL (например, http://localhost:8080/api)
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL возвращает базовый адрес API
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get выполняет GET запрос
func Get[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	return do[T](ctx, c, http.MethodGet, endpoint, nil)
}

// Post выполняет POST запрос с JSON телом
func Post[T any](ctx context.Context, c *Client, endpoint string, data any) (T, error) {
	return do[T](ctx, c, http.MethodPost, endpoint, data)
}

// Put выполняет PUT запрос с JSON телом
func Put[T any](ctx context.Context, c *Client, endpoint string, data any) (T, error) {
	return do[T](ctx, c, http.MethodPut, endpoint, data)
}

// Delete выполняет DELETE запрос
func Delete[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	return do[T](ctx, c, http.MethodDelete, endpoint, nil)
}

// do отправляет запрос и нормализует любые ошибки в *Error
func do[T any](ctx context.Context, c *Client, method, endpoint string, data any) (T, error) {
	var zero T
	url := c.baseURL + endpoint

	var body io.Reader
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return zero, &Error{Kind: KindUnexpected, Message: "An unexpected error occurred", Err: err}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return zero, &Error{Kind: KindUnexpected, Message: "An unexpected error occurred", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("url", url).Msg("request failed")
		return zero, &Error{Kind: KindNetwork, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, &Error{Kind: KindNetwork, StatusCode: resp.StatusCode, Message: err.Error(), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newStatusError(resp.StatusCode, raw)
		c.log.Debug().
			Str("method", method).
			Str("url", url).
			Int("status", resp.StatusCode).
			Str("kind", apiErr.Kind.String()).
			Msg(apiErr.Message)
		return zero, apiErr
	}

	// Пустой ответ (например, 204 No Content) считается успешным без тела
	if resp.StatusCode == http.StatusNoContent || len(raw) == 0 {
		return zero, nil
	}

	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return zero, &Error{
			Kind:       KindUnexpected,
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("invalid response body: %v", err),
			Err:        err,
		}
	}

	return out, nil
}
