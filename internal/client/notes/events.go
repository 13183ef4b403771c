package notes

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"notes-app/internal/model"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// EventsURL строит адрес websocket потока событий из базового адреса API
func EventsURL(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported base url scheme %q", u.Scheme)
	}
	u.Path += "/notes/events"

	return u.String(), nil
}

// Watch подписывается на поток событий и вызывает fn для каждого события.
// Возвращается при отмене ctx или разрыве соединения.
func (c *Client) Watch(ctx context.Context, fn func(model.NoteEvent)) error {
	wsURL, err := EventsURL(c.http.BaseURL())
	if err != nil {
		return err
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", wsURL, err)
	}
	defer conn.Close()

	// Закрытие соединения прерывает блокирующий ReadJSON
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		var event model.NoteEvent
		if err := conn.ReadJSON(&event); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("read event: %w", err)
		}
		fn(event)
	}
}

// WatchLoop вызывает Watch повторно с паузой reconnect, пока ctx не отменен
func (c *Client) WatchLoop(ctx context.Context, reconnect time.Duration, log zerolog.Logger, fn func(model.NoteEvent)) {
	for {
		err := c.Watch(ctx, fn)
		if ctx.Err() != nil {
			return
		}
		log.Warn().Err(err).Dur("retry_in", reconnect).Msg("note events stream interrupted")

		select {
		case <-ctx.Done():
			return
		case <-time.After(reconnect):
		}
	}
}
