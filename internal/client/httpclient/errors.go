package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"notes-app/internal/model"
)

// Kind - категория ошибки запроса к API
type Kind int

const (
	// KindUnexpected - любая другая ошибка
	KindUnexpected Kind = iota
	// KindNotFound - операция над неизвестным ID
	KindNotFound
	// KindValidation - сервер отклонил данные (оба поля пустые)
	KindValidation
	// KindNetwork - сбой транспорта или неразборчивое тело ошибки
	KindNetwork
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindNetwork:
		return "network"
	default:
		return "unexpected"
	}
}

// Сентинелы для errors.Is по категории ошибки
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrNetwork    = errors.New("network error")
	ErrUnexpected = errors.New("unexpected error")
)

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	case KindNetwork:
		return ErrNetwork
	default:
		return ErrUnexpected
	}
}

// Error - нормализованная ошибка HTTP запроса.
// Message всегда содержит сообщение, пригодное для показа пользователю.
type Error struct {
	Kind       Kind
	StatusCode int // 0, если ответ не был получен
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is позволяет проверять категорию через errors.Is(err, httpclient.ErrNotFound)
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// KindOf возвращает категорию ошибки; ошибки не из этого пакета - KindUnexpected
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// Retryable сообщает, имеет ли смысл повторить запрос автоматически
func Retryable(err error) bool {
	switch KindOf(err) {
	case KindNetwork, KindUnexpected:
		return true
	default:
		return false
	}
}

// statusMessage - сообщение по умолчанию для неуспешного ответа
func statusMessage(code int) string {
	return fmt.Sprintf("HTTP %d: %s", code, http.StatusText(code))
}

// newStatusError разбирает тело ответа формата {"error": "..."}.
// Если разобрать не удалось, используется "HTTP <status>: <statusText>".
func newStatusError(code int, body []byte) *Error {
	var payload model.ErrorResponse
	parsed := json.Unmarshal(body, &payload) == nil

	message := statusMessage(code)
	if parsed && payload.Error != "" {
		message = payload.Error
	}

	kind := KindUnexpected
	switch {
	case code == http.StatusNotFound:
		kind = KindNotFound
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		kind = KindValidation
	case !parsed:
		kind = KindNetwork
	}

	return &Error{Kind: kind, StatusCode: code, Message: message}
}
