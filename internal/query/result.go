package query

// Status - состояние запроса или мутации
type Status int

const (
	// StatusIdle - запрос не выполнялся
	StatusIdle Status = iota
	// StatusLoading - запрос выполняется
	StatusLoading
	// StatusError - последний запрос завершился ошибкой
	StatusError
	// StatusSuccess - данные получены
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	default:
		return "idle"
	}
}

// Result - результат чтения из кэша
type Result[T any] struct {
	Data   T
	Status Status
	Err    error
}

func (r Result[T]) IsLoading() bool { return r.Status == StatusLoading }
func (r Result[T]) IsError() bool   { return r.Status == StatusError }
func (r Result[T]) IsSuccess() bool { return r.Status == StatusSuccess }
