package query

import (
	"context"
	"sync"
)

// Mutation - операция, изменяющая данные на сервере.
// onSuccess вызывается только после успешного ответа и до того, как
// Mutate вернет управление.
type Mutation[In, Out any] struct {
	fn        func(context.Context, In) (Out, error)
	onSuccess func(Out, In)

	mu      sync.Mutex
	pending int
	status  Status
	data    Out
	err     error
}

// NewMutation создает мутацию; onSuccess может быть nil
func NewMutation[In, Out any](fn func(context.Context, In) (Out, error), onSuccess func(Out, In)) *Mutation[In, Out] {
	return &Mutation[In, Out]{fn: fn, onSuccess: onSuccess}
}

// Mutate выполняет мутацию
func (m *Mutation[In, Out]) Mutate(ctx context.Context, in In) (Out, error) {
	m.mu.Lock()
	m.pending++
	m.mu.Unlock()

	out, err := m.fn(ctx, in)
	if err == nil && m.onSuccess != nil {
		m.onSuccess(out, in)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending--
	if err != nil {
		m.status = StatusError
		m.err = err
		return out, err
	}
	m.status = StatusSuccess
	m.data = out
	m.err = nil
	return out, nil
}

// Status возвращает StatusLoading, пока хотя бы один вызов не завершен,
// иначе результат последнего вызова
func (m *Mutation[In, Out]) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pending > 0 {
		return StatusLoading
	}
	return m.status
}

func (m *Mutation[In, Out]) IsPending() bool { return m.Status() == StatusLoading }
func (m *Mutation[In, Out]) IsError() bool   { return m.Status() == StatusError }
func (m *Mutation[In, Out]) IsSuccess() bool { return m.Status() == StatusSuccess }

// Err возвращает ошибку последнего вызова
func (m *Mutation[In, Out]) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

// Data возвращает результат последнего успешного вызова
func (m *Mutation[In, Out]) Data() Out {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data
}

// Reset возвращает мутацию в исходное состояние
func (m *Mutation[In, Out]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	var zero Out
	m.status = StatusIdle
	m.data = zero
	m.err = nil
}
