package query

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultRetry - число повторов неудачного запроса по умолчанию
	DefaultRetry = 1
	// DefaultRetryDelay - пауза перед повтором по умолчанию
	DefaultRetryDelay = time.Second
)

// entry - запись кэша
type entry struct {
	key       Key
	value     any
	hasValue  bool
	err       error
	status    Status
	fetchedAt time.Time
	stale     bool
	gen       uint64 // поколение ключа, при котором загружено value
}

// Cache - клиентский кэш запросов.
// Свежие данные отдаются без обращения к сети, параллельные загрузки
// одного ключа объединяются в одну.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	// gens увеличивается при каждой инвалидации, удалении или записи ключа.
	// Загрузка, начатая до такого изменения, сохраняется помеченной как устаревшая.
	gens  map[string]uint64
	group singleflight.Group

	retry      int
	retryDelay time.Duration
	retryable  func(error) bool
	now        func() time.Time
	log        zerolog.Logger
}

// Option настраивает Cache
type Option func(*Cache)

// WithRetry задает число повторов и паузу между ними
func WithRetry(n int, delay time.Duration) Option {
	return func(c *Cache) {
		if n < 0 {
			n = 0
		}
		c.retry = n
		c.retryDelay = delay
	}
}

// WithRetryPolicy задает, какие ошибки стоит повторять
func WithRetryPolicy(retryable func(error) bool) Option {
	return func(c *Cache) { c.retryable = retryable }
}

// WithClock подменяет источник времени
func WithClock(now func() time.Time) Option {
	return func(c *Cache) { c.now = now }
}

// WithLogger задает логгер
func WithLogger(log zerolog.Logger) Option {
	return func(c *Cache) { c.log = log }
}

// NewCache создает пустой кэш
func NewCache(opts ...Option) *Cache {
	c := &Cache{
		entries:    make(map[string]*entry),
		gens:       make(map[string]uint64),
		retry:      DefaultRetry,
		retryDelay: DefaultRetryDelay,
		retryable:  func(error) bool { return true },
		now:        time.Now,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch возвращает данные по ключу. Если запись свежее staleTime и не
// инвалидирована, fn не вызывается. Иначе данные загружаются через fn;
// одновременные вызовы с тем же ключом разделяют одну загрузку.
// При ошибке в Data остаются последние успешно загруженные данные.
func Fetch[T any](ctx context.Context, c *Cache, key Key, staleTime time.Duration, fn func(context.Context) (T, error)) Result[T] {
	h := key.hash()

	c.mu.Lock()
	if e, ok := c.entries[h]; ok && c.fresh(e, staleTime) {
		data, _ := e.value.(T)
		c.mu.Unlock()
		return Result[T]{Data: data, Status: StatusSuccess}
	}
	// Загрузка, начатая до инвалидации, не разделяется с новыми вызовами
	flight := h + "#" + strconv.FormatUint(c.gens[h], 10)
	c.mu.Unlock()

	v, err, _ := c.group.Do(flight, func() (any, error) {
		gen := c.begin(key)
		v, err := c.run(ctx, key, func(ctx context.Context) (any, error) {
			return fn(ctx)
		})
		c.finish(key, gen, v, err)
		return v, err
	})

	if err != nil {
		prev, _ := Peek[T](c, key)
		return Result[T]{Data: prev, Status: StatusError, Err: err}
	}
	data, _ := v.(T)
	return Result[T]{Data: data, Status: StatusSuccess}
}

// Peek возвращает закэшированное значение без загрузки
func Peek[T any](c *Cache, key Key) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	e, ok := c.entries[key.hash()]
	if !ok || !e.hasValue {
		return zero, false
	}
	v, ok := e.value.(T)
	return v, ok
}

// SetData записывает значение по ключу как свежезагруженное
func (c *Cache) SetData(key Key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := key.hash()
	c.gens[h]++
	c.entries[h] = &entry{
		key:       key,
		value:     value,
		hasValue:  true,
		status:    StatusSuccess,
		fetchedAt: c.now(),
		gen:       c.gens[h],
	}
}

// Invalidate помечает устаревшими все записи, ключ которых начинается с prefix.
// Следующий Fetch по такому ключу обратится к сети.
func (c *Cache) Invalidate(prefix Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for h, e := range c.entries {
		if e.key.HasPrefix(prefix) {
			e.stale = true
			c.gens[h]++
			n++
		}
	}
	c.log.Debug().Stringer("prefix", prefix).Int("entries", n).Msg("queries invalidated")
}

// Remove удаляет запись по ключу
func (c *Cache) Remove(key Key) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := key.hash()
	delete(c.entries, h)
	c.gens[h]++
}

// Status возвращает состояние записи; StatusIdle, если записи нет
func (c *Cache) Status(key Key) Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key.hash()]; ok {
		return e.status
	}
	return StatusIdle
}

// Invalidated сообщает, помечена ли запись устаревшей (отсутствующая запись считается устаревшей)
func (c *Cache) Invalidated(key Key) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key.hash()]
	return !ok || e.stale
}

func (c *Cache) fresh(e *entry, staleTime time.Duration) bool {
	return e.status == StatusSuccess && !e.stale && c.now().Sub(e.fetchedAt) < staleTime
}

// begin переводит запись в состояние загрузки и возвращает поколение ключа
func (c *Cache) begin(key Key) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := key.hash()
	e, ok := c.entries[h]
	if !ok {
		e = &entry{key: key}
		c.entries[h] = e
	}
	e.status = StatusLoading
	return c.gens[h]
}

// finish сохраняет результат загрузки. Результат, который старше уже
// сохраненного значения, отбрасывается.
func (c *Cache) finish(key Key, gen uint64, v any, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := key.hash()
	e, ok := c.entries[h]
	if !ok {
		e = &entry{key: key}
		c.entries[h] = e
	}
	if e.hasValue && e.gen > gen {
		return
	}
	if err != nil {
		e.err = err
		e.status = StatusError
		return
	}
	e.value = v
	e.hasValue = true
	e.err = nil
	e.status = StatusSuccess
	e.fetchedAt = c.now()
	e.stale = c.gens[h] != gen
	e.gen = gen
}

// run вызывает fn, повторяя неудачный вызов не более c.retry раз
func (c *Cache) run(ctx context.Context, key Key, fn func(context.Context) (any, error)) (any, error) {
	for attempt := 0; ; attempt++ {
		v, err := fn(ctx)
		if err == nil || attempt >= c.retry || !c.retryable(err) {
			return v, err
		}

		c.log.Debug().
			Err(err).
			Stringer("key", key).
			Int("attempt", attempt+1).
			Dur("retry_in", c.retryDelay).
			Msg("query failed, retrying")

		select {
		case <-ctx.Done():
			return v, err
		case <-time.After(c.retryDelay):
		}
	}
}
