package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"notes-app/internal/model"
	"notes-app/internal/repository"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

var _ repository.NoteRepository = (*repo)(nil)

type repo struct {
	db    *sql.DB
	now   repository.Clock
	newID repository.IDGenerator
}

// Option настраивает SQLite репозиторий
type Option func(*repo)

// WithClock подменяет источник времени (для тестов)
func WithClock(clock repository.Clock) Option {
	return func(r *repo) { r.now = clock }
}

// WithIDGenerator подменяет генератор идентификаторов
func WithIDGenerator(gen repository.IDGenerator) Option {
	return func(r *repo) { r.newID = gen }
}

// Open открывает (или создает) файл базы и применяет схему
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	// SQLite не любит параллельную запись из нескольких соединений
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db.Ping: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return db, nil
}

// NewRepository создает репозиторий заметок поверх открытой базы
func NewRepository(db *sql.DB, opts ...Option) repository.NoteRepository {
	r := &repo{
		db:    db,
		now:   time.Now,
		newID: repository.NewID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Seed добавляет заметки, только если таблица пуста (первая в списке - самая новая)
func Seed(ctx context.Context, r repository.NoteRepository, notes ...model.Note) error {
	existing, err := r.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for i := len(notes) - 1; i >= 0; i-- {
		if _, err := r.Create(ctx, notes[i]); err != nil {
			return fmt.Errorf("seed note %q: %w", notes[i].ID, err)
		}
	}
	return nil
}

// Create создает новую заметку
func (r *repo) Create(ctx context.Context, note model.Note) (model.Note, error) {
	if note.ID == "" {
		note.ID = r.newID()
	}

	now := repository.Timestamp(r.now())
	note.CreatedAt = now
	note.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		note.ID, note.Title, note.Content, now.UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		return model.Note{}, fmt.Errorf("insert note: %w", err)
	}

	return note, nil
}

// GetByID возвращает заметку по её ID
func (r *repo) GetByID(ctx context.Context, id string) (model.Note, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, content, created_at, updated_at FROM notes WHERE id = ?`, id)

	note, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Note{}, repository.ErrNoteNotFound
	}
	if err != nil {
		return model.Note{}, fmt.Errorf("select note: %w", err)
	}

	return note, nil
}

// List возвращает список всех заметок, начиная с самой новой
func (r *repo) List(ctx context.Context) ([]model.Note, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, content, created_at, updated_at FROM notes ORDER BY seq DESC`)
	if err != nil {
		return nil, fmt.Errorf("select notes: %w", err)
	}
	defer rows.Close()

	notes := make([]model.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

// Update заменяет title и content заметки и продвигает updated_at
func (r *repo) Update(ctx context.Context, note model.Note) (model.Note, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Note{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT id, title, content, created_at, updated_at FROM notes WHERE id = ?`, note.ID)
	stored, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Note{}, repository.ErrNoteNotFound
	}
	if err != nil {
		return model.Note{}, fmt.Errorf("select note: %w", err)
	}

	stored.Title = note.Title
	stored.Content = note.Content
	stored.UpdatedAt = repository.NextUpdatedAt(stored.UpdatedAt, r.now())

	_, err = tx.ExecContext(ctx,
		`UPDATE notes SET title = ?, content = ?, updated_at = ? WHERE id = ?`,
		stored.Title, stored.Content, stored.UpdatedAt.UnixMilli(), stored.ID,
	)
	if err != nil {
		return model.Note{}, fmt.Errorf("update note: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return model.Note{}, fmt.Errorf("commit: %w", err)
	}

	return stored, nil
}

// Delete удаляет заметку по ID
func (r *repo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNoteNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (model.Note, error) {
	var (
		note               model.Note
		createdAt, updated int64
	)
	if err := s.Scan(&note.ID, &note.Title, &note.Content, &createdAt, &updated); err != nil {
		return model.Note{}, err
	}
	note.CreatedAt = time.UnixMilli(createdAt).UTC()
	note.UpdatedAt = time.UnixMilli(updated).UTC()
	return note, nil
}
