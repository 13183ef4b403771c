package notes

import (
	"context"
	"errors"
	"strings"

	"notes-app/internal/model"
	"notes-app/internal/repository"
	svc "notes-app/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

var _ svc.NoteService = (*service)(nil)

// noteInput - проверяемые поля запроса на запись
type noteInput struct {
	Title   string `validate:"required_without=Content"`
	Content string
}

type service struct {
	noteRepository repository.NoteRepository
	events         *EventService
	validate       *validator.Validate
	log            zerolog.Logger
}

// NewNoteService создает новый экземпляр сервиса для работы с заметками.
// events может быть nil, тогда события не публикуются.
func NewNoteService(noteRepository repository.NoteRepository, events *EventService, log zerolog.Logger) svc.NoteService {
	return &service{
		noteRepository: noteRepository,
		events:         events,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		log:            log.With().Str("component", "note_service").Logger(),
	}
}

// Create создает новую заметку с указанными title и content
func (s *service) Create(ctx context.Context, title, content string) (model.Note, error) {
	input, err := s.validateInput(title, content)
	if err != nil {
		return model.Note{}, err
	}

	// ID и временные метки назначает репозиторий
	createdNote, err := s.noteRepository.Create(ctx, model.Note{
		Title:   input.Title,
		Content: input.Content,
	})
	if err != nil {
		return model.Note{}, err
	}

	s.log.Info().Str("note_id", createdNote.ID).Msg("note created")
	s.publish(model.EventCreated, createdNote)

	return createdNote, nil
}

// Get возвращает заметку по её ID
func (s *service) Get(ctx context.Context, id string) (model.Note, error) {
	if id == "" {
		return model.Note{}, svc.ErrInvalidID
	}

	return s.noteRepository.GetByID(ctx, id)
}

// List возвращает список всех заметок
func (s *service) List(ctx context.Context) ([]model.Note, error) {
	return s.noteRepository.List(ctx)
}

// Update обновляет заметку с указанным ID.
// Поле заменяется, только если в запросе оно не пустое после обрезки пробелов.
func (s *service) Update(ctx context.Context, id, title, content string) (model.Note, error) {
	if id == "" {
		return model.Note{}, svc.ErrInvalidID
	}

	// Сначала проверяем существование: для неизвестного ID ответ 404, а не 400
	existingNote, err := s.noteRepository.GetByID(ctx, id)
	if err != nil {
		return model.Note{}, err
	}

	input, err := s.validateInput(title, content)
	if err != nil {
		return model.Note{}, err
	}

	if input.Title != "" {
		existingNote.Title = input.Title
	}
	if input.Content != "" {
		existingNote.Content = input.Content
	}

	updatedNote, err := s.noteRepository.Update(ctx, existingNote)
	if err != nil {
		return model.Note{}, err
	}

	s.log.Info().Str("note_id", updatedNote.ID).Msg("note updated")
	s.publish(model.EventUpdated, updatedNote)

	return updatedNote, nil
}

// Delete удаляет заметку по ID
func (s *service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return svc.ErrInvalidID
	}

	if err := s.noteRepository.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info().Str("note_id", id).Msg("note deleted")
	s.publish(model.EventDeleted, model.Note{ID: id})

	return nil
}

// validateInput обрезает пробелы и проверяет, что заполнено хотя бы одно поле
func (s *service) validateInput(title, content string) (noteInput, error) {
	input := noteInput{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}

	if err := s.validate.Struct(input); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return noteInput{}, model.ErrNoteEmpty
		}
		return noteInput{}, err
	}

	return input, nil
}

func (s *service) publish(eventType model.EventType, note model.Note) {
	if s.events == nil {
		return
	}
	s.events.Publish(model.NoteEvent{Type: eventType, Note: note})
}
