package ui

import (
	"time"

	"notes-app/internal/model"
	"notes-app/internal/query"
)

// ListState - что показывает список заметок
type ListState int

const (
	ListLoading ListState = iota
	ListError
	ListEmpty
	ListGrid
)

// ListView - данные для шаблона списка заметок
type ListView struct {
	State ListState
	Error string
	Cards []CardView
}

// NewListView строит список по результату запроса.
// Приоритет: загрузка, затем ошибка, затем пустой список.
func NewListView(res query.Result[[]model.Note], loc *time.Location, actions Actions) ListView {
	switch {
	case res.IsLoading():
		return ListView{State: ListLoading}
	case res.IsError():
		msg := ""
		if res.Err != nil {
			msg = res.Err.Error()
		}
		return ListView{State: ListError, Error: msg}
	case len(res.Data) == 0:
		return ListView{State: ListEmpty}
	}

	cards := make([]CardView, 0, len(res.Data))
	for _, n := range res.Data {
		cards = append(cards, NewCardView(n, loc, actions))
	}
	return ListView{State: ListGrid, Cards: cards}
}

func (l ListView) IsLoading() bool { return l.State == ListLoading }
func (l ListView) IsError() bool   { return l.State == ListError }
func (l ListView) IsEmpty() bool   { return l.State == ListEmpty }
