package queries

import "notes-app/internal/query"

// Ключи запросов заметок
var (
	keyAll     = query.Key{"notes"}
	keyLists   = query.Key{"notes", "list"}
	keyDetails = query.Key{"notes", "detail"}
)

// All - префикс всех запросов заметок
func All() query.Key { return clone(keyAll) }

// Lists - ключ списка заметок
func Lists() query.Key { return clone(keyLists) }

// Details - префикс запросов отдельных заметок
func Details() query.Key { return clone(keyDetails) }

// Detail - ключ заметки с указанным ID
func Detail(id string) query.Key { return append(Details(), id) }

func clone(k query.Key) query.Key {
	return append(query.Key(nil), k...)
}
