package query

import "strings"

// Key - иерархический ключ запроса, например {"notes", "detail", "1"}
type Key []string

// hash возвращает строковое представление ключа для карты кэша
func (k Key) hash() string {
	return strings.Join(k, "\x00")
}

// HasPrefix сообщает, начинается ли ключ с prefix
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) > len(k) {
		return false
	}
	for i := range prefix {
		if k[i] != prefix[i] {
			return false
		}
	}
	return true
}

func (k Key) String() string {
	return "[" + strings.Join(k, " ") + "]"
}
