package domain

import (
	"net/url"

	"github.com/nestjam/shortlink/internal/token"
)

// URLStore определяет хранилище соответствий токенов и исходных URL.
//
// Реализации не обязаны быть безопасными для конкурентного использования:
// доступ к хранилищу сериализует вызывающая сторона.
type URLStore interface {
	// Register создает новый токен и связывает его с исходным URL.
	Register(u url.URL) (token.Token, error)
	// Resolve возвращает копию исходного URL по тексту токена.
	Resolve(tokenText string) (url.URL, error)
	// Len возвращает количество сохраненных ссылок.
	Len() int
	// IsAvailable возвращает true, если хранилище доступно.
	IsAvailable() bool
}
