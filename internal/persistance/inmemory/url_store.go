package inmemory

import (
	"fmt"
	"net/url"

	"github.com/pkg/errors"

	"github.com/nestjam/shortlink/internal/domain"
	"github.com/nestjam/shortlink/internal/token"
)

// DefaultMaxAttempts определяет количество попыток подобрать свободный токен по умолчанию.
const DefaultMaxAttempts = 10

// InmemoryURLStore хранит соответствия токенов и исходных URL в памяти процесса.
// Не является безопасным для конкурентного использования.
type InmemoryURLStore struct {
	m           map[token.Token]url.URL
	rnd         token.Rand
	maxAttempts int
}

// Option определяет опцию настройки хранилища.
type Option func(*InmemoryURLStore)

// WithRand задает источник случайных чисел для генерации токенов.
func WithRand(rnd token.Rand) Option {
	return func(u *InmemoryURLStore) {
		u.rnd = rnd
	}
}

// WithMaxAttempts задает количество попыток подобрать свободный токен.
func WithMaxAttempts(n int) Option {
	return func(u *InmemoryURLStore) {
		if n > 0 {
			u.maxAttempts = n
		}
	}
}

// New создает пустое хранилище.
func New(options ...Option) *InmemoryURLStore {
	u := &InmemoryURLStore{
		m:           make(map[token.Token]url.URL),
		rnd:         token.DefaultRand(),
		maxAttempts: DefaultMaxAttempts,
	}

	for _, opt := range options {
		opt(u)
	}

	return u
}

// Register создает свободный токен и связывает его с исходным URL.
// Если за maxAttempts попыток свободный токен не найден, возвращается ErrTokenSpaceExhausted.
func (u *InmemoryURLStore) Register(originalURL url.URL) (token.Token, error) {
	const op = "register url"

	for i := 0; i < u.maxAttempts; i++ {
		key := token.Generate(u.rnd)

		if _, ok := u.m[key]; ok {
			continue
		}

		u.m[key] = originalURL
		return key, nil
	}

	return token.Token{}, errors.Wrapf(domain.ErrTokenSpaceExhausted, "%s: %d attempts", op, u.maxAttempts)
}

// Resolve возвращает копию исходного URL по тексту токена.
func (u *InmemoryURLStore) Resolve(tokenText string) (url.URL, error) {
	key, err := token.Parse(tokenText)
	if err != nil {
		return url.URL{}, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}

	originalURL, ok := u.m[key]
	if !ok {
		return url.URL{}, domain.ErrOriginalURLNotFound
	}

	return originalURL, nil
}

// Len возвращает количество сохраненных ссылок.
func (u *InmemoryURLStore) Len() int {
	return len(u.m)
}

// IsAvailable возвращает true, хранилище в памяти доступно всегда.
func (u *InmemoryURLStore) IsAvailable() bool {
	return true
}
