package service

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nestjam/shortlink/internal/domain"
	"github.com/nestjam/shortlink/internal/token"
)

// Ошибки, связанные с сокращением ссылки.
var (
	ErrURLIsEmpty = errors.New("url is empty") // исходный URL пустой
	ErrInvalidURL = errors.New("invalid url")  // исходный URL не является абсолютным
)

// ShortenerService выполняет сокращение и получение исходной ссылки.
// Все обращения к хранилищу выполняются под одной общей блокировкой.
type ShortenerService struct {
	store    domain.URLStore
	logger   *zap.Logger
	mu       sync.Mutex
	poisoned bool
}

// Option определяет опцию настройки сервиса.
type Option func(*ShortenerService)

// WithLogger задает логер сервиса.
func WithLogger(logger *zap.Logger) Option {
	return func(s *ShortenerService) {
		s.logger = logger
	}
}

// New создает сервис сокращения ссылок.
func New(store domain.URLStore, options ...Option) *ShortenerService {
	s := &ShortenerService{
		store:  store,
		logger: zap.NewNop(),
	}

	for _, opt := range options {
		opt(s)
	}

	return s
}

// ParseOriginalURL разбирает исходную ссылку из текста запроса.
func ParseOriginalURL(rawURL string) (*url.URL, error) {
	const op = "parse original url"

	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, ErrURLIsEmpty
	}

	originalURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidURL, "%s: %v", op, err)
	}
	if !originalURL.IsAbs() {
		return nil, errors.Wrap(ErrInvalidURL, op)
	}

	return originalURL, nil
}

// ShortenURL сокращает исходную ссылку и возвращает токен.
func (s *ShortenerService) ShortenURL(originalURL *url.URL) (token.Token, error) {
	const op = "shorten url"

	if originalURL == nil || originalURL.String() == "" {
		return token.Token{}, ErrURLIsEmpty
	}
	if !originalURL.IsAbs() {
		return token.Token{}, errors.Wrap(ErrInvalidURL, op)
	}

	var key token.Token
	err := s.withLock(op, func() error {
		var err error
		key, err = s.store.Register(*originalURL)
		return err
	})
	if err != nil {
		return token.Token{}, errors.Wrap(err, op)
	}

	return key, nil
}

// GetOriginalURL возвращает исходную ссылку по тексту токена.
func (s *ShortenerService) GetOriginalURL(key string) (*url.URL, error) {
	const op = "get original url"

	var originalURL url.URL
	err := s.withLock(op, func() error {
		var err error
		originalURL, err = s.store.Resolve(key)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(err, op)
	}

	return &originalURL, nil
}

// IsAvailable возвращает true, если сервис доступен.
func (s *ShortenerService) IsAvailable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return !s.poisoned && s.store.IsAvailable()
}

// withLock выполняет f под блокировкой. Паника внутри f переводит сервис
// в состояние, в котором все последующие вызовы возвращают ErrStoreLocked.
func (s *ShortenerService) withLock(op string, f func() error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.poisoned {
		return domain.ErrStoreLocked
	}

	defer func() {
		if r := recover(); r != nil {
			s.poisoned = true
			s.logger.Error("store panicked, further access is locked",
				zap.String("op", op),
				zap.String("panic", fmt.Sprint(r)))
			err = domain.ErrStoreLocked
		}
	}()

	return f()
}
