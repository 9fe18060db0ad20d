package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/nestjam/shortlink/internal/domain"
	"github.com/nestjam/shortlink/internal/domain/service"
	"github.com/nestjam/shortlink/internal/middleware"
)

const (
	locationHeader                 = "Location"
	contentTypeHeader              = "Content-Type"
	contentLengthHeader            = "Content-Length"
	textPlain                      = "text/plain"
	applicationJSON                = "application/json"
	failedToWriteResponseMessage   = "failed to write response"
	failedToStoreURLMessage        = "failed to store url"
	failedToParseRequestMessage    = "failed to parse request"
	failedToPrepareResponseMessage = "failed to prepare response"
	failedToBuildShortURLMessage   = "failed to build short url"
	failedToGetURLMessage          = "failed to get url"
	originalURLNotFoundMessage     = "not found"
	storeIsLockedMessage           = "store is locked"
	urlIsEmptyMessage              = "url is empty"
	invalidURLMessage              = "invalid url"
)

// Server предоставляет возможность сокращать URL и переходить по сокращенным URL.
type Server struct {
	service *service.ShortenerService
	router  chi.Router
	logger  *zap.Logger
	baseURL string
}

// ShortenRequest представляет тело запроса и содержит исходный URL.
type ShortenRequest struct {
	URL string `json:"url"` // исходный URL
}

// ShortenResponse содержит сокращенный URL.
type ShortenResponse struct {
	Result string `json:"result"` // сокращенный URL
}

// Option определяет опцию настройки сервера.
type Option func(*Server)

// New создает сервер. Конструктор принимает на вход сервис сокращения ссылок, общий для всех
// обработчиков, и набор опций.
func New(svc *service.ShortenerService, options ...Option) *Server {
	r := chi.NewRouter()
	s := &Server{
		service: svc,
		router:  r,
		logger:  zap.NewNop(),
	}

	for _, opt := range options {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.ResponseLogger(s.logger))

	r.Group(func(r chi.Router) {
		r.Get("/ping", s.ping)
	})

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.AllowContentType(applicationJSON))
		r.Use(middleware.RequestDecoder, middleware.ResponseEncoder)

		r.Post("/api/shorten", s.shortenAPI)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequestDecoder, middleware.ResponseEncoder)

		r.Get("/{key}", s.redirect)
		r.Post("/", s.shorten)
	})

	return s
}

// ServeHTTP обрабатывает запрос.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	originalURL, err := s.service.GetOriginalURL(key)

	switch {
	case errors.Is(err, domain.ErrStoreLocked):
		locked(w)
		return
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrOriginalURLNotFound):
		notFound(w, originalURLNotFoundMessage)
		return
	case err != nil:
		s.logger.Error("failed to get original url", zap.Error(err))
		internalError(w, failedToGetURLMessage)
		return
	}

	http.Redirect(w, r, originalURL.String(), http.StatusTemporaryRedirect)
}

func (s *Server) shorten(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	shortURL, ok := s.shortenURL(w, r, string(body))
	if !ok {
		return
	}

	w.Header().Set(contentTypeHeader, textPlain)
	w.WriteHeader(http.StatusCreated)
	_, err = w.Write([]byte(shortURL))
	if err != nil {
		s.logger.Error(failedToWriteResponseMessage, zap.Error(err))
	}
}

func (s *Server) shortenAPI(w http.ResponseWriter, r *http.Request) {
	var req ShortenRequest
	decoder := json.NewDecoder(r.Body)
	err := decoder.Decode(&req)
	if err != nil {
		badRequest(w, failedToParseRequestMessage)
		return
	}

	shortURL, ok := s.shortenURL(w, r, req.URL)
	if !ok {
		return
	}

	resp := ShortenResponse{Result: shortURL}
	content, err := json.Marshal(resp)
	if err != nil {
		internalError(w, failedToPrepareResponseMessage)
		return
	}

	w.Header().Set(contentTypeHeader, applicationJSON)
	w.Header().Set(contentLengthHeader, strconv.Itoa(len(content)))
	w.WriteHeader(http.StatusCreated)
	_, err = w.Write(content)
	if err != nil {
		s.logger.Error(failedToWriteResponseMessage, zap.Error(err))
	}
}

// shortenURL регистрирует исходный URL и возвращает сокращенный URL.
// При ошибке ответ уже записан и возвращается false.
func (s *Server) shortenURL(w http.ResponseWriter, r *http.Request, rawURL string) (string, bool) {
	originalURL, err := service.ParseOriginalURL(rawURL)
	if errors.Is(err, service.ErrURLIsEmpty) {
		badRequest(w, urlIsEmptyMessage)
		return "", false
	}
	if err != nil {
		badRequest(w, invalidURLMessage)
		return "", false
	}

	base, err := s.shortURLBase(r)
	if err != nil {
		s.logger.Error(failedToBuildShortURLMessage, zap.Error(err))
		internalError(w, failedToBuildShortURLMessage)
		return "", false
	}

	key, err := s.service.ShortenURL(originalURL)
	if errors.Is(err, domain.ErrStoreLocked) {
		locked(w)
		return "", false
	}
	if err != nil {
		s.logger.Error(failedToStoreURLMessage, zap.Error(err))
		internalError(w, failedToStoreURLMessage)
		return "", false
	}

	return joinPath(base, key.String()), true
}

func (s *Server) shortURLBase(r *http.Request) (*url.URL, error) {
	if s.baseURL != "" {
		base, err := url.Parse(s.baseURL)
		if err != nil {
			return nil, errors.Join(errInvalidBaseURL, err)
		}
		return base, nil
	}

	return BaseURLFromRequest(r)
}

func (s *Server) ping(w http.ResponseWriter, r *http.Request) {
	status := http.StatusInternalServerError
	if s.service.IsAvailable() {
		status = http.StatusOK
	}
	w.WriteHeader(status)
}

func badRequest(w http.ResponseWriter, err string) {
	http.Error(w, err, http.StatusBadRequest)
}

func notFound(w http.ResponseWriter, err string) {
	http.Error(w, err, http.StatusNotFound)
}

func locked(w http.ResponseWriter) {
	http.Error(w, storeIsLockedMessage, http.StatusLocked)
}

func internalError(w http.ResponseWriter, err string) {
	http.Error(w, err, http.StatusInternalServerError)
}

// WithLogger задает логер для сервера.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithBaseURL задает базовый адрес сокращенных URL. Если адрес не задан, он определяется
// по заголовкам каждого запроса.
func WithBaseURL(baseURL string) Option {
	return func(s *Server) {
		s.baseURL = baseURL
	}
}
