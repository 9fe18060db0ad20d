package client

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

const (
	locationHeader  = "Location"
	apiShortenPath  = "api/shorten"
	pingPath        = "ping"
	applicationJSON = "application/json"
)

// Ошибки, возвращаемые сервером сокращения ссылок.
var (
	ErrNotFound     = errors.New("not found")        // сокращенный URL не найден
	ErrStoreLocked  = errors.New("store is locked")  // хранилище сервера недоступно
	ErrUnexpected   = errors.New("unexpected reply") // сервер вернул неожиданный статус
	ErrNotAvailable = errors.New("not available")    // сервер не прошел проверку доступности
)

// Client представляет клиент сервиса сокращения ссылок.
type Client struct {
	inner         *resty.Client
	serverAddress string
}

// Option определяет опцию настройки клиента.
type Option func(*Client)

type shortenRequest struct {
	URL string `json:"url"`
}

type shortenResponse struct {
	Result string `json:"result"`
}

// New создает экземпляр клиента с переданными опциями.
func New(options ...Option) *Client {
	client := &Client{
		inner: resty.New(),
	}

	client.inner.SetRedirectPolicy(
		resty.RedirectPolicyFunc(func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}),
	)

	for _, opt := range options {
		opt(client)
	}

	return client
}

// WithServerAddress возвращает опцию клиента с указанным адресом сервера.
func WithServerAddress(addr string) Option {
	return func(client *Client) {
		client.serverAddress = addr
	}
}

// Expand возвращает исходный URL по сокращенному, иначе - ошибку.
func (c *Client) Expand(shortURL string) (string, error) {
	const op = "expand URL"
	response, err := c.inner.R().Get(shortURL)

	if err != nil {
		return "", errors.Wrap(err, op)
	}

	if err := checkStatus(response, http.StatusTemporaryRedirect); err != nil {
		return "", errors.Wrap(err, op)
	}

	return response.Header().Get(locationHeader), nil
}

// Shorten выполняет сокращение URL.
// Возвращает сокращенный URL в случае успеха, иначе - ошибку.
func (c *Client) Shorten(url string) (string, error) {
	const op = "shorten URL"
	response, err := c.inner.R().
		SetBody(url).
		Post(c.serverAddress)

	if err != nil {
		return "", errors.Wrap(err, op)
	}

	if err := checkStatus(response, http.StatusCreated); err != nil {
		return "", errors.Wrap(err, op)
	}

	return string(response.Body()), nil
}

// ShortenJSON выполняет сокращение URL через JSON API сервера.
func (c *Client) ShortenJSON(url string) (string, error) {
	const op = "shorten URL (api)"
	var result shortenResponse
	response, err := c.inner.R().
		SetHeader("Content-Type", applicationJSON).
		SetBody(shortenRequest{URL: url}).
		SetResult(&result).
		Post(c.endpoint(apiShortenPath))

	if err != nil {
		return "", errors.Wrap(err, op)
	}

	if err := checkStatus(response, http.StatusCreated); err != nil {
		return "", errors.Wrap(err, op)
	}

	return result.Result, nil
}

// Ping проверяет доступность сервера.
func (c *Client) Ping() error {
	const op = "ping"
	response, err := c.inner.R().Get(c.endpoint(pingPath))

	if err != nil {
		return errors.Wrap(err, op)
	}

	if response.StatusCode() != http.StatusOK {
		return errors.Wrap(ErrNotAvailable, op)
	}

	return nil
}

func (c *Client) endpoint(path string) string {
	return strings.TrimSuffix(c.serverAddress, "/") + "/" + path
}

func checkStatus(response *resty.Response, want int) error {
	switch response.StatusCode() {
	case want:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusLocked:
		return ErrStoreLocked
	default:
		return fmt.Errorf("%w: %s: %s", ErrUnexpected, response.Status(),
			strings.TrimSpace(string(response.Body())))
	}
}
