package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	forwardedProtoHeader = "X-Forwarded-Proto"
	forwardedHostHeader  = "X-Forwarded-Host"
	defaultScheme        = "http"
	defaultHost          = "localhost"
)

var errInvalidBaseURL = errors.New("invalid base url")

// BaseURLFromRequest определяет публичный адрес сервиса по заголовкам запроса.
// Схема берется из X-Forwarded-Proto, хост из X-Forwarded-Host или Host.
func BaseURLFromRequest(r *http.Request) (*url.URL, error) {
	scheme := firstHeaderValue(r.Header.Get(forwardedProtoHeader))
	if scheme == "" {
		scheme = defaultScheme
	}

	host := firstHeaderValue(r.Header.Get(forwardedHostHeader))
	if host == "" {
		host = r.Host
	}
	if host == "" {
		host = defaultHost
	}

	base, err := url.Parse(fmt.Sprintf("%s://%s", scheme, host))
	if err != nil {
		return nil, errors.Join(errInvalidBaseURL, err)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("%w: host is empty", errInvalidBaseURL)
	}

	return base, nil
}

// firstHeaderValue возвращает первое значение из списка, разделенного запятыми.
func firstHeaderValue(value string) string {
	first, _, _ := strings.Cut(value, ",")
	return strings.TrimSpace(first)
}

func joinPath(base *url.URL, elem string) string {
	return base.JoinPath(elem).String()
}
