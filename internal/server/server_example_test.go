package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/nestjam/shortlink/internal/domain/service"
	"github.com/nestjam/shortlink/internal/persistance/inmemory"
)

func ExampleServer_ServeHTTP_expandURL() {
	sut := New(service.New(inmemory.New()), WithBaseURL(baseURL))

	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("https://practicum.yandex.ru/"))
	request.Header.Set(contentTypeHeader, textPlain+"; charset=utf-8")
	response := httptest.NewRecorder()

	sut.ServeHTTP(response, request)

	fmt.Println(response.Code)

	shortURL, _ := url.Parse(response.Body.String())
	request = httptest.NewRequest(http.MethodGet, shortURL.Path, nil)
	response = httptest.NewRecorder()

	sut.ServeHTTP(response, request)

	fmt.Println(response.Code)
	fmt.Println(response.Header().Get("Location"))

	// Output:
	// 201
	// 307
	// https://practicum.yandex.ru/
}
