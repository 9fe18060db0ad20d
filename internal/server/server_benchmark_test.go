package server

import (
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/nestjam/shortlink/internal/domain"
	"github.com/nestjam/shortlink/internal/domain/service"
	"github.com/nestjam/shortlink/internal/persistance/inmemory"
)

func BenchmarkURLShortener(b *testing.B) {
	b.Run("with in memory store", func(b *testing.B) {
		URLShortenerTest{
			CreateDependencies: func() (domain.URLStore, Cleanup) {
				return inmemory.New(), func() {
				}
			},
		}.Benchmark(b)
	})
}

func (u URLShortenerTest) Benchmark(b *testing.B) {
	b.Run("redirect to original url", func(b *testing.B) {
		urlStore, cleanup := u.CreateDependencies()
		b.Cleanup(cleanup)
		key := register(b, urlStore, testURL)
		sut := New(service.New(urlStore), WithBaseURL(baseURL))
		request := newGetRequest(key)

		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			response := httptest.NewRecorder()
			sut.ServeHTTP(response, request)
		}
	})

	b.Run("shorten url", func(b *testing.B) {
		urlStore, cleanup := u.CreateDependencies()
		b.Cleanup(cleanup)
		sut := New(service.New(urlStore), WithBaseURL(baseURL))

		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			b.StopTimer()
			request := newShortenRequest(testURL + strconv.Itoa(i))
			response := httptest.NewRecorder()
			b.StartTimer()

			sut.ServeHTTP(response, request)
		}
	})
}
