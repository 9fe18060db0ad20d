package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	t.Run("new request id is generated", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		response := httptest.NewRecorder()
		var got string
		spyHandlerFunc := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = GetRequestID(r.Context())
		})

		RequestID(spyHandlerFunc).ServeHTTP(response, request)

		assert.NotEmpty(t, got)
		assert.Equal(t, got, response.Header().Get(RequestIDHeader))
	})

	t.Run("request id from header is kept", func(t *testing.T) {
		const want = "abc-123"
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		request.Header.Set(RequestIDHeader, want)
		response := httptest.NewRecorder()
		var got string
		spyHandlerFunc := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = GetRequestID(r.Context())
		})

		RequestID(spyHandlerFunc).ServeHTTP(response, request)

		assert.Equal(t, want, got)
		assert.Equal(t, want, response.Header().Get(RequestIDHeader))
	})
}

func TestResponseLogger(t *testing.T) {
	t.Run("log response status and size", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		logger := zap.New(core)
		handlerFunc := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte("hello"))
		})
		request := httptest.NewRequest(http.MethodPost, "/abc", nil)
		response := httptest.NewRecorder()

		RequestID(ResponseLogger(logger)(handlerFunc)).ServeHTTP(response, request)

		require.Equal(t, 1, logs.Len())
		fields := logs.All()[0].ContextMap()
		assert.Equal(t, "/abc", fields["uri"])
		assert.Equal(t, http.MethodPost, fields["method"])
		assert.EqualValues(t, http.StatusCreated, fields["status"])
		assert.EqualValues(t, len("hello"), fields["size"])
		assert.Equal(t, response.Header().Get(RequestIDHeader), fields["request_id"])
	})

	t.Run("status defaults to ok", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		logger := zap.New(core)
		handlerFunc := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})
		request := httptest.NewRequest(http.MethodGet, "/", nil)
		response := httptest.NewRecorder()

		ResponseLogger(logger)(handlerFunc).ServeHTTP(response, request)

		require.Equal(t, 1, logs.Len())
		assert.EqualValues(t, http.StatusOK, logs.All()[0].ContextMap()["status"])
	})
}

func TestResponseEncoder(t *testing.T) {
	const body = "http://localhost:8080/abcdef"
	handlerFunc := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(body))
	})

	t.Run("client accepts gzip", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", nil)
		request.Header.Set(acceptEncodingHeader, "br, "+gzipEncoding)
		response := httptest.NewRecorder()

		ResponseEncoder(handlerFunc).ServeHTTP(response, request)

		assert.Equal(t, http.StatusCreated, response.Code)
		assert.Equal(t, gzipEncoding, response.Header().Get(contentEncodingHeader))
		assert.Equal(t, body, decode(t, response.Body))
	})

	t.Run("client does not accept encoding", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", nil)
		response := httptest.NewRecorder()

		ResponseEncoder(handlerFunc).ServeHTTP(response, request)

		assert.Equal(t, "", response.Header().Get(contentEncodingHeader))
		assert.Equal(t, body, response.Body.String())
	})
}

func TestRequestDecoder(t *testing.T) {
	const body = "https://practicum.yandex.ru/"
	var got string
	spyHandlerFunc := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		got = string(data)
	})

	t.Run("decode gzip body", func(t *testing.T) {
		got = ""
		request := httptest.NewRequest(http.MethodPost, "/", encode(t, body))
		request.Header.Set(contentEncodingHeader, gzipEncoding)
		response := httptest.NewRecorder()

		RequestDecoder(spyHandlerFunc).ServeHTTP(response, request)

		assert.Equal(t, body, got)
	})

	t.Run("plain body", func(t *testing.T) {
		got = ""
		request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		response := httptest.NewRecorder()

		RequestDecoder(spyHandlerFunc).ServeHTTP(response, request)

		assert.Equal(t, body, got)
	})

	t.Run("body is not gzip", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		request.Header.Set(contentEncodingHeader, gzipEncoding)
		response := httptest.NewRecorder()

		RequestDecoder(spyHandlerFunc).ServeHTTP(response, request)

		assert.Equal(t, http.StatusBadRequest, response.Code)
		assert.Equal(t, failedToDecodeRequestMessage, strings.TrimSpace(response.Body.String()))
	})
}

func encode(t *testing.T, s string) io.Reader {
	t.Helper()

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	return &buf
}

func decode(t *testing.T, r io.Reader) string {
	t.Helper()

	gz, err := gzip.NewReader(r)
	require.NoError(t, err, "failed to decode: %v", err)

	defer func() {
		_ = gz.Close()
	}()

	data, err := io.ReadAll(gz)
	require.NoError(t, err)

	return string(data)
}
