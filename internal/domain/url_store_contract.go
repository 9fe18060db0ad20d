package domain

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestjam/shortlink/internal/token"
)

// URLStoreContract описывает поведение, общее для всех реализаций URLStore.
type URLStoreContract struct {
	NewURLStore func() (URLStore, func())
}

// Test проверяет реализацию URLStore.
func (c URLStoreContract) Test(t *testing.T) {
	t.Run("register and resolve url", func(t *testing.T) {
		sut, tearDown := c.NewURLStore()
		t.Cleanup(tearDown)
		originalURL := mustParseURL(t, "https://example.com/path?q=1")

		key, err := sut.Register(originalURL)
		require.NoError(t, err)

		got, err := sut.Resolve(key.String())

		require.NoError(t, err)
		assert.Equal(t, originalURL, got)
	})

	t.Run("registered token has fixed length and alphanumeric symbols", func(t *testing.T) {
		sut, tearDown := c.NewURLStore()
		t.Cleanup(tearDown)

		key, err := sut.Register(mustParseURL(t, "https://example.com"))

		require.NoError(t, err)
		assert.Len(t, key.String(), token.Length)
		assert.True(t, key.IsValid())
	})

	t.Run("register several urls", func(t *testing.T) {
		sut, tearDown := c.NewURLStore()
		t.Cleanup(tearDown)
		first := mustParseURL(t, "https://example1.com")
		second := mustParseURL(t, "https://example2.com")

		firstKey, err := sut.Register(first)
		require.NoError(t, err)
		secondKey, err := sut.Register(second)
		require.NoError(t, err)

		assert.NotEqual(t, firstKey, secondKey)
		assert.Equal(t, 2, sut.Len())
		assertResolved(t, sut, firstKey, first)
		assertResolved(t, sut, secondKey, second)
	})

	t.Run("original url not found", func(t *testing.T) {
		sut, tearDown := c.NewURLStore()
		t.Cleanup(tearDown)

		_, err := sut.Resolve("123456")

		assert.ErrorIs(t, err, ErrOriginalURLNotFound)
	})

	t.Run("token with non-alphanumeric symbols is not found", func(t *testing.T) {
		sut, tearDown := c.NewURLStore()
		t.Cleanup(tearDown)

		_, err := sut.Resolve("ab-_!?")

		assert.ErrorIs(t, err, ErrOriginalURLNotFound)
		assert.NotErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token has invalid length", func(t *testing.T) {
		for _, key := range []string{"1234567", "abc12", ""} {
			sut, tearDown := c.NewURLStore()
			t.Cleanup(tearDown)

			_, err := sut.Resolve(key)

			assert.ErrorIs(t, err, ErrInvalidToken, "key %q", key)
			var validationErr *token.ValidationError
			assert.ErrorAs(t, err, &validationErr, "key %q", key)
		}
	})

	t.Run("resolved url is a copy", func(t *testing.T) {
		sut, tearDown := c.NewURLStore()
		t.Cleanup(tearDown)
		originalURL := mustParseURL(t, "https://example.com/a")
		key, err := sut.Register(originalURL)
		require.NoError(t, err)

		got, err := sut.Resolve(key.String())
		require.NoError(t, err)
		got.Path = "/changed"

		assertResolved(t, sut, key, originalURL)
	})

	t.Run("store is available", func(t *testing.T) {
		sut, tearDown := c.NewURLStore()
		t.Cleanup(tearDown)

		assert.True(t, sut.IsAvailable())
		assert.Equal(t, 0, sut.Len())
	})
}

func assertResolved(t *testing.T, store URLStore, key token.Token, want url.URL) {
	t.Helper()

	got, err := store.Resolve(key.String())

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func mustParseURL(t *testing.T, rawURL string) url.URL {
	t.Helper()

	u, err := url.Parse(rawURL)
	require.NoError(t, err)

	return *u
}
