package inmemory

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nestjam/shortlink/internal/domain"
)

func TestURLStore(t *testing.T) {
	domain.URLStoreContract{
		NewURLStore: func() (domain.URLStore, func()) {
			t.Helper()
			store := New()

			return store, func() {
			}
		},
	}.Test(t)
}

// scriptedRand возвращает заданные значения по порядку, затем повторяет последнее.
type scriptedRand struct {
	values []int
	calls  int
}

func (s *scriptedRand) IntN(n int) int {
	i := s.calls
	if i >= len(s.values) {
		i = len(s.values) - 1
	}
	s.calls++
	return s.values[i] % n
}

func repeat(v, count int) []int {
	values := make([]int, count)
	for i := range values {
		values[i] = v
	}
	return values
}

func TestRegister(t *testing.T) {
	t.Run("retry on collision", func(t *testing.T) {
		values := append(repeat(0, 12), repeat(1, 6)...)
		sut := New(WithRand(&scriptedRand{values: values}))
		first := mustParseURL(t, "https://example1.com")
		second := mustParseURL(t, "https://example2.com")

		firstKey, err := sut.Register(first)
		require.NoError(t, err)
		secondKey, err := sut.Register(second)
		require.NoError(t, err)

		assert.Equal(t, "000000", firstKey.String())
		assert.Equal(t, "111111", secondKey.String())
		assertResolved(t, sut, firstKey.String(), first)
		assertResolved(t, sut, secondKey.String(), second)
	})

	t.Run("token space is exhausted", func(t *testing.T) {
		const maxAttempts = 3
		rnd := &scriptedRand{values: []int{0}}
		sut := New(WithRand(rnd), WithMaxAttempts(maxAttempts))
		first := mustParseURL(t, "https://example1.com")
		_, err := sut.Register(first)
		require.NoError(t, err)
		callsBefore := rnd.calls

		_, err = sut.Register(mustParseURL(t, "https://example2.com"))

		assert.ErrorIs(t, err, domain.ErrTokenSpaceExhausted)
		assert.Equal(t, maxAttempts*6, rnd.calls-callsBefore)
		assert.Equal(t, 1, sut.Len())
		assertResolved(t, sut, "000000", first)
	})

	t.Run("non-positive max attempts is ignored", func(t *testing.T) {
		sut := New(WithMaxAttempts(0))

		assert.Equal(t, DefaultMaxAttempts, sut.maxAttempts)
	})

	t.Run("same url registered twice gets two tokens", func(t *testing.T) {
		sut := New()
		originalURL := mustParseURL(t, "https://example.com")

		firstKey, err := sut.Register(originalURL)
		require.NoError(t, err)
		secondKey, err := sut.Register(originalURL)
		require.NoError(t, err)

		assert.NotEqual(t, firstKey, secondKey)
		assert.Equal(t, 2, sut.Len())
	})
}

func assertResolved(t *testing.T, sut *InmemoryURLStore, key string, want url.URL) {
	t.Helper()

	got, err := sut.Resolve(key)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func mustParseURL(t *testing.T, rawURL string) url.URL {
	t.Helper()

	u, err := url.Parse(rawURL)
	require.NoError(t, err)

	return *u
}
