package domain

import (
	"fmt"
	"net/url"

	"github.com/nestjam/shortlink/internal/token"
)

// A URLStoreDelegate allows to extend the behavior of the test double for negative scenarios
// for URLStore consumers.
type URLStoreDelegate struct {
	RegisterFunc    func(u url.URL) (token.Token, error)
	ResolveFunc     func(tokenText string) (url.URL, error)
	LenFunc         func() int
	IsAvailableFunc func() bool
	delegate        URLStore
}

func NewURLStoreDelegate(delegate URLStore) *URLStoreDelegate {
	return &URLStoreDelegate{delegate: delegate}
}

func (u *URLStoreDelegate) Register(originalURL url.URL) (token.Token, error) {
	if u.RegisterFunc != nil {
		return u.RegisterFunc(originalURL)
	}
	key, err := u.delegate.Register(originalURL)

	if err != nil {
		return token.Token{}, fmt.Errorf("register url in store delegate: %w", err)
	}

	return key, nil
}

func (u *URLStoreDelegate) Resolve(tokenText string) (url.URL, error) {
	if u.ResolveFunc != nil {
		return u.ResolveFunc(tokenText)
	}
	originalURL, err := u.delegate.Resolve(tokenText)

	if err != nil {
		return url.URL{}, fmt.Errorf("resolve url from store delegate: %w", err)
	}

	return originalURL, nil
}

func (u *URLStoreDelegate) Len() int {
	if u.LenFunc != nil {
		return u.LenFunc()
	}

	return u.delegate.Len()
}

func (u *URLStoreDelegate) IsAvailable() bool {
	if u.IsAvailableFunc != nil {
		return u.IsAvailableFunc()
	}

	return u.delegate.IsAvailable()
}
