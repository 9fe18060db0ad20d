package token

import (
	"fmt"
	"math/rand/v2"
)

// Length определяет длину токена.
const Length = 6

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var alphabetLen = len(alphabet)

// Rand определяет источник случайных чисел для генерации токенов.
type Rand interface {
	IntN(n int) int
}

type globalRand struct{}

func (globalRand) IntN(n int) int {
	return rand.IntN(n)
}

// DefaultRand возвращает общий для процесса источник случайных чисел. Безопасен для конкурентного использования.
func DefaultRand() Rand {
	return globalRand{}
}

// Token представляет короткий идентификатор сокращенной ссылки.
type Token struct {
	text string
}

// ValidationError определяет ошибку разбора токена неверной длины.
type ValidationError struct {
	Want int // ожидаемая длина
	Got  int // фактическая длина
}

// Error возвращает текст ошибки.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("token must be %d characters long, got %d", e.Want, e.Got)
}

// Generate создает токен из символов алфавита, выбранных случайно и независимо друг от друга.
func Generate(rnd Rand) Token {
	letters := make([]byte, Length)

	for i := range letters {
		letters[i] = alphabet[rnd.IntN(alphabetLen)]
	}

	return Token{text: string(letters)}
}

// Parse создает токен из внешней строки. Проверяется только длина строки.
func Parse(s string) (Token, error) {
	if len(s) != Length {
		return Token{}, &ValidationError{Want: Length, Got: len(s)}
	}

	return Token{text: s}, nil
}

// String возвращает текст токена.
func (t Token) String() string {
	return t.text
}

// IsValid возвращает true, если токен состоит из Length символов алфавита.
func (t Token) IsValid() bool {
	if len(t.text) != Length {
		return false
	}

	for i := 0; i < len(t.text); i++ {
		if !isAlphanumeric(t.text[i]) {
			return false
		}
	}

	return true
}

func isAlphanumeric(c byte) bool {
	return (c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}
