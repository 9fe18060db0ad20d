package domain

import (
	"errors"
)

// Ошибки хранилища ссылок.
var (
	ErrOriginalURLNotFound = errors.New("not found")                // исходный URL не найден
	ErrInvalidToken        = errors.New("invalid token")            // токен не прошел проверку
	ErrTokenSpaceExhausted = errors.New("token space is exhausted") // не удалось подобрать свободный токен
	ErrStoreLocked         = errors.New("store is locked")          // хранилище недоступно после сбоя
)
