package domain

import "errors"

var (
	ErrCurrencyNotFound = errors.New("currency not found")
	ErrFavoriteNotFound = errors.New("favorite currency not found")
)
