package domain

import "errors"

var (
	ErrUnknownTransactionType = errors.New("unknown transaction type")
	ErrUnknownAction          = errors.New("unknown investment action")
	ErrInvalidCategoryTree    = errors.New("invalid category tree")
)
