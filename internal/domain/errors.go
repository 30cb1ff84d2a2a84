package domain

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrUpstreamAuth        = errors.New("provider token acquisition failed")
	ErrUpstreamRequest     = errors.New("provider push request failed")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAlreadyResolved     = errors.New("transaction already resolved")
	ErrProjectNotFound     = errors.New("project not found")
	ErrInvalidAPIKey       = errors.New("invalid api key")
)
