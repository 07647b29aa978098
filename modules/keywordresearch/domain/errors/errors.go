package errors

import "errors"

var (
	ErrInvalidKeyword     = errors.New("keyword is invalid")
	ErrNotFound           = errors.New("research not found")
	ErrRateLimited        = errors.New("daily usage limit reached")
	ErrAllProvidersFailed = errors.New("all research providers failed")
	ErrProviderTimeout    = errors.New("research provider timed out")
)
