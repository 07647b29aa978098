package errors

import "errors"

var (
	ErrInvalidTarget = errors.New("site target is invalid")
	ErrNoFeed        = errors.New("no readable feed or sitemap found")
)
