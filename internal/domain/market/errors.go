package market

import "errors"

var (
	// ErrNoSearchResults is returned when a search yields no market at all
	ErrNoSearchResults = errors.New("no markets found")

	// ErrStaleResults is returned when cached results belong to another build
	ErrStaleResults = errors.New("search results belong to a different build")
)
