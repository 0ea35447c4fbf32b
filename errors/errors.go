package errors

import "fmt"

var (
	ErrMatchNotFound     = fmt.Errorf("match not found")
	ErrMatchExists       = fmt.Errorf("match already exists")
	ErrInvalidTransition = fmt.Errorf("invalid match status transition")
	ErrUnauthorized      = fmt.Errorf("actor is not allowed to score this match")
	ErrMissingWicketType = fmt.Errorf("wicket type is required when a wicket falls")
	ErrUnknownWicketType = fmt.Errorf("unknown wicket type")
	ErrUnknownStatus     = fmt.Errorf("unknown match status")
	ErrSinkBufferFull    = fmt.Errorf("subscriber buffer is full")
)
