package domain

import "errors"

const CommandMarker = "!"

var (
	ErrSendFailure          = errors.New("failed to send message")
	ErrCommandNotRegistered = errors.New("command not registered")
	ErrStreamEnded          = errors.New("event stream ended")
	ErrNotConnected         = errors.New("transport not connected")
	ErrEmptyText            = errors.New("empty message text")
	ErrInvalidChannel       = errors.New("invalid channel")
	ErrInvalidReplyTarget   = errors.New("invalid reply target")
	ErrEmptyPrompt          = errors.New("empty prompt")
)
