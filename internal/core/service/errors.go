package service

import "errors"

var ErrHandlerPanic = errors.New("handler panicked")
