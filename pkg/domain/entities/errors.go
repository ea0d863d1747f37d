package entities

import "errors"

// ErrInvalidArgument is returned when a constructor receives unusable input
var ErrInvalidArgument = errors.New("invalid argument")
