package world

import "errors"

var (
	// ErrUnknownParam is returned by SetParam for a name Params does not list.
	ErrUnknownParam = errors.New("world: unknown parameter")

	// ErrParamBounds indicates a parameter value is outside its valid range.
	ErrParamBounds = errors.New("world: parameter out of valid bounds")
)
