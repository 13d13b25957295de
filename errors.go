package bough

import "errors"

var (
	// ErrNoContext is returned by NewRenderer when the scene's surface has no
	// drawing context.
	ErrNoContext = errors.New("bough: surface has no drawing context")

	// ErrUnknownEase is returned when an ease name is not registered.
	ErrUnknownEase = errors.New("bough: unknown ease")

	// ErrUnknownShape is returned when a scene document names a shape kind
	// that has no constructor.
	ErrUnknownShape = errors.New("bough: unknown shape")
)
