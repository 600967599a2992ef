package config

import "errors"

var (
	// ErrNilPointer indicates a nil destination was passed to Load.
	ErrNilPointer = errors.New("config: nil pointer passed to Load")

	// ErrParsingConfig indicates environment parsing failed.
	ErrParsingConfig = errors.New("config: failed to parse environment")

	// ErrConfigNotLoaded indicates the config was not found in cache after parsing.
	ErrConfigNotLoaded = errors.New("config: configuration not loaded")
)
