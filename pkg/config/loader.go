package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	mu     sync.RWMutex
	cache  = make(map[string]any)
	onces  = make(map[string]*sync.Once)
	dotEnv sync.Once
)

// Load parses environment variables into the provided struct based on its
// `env` field tags. The default .env file is loaded once per process before
// the first parse; a missing .env file is not an error.
//
// Each distinct configuration type is parsed only once. Subsequent calls for
// the same type return the cached value, so configs stay consistent across
// components even if the environment changes mid-process.
func Load[T any](v *T) error {
	dotEnv.Do(func() {
		// The .env file is a development convenience and may not exist.
		_ = godotenv.Load()
	})
	if v == nil {
		return ErrNilPointer
	}

	name := typeName[T]()

	mu.RLock()
	if cached, ok := cache[name]; ok {
		*v = cached.(T)
		mu.RUnlock()
		return nil
	}
	mu.RUnlock()

	mu.Lock()
	once, ok := onces[name]
	if !ok {
		once = new(sync.Once)
		onces[name] = once
	}
	mu.Unlock()

	var parseErr error
	once.Do(func() {
		if err := env.Parse(v); err != nil {
			parseErr = errors.Join(ErrParsingConfig, err)
			return
		}
		mu.Lock()
		cache[name] = *v
		mu.Unlock()
	})
	if parseErr != nil {
		return parseErr
	}

	// Re-read from cache so concurrent callers observe the parsed value
	// even when another goroutine won the sync.Once race.
	mu.RLock()
	defer mu.RUnlock()
	if cached, ok := cache[name]; ok {
		*v = cached.(T)
		return nil
	}
	return ErrConfigNotLoaded
}

// MustLoad works like Load but panics on failure. Intended for configs the
// process cannot start without.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

func typeName[T any]() string {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return fmt.Sprintf("%T", *new(T))
	}
	return t.String()
}
