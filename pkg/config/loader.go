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
	cacheMu sync.Mutex
	cached  = make(map[reflect.Type]any)

	dotenvOnce sync.Once
)

// LoadEnv reads the given .env files (or ".env" when none are given) into the
// process environment without overriding variables that are already set.
func LoadEnv(paths ...string) error {
	return godotenv.Load(paths...)
}

// Load parses the environment into v, caching the result per type.
// Subsequent calls for the same type return the cached copy.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}

	dotenvOnce.Do(func() {
		// a missing .env file is fine
		_ = godotenv.Load()
	})

	key := reflect.TypeFor[T]()

	cacheMu.Lock()
	defer cacheMu.Unlock()

	if c, ok := cached[key]; ok {
		*v = c.(T)
		return nil
	}

	if err := Parse(v); err != nil {
		return err
	}
	cached[key] = *v
	return nil
}

// MustLoad is like Load but panics when configuration cannot be loaded.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
}

// Parse parses the environment into v without touching the cache.
func Parse[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	if err := env.Parse(v); err != nil {
		return errors.Join(ErrParsingConfig, err)
	}
	return nil
}

// Reset clears every cached configuration.
func Reset() {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	clear(cached)
}
