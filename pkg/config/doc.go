// Package config loads typed configuration from environment variables.
//
// Struct fields are annotated with github.com/caarlos0/env/v11 tags. The first
// call to Load reads a .env file from the working directory (via
// github.com/joho/godotenv) when one exists; variables already set in the
// process environment take precedence.
//
//	var cfg platform.Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Load caches one parsed copy per struct type, so repeated calls are cheap and
// consistent. Parse skips the cache and is handy in tests; Reset drops it.
package config
