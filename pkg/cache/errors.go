package cache

import "errors"

var (
	ErrFailedToParseRedisURL = errors.New("failed to parse redis connection string")
	ErrRedisNotReady         = errors.New("redis did not become ready within the given time period")
	ErrNilRedisClient        = errors.New("redis client is required")
)
