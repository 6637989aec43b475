package platform

import "time"

// Config holds the platform API connection settings.
type Config struct {
	BaseURL  string        `env:"PLATFORM_API_URL,required"`
	Token    string        `env:"PLATFORM_API_TOKEN"`
	Timeout  time.Duration `env:"PLATFORM_TIMEOUT" envDefault:"10s"`
	CacheTTL time.Duration `env:"PLATFORM_CACHE_TTL" envDefault:"5m"`
}
