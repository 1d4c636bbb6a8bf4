package mcpserver

import (
	"time"

	"github.com/erraggy/oapistub/internal/config"
)

// serverConfig holds the MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	*config.Config

	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// MaxInlineSize bounds inline spec content in bytes.
	MaxInlineSize int64
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OAPISTUB_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		Config:             config.Load(),
		CacheEnabled:       config.EnvBool("OAPISTUB_CACHE_ENABLED", true),
		CacheMaxSize:       config.EnvInt("OAPISTUB_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       config.EnvDuration("OAPISTUB_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        config.EnvDuration("OAPISTUB_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    config.EnvDuration("OAPISTUB_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: config.EnvDuration("OAPISTUB_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxInlineSize:      int64(config.EnvInt("OAPISTUB_MAX_INLINE_SIZE", 10*1024*1024)),
	}
}
