package app

import (
	"time"

	"github.com/hyperifyio/numlookup/internal/fetch"
	"github.com/hyperifyio/numlookup/internal/lookup"
)

// Config holds runtime configuration for the service and the CLI.
type Config struct {
	// Server
	ListenAddr      string        `validate:"required"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
	StrictInput     bool
	MetricsEnabled  bool

	// Upstream
	UpstreamURL     string        `validate:"required,http_url"`
	UpstreamParam   string        `validate:"required"`
	UserAgent       string        `validate:"required"`
	UpstreamTimeout time.Duration `validate:"gt=0"`
	RedirectMaxHops int           `validate:"gte=1,lte=20"`
	MaxBodyBytes    int64         `validate:"gt=0"`

	// Logging
	Verbose bool
	LogJSON bool
}

const (
	defaultListenAddr      = ":3000"
	defaultUserAgent       = "numlookup/1.0 (+https://github.com/hyperifyio/numlookup)"
	defaultUpstreamTimeout = 15 * time.Second
	defaultRedirectMaxHops = 5
	defaultShutdownTimeout = 10 * time.Second
)

// DefaultConfig returns the built-in defaults. UpstreamURL has no default and
// must come from a file, the environment or a flag.
func DefaultConfig() Config {
	return Config{
		ListenAddr:      defaultListenAddr,
		ShutdownTimeout: defaultShutdownTimeout,
		MetricsEnabled:  true,
		UpstreamParam:   lookup.DefaultParam,
		UserAgent:       defaultUserAgent,
		UpstreamTimeout: defaultUpstreamTimeout,
		RedirectMaxHops: defaultRedirectMaxHops,
		MaxBodyBytes:    fetch.DefaultMaxBodyBytes,
	}
}
