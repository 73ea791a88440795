package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides overrides cfg fields with environment variables when the
// corresponding variables are set. Env takes precedence over the config file;
// flags are applied afterwards and win over both.
func ApplyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	// PORT is what most hosting platforms hand out.
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" && os.Getenv("LISTEN_ADDR") == "" {
		cfg.ListenAddr = ":" + v
	}
	if v := os.Getenv("UPSTREAM_URL"); v != "" {
		cfg.UpstreamURL = v
	}
	if v := os.Getenv("UPSTREAM_PARAM"); v != "" {
		cfg.UpstreamParam = v
	}
	if v := os.Getenv("UPSTREAM_UA"); v != "" {
		cfg.UserAgent = v
	}

	setDuration := func(dst *time.Duration, envKey string) {
		if s := strings.TrimSpace(os.Getenv(envKey)); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				*dst = d
			}
		}
	}
	setDuration(&cfg.UpstreamTimeout, "UPSTREAM_TIMEOUT")
	setDuration(&cfg.ShutdownTimeout, "SHUTDOWN_TIMEOUT")

	if s := strings.TrimSpace(os.Getenv("UPSTREAM_REDIRECT_MAX_HOPS")); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			cfg.RedirectMaxHops = n
		}
	}
	if s := strings.TrimSpace(os.Getenv("UPSTREAM_MAX_BODY_BYTES")); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			cfg.MaxBodyBytes = n
		}
	}

	// Booleans override when env present and truthy/falsey
	setBool := func(dst *bool, envKey string) {
		if s := strings.ToLower(strings.TrimSpace(os.Getenv(envKey))); s != "" {
			switch s {
			case "1", "true", "yes", "on":
				*dst = true
			case "0", "false", "no", "off":
				*dst = false
			}
		}
	}
	setBool(&cfg.StrictInput, "STRICT_INPUT")
	setBool(&cfg.MetricsEnabled, "METRICS_ENABLED")
	setBool(&cfg.Verbose, "VERBOSE")
	setBool(&cfg.LogJSON, "LOG_JSON")
}
