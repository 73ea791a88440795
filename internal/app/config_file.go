package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"
)

// FileConfig represents the single-file configuration schema.
type FileConfig struct {
	Server struct {
		Listen          string        `yaml:"listen" json:"listen"`
		ShutdownTimeout time.Duration `yaml:"shutdownTimeout" json:"shutdownTimeout"`
		StrictInput     *bool         `yaml:"strictInput" json:"strictInput"`
		Metrics         *bool         `yaml:"metrics" json:"metrics"`
	} `yaml:"server" json:"server"`

	Upstream struct {
		URL             string        `yaml:"url" json:"url"`
		Param           string        `yaml:"param" json:"param"`
		UA              string        `yaml:"ua" json:"ua"`
		Timeout         time.Duration `yaml:"timeout" json:"timeout"`
		RedirectMaxHops int           `yaml:"redirectMaxHops" json:"redirectMaxHops"`
		MaxBodyBytes    int64         `yaml:"maxBodyBytes" json:"maxBodyBytes"`
	} `yaml:"upstream" json:"upstream"`

	Log struct {
		Verbose bool `yaml:"verbose" json:"verbose"`
		JSON    bool `yaml:"json" json:"json"`
	} `yaml:"log" json:"log"`
}

// LoadConfigFile reads YAML or JSON into FileConfig.
func LoadConfigFile(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse json: %w", err)
		}
	default:
		// Try YAML then JSON
		if err := yaml.Unmarshal(b, &fc); err != nil {
			if jerr := json.Unmarshal(b, &fc); jerr != nil {
				return fc, fmt.Errorf("parse config: %v (yaml) / %v (json)", err, jerr)
			}
		}
	}
	return fc, nil
}

// ApplyFileConfig overlays every value present in fc onto cfg. Call it on top
// of DefaultConfig, before environment overrides and flags.
func ApplyFileConfig(cfg *Config, fc FileConfig) {
	if cfg == nil {
		return
	}
	if fc.Server.Listen != "" {
		cfg.ListenAddr = fc.Server.Listen
	}
	if fc.Server.ShutdownTimeout > 0 {
		cfg.ShutdownTimeout = fc.Server.ShutdownTimeout
	}
	if fc.Server.StrictInput != nil {
		cfg.StrictInput = *fc.Server.StrictInput
	}
	if fc.Server.Metrics != nil {
		cfg.MetricsEnabled = *fc.Server.Metrics
	}

	if fc.Upstream.URL != "" {
		cfg.UpstreamURL = fc.Upstream.URL
	}
	if fc.Upstream.Param != "" {
		cfg.UpstreamParam = fc.Upstream.Param
	}
	if fc.Upstream.UA != "" {
		cfg.UserAgent = fc.Upstream.UA
	}
	if fc.Upstream.Timeout > 0 {
		cfg.UpstreamTimeout = fc.Upstream.Timeout
	}
	if fc.Upstream.RedirectMaxHops > 0 {
		cfg.RedirectMaxHops = fc.Upstream.RedirectMaxHops
	}
	if fc.Upstream.MaxBodyBytes > 0 {
		cfg.MaxBodyBytes = fc.Upstream.MaxBodyBytes
	}

	if fc.Log.Verbose {
		cfg.Verbose = true
	}
	if fc.Log.JSON {
		cfg.LogJSON = true
	}
}

var validate = validator.New()

// ValidateConfig checks the struct constraints on cfg and reports every
// failing field in one error.
func ValidateConfig(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describeFieldError(fe))
	}
	return fmt.Errorf("config: %s", strings.Join(msgs, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Field() == "UpstreamURL" {
			return "UpstreamURL is required (set upstream.url or UPSTREAM_URL)"
		}
		return fe.Field() + " is required"
	case "http_url":
		return fmt.Sprintf("%s must be an http(s) URL, got %q", fe.Field(), fe.Value())
	default:
		return fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
}
