package app

import (
	"fmt"
	"strings"
)

// ResolveConfig layers configuration in precedence order: defaults, dotenv
// files, the optional config file, then the environment. Flags are applied by
// the caller afterwards. The result is not validated.
func ResolveConfig(configPath string, envFiles []string) (Config, error) {
	if err := LoadEnvFiles(envFiles...); err != nil {
		return Config{}, fmt.Errorf("load env files: %w", err)
	}
	cfg := DefaultConfig()
	if strings.TrimSpace(configPath) != "" {
		fc, err := LoadConfigFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", configPath, err)
		}
		ApplyFileConfig(&cfg, fc)
	}
	ApplyEnvOverrides(&cfg)
	return cfg, nil
}

// SplitList splits a comma-separated flag value, dropping blanks.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	list := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			list = append(list, v)
		}
	}
	return list
}
