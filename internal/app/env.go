package app

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// LoadEnvFiles loads dotenv files into the process environment. Later files
// override earlier ones; non-empty variables already set in the real
// environment are kept. Missing files are skipped.
func LoadEnvFiles(paths ...string) error {
	existing := make(map[string]bool)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && v != "" {
			existing[k] = true
		}
	}
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		vals, err := godotenv.Read(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return err
		}
		for k, v := range vals {
			if existing[k] {
				continue
			}
			if err := os.Setenv(k, v); err != nil {
				return err
			}
		}
	}
	return nil
}
