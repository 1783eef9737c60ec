// Package config holds application defaults and environment loading.
package config

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
)

const (
	// DefaultPort is the default HTTP server port.
	DefaultPort = "8080"

	// DefaultDatabaseURL is empty; must be provided via flag or environment.
	DefaultDatabaseURL = ""
)

// LoadDotenv loads variables from a .env file into the process environment
// so CLI flags with EnvVars bindings pick them up. A missing file is not an
// error; local development uses .env, deployments use real env vars.
func LoadDotenv() {
	if err := godotenv.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		slog.Warn("failed to load .env file", "error", err)
	}
}
