// Package config handles application configuration and setup
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/retroenv/riscvdata/internal/options"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/mod/semver"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Load reads the TOML configuration file at path into opts. Only keys
// present in the file are changed, unknown keys are an error.
func Load(path string, opts *options.Program) error {
	md, err := toml.DecodeFile(path, opts)
	if err != nil {
		return fmt.Errorf("decoding config file '%s': %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return fmt.Errorf("unknown keys in config file '%s': %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ValidateVersion checks that version is a semantic version without the
// leading v, for example 1.0.0.
func ValidateVersion(version string) error {
	if strings.HasPrefix(version, "v") || !semver.IsValid("v"+version) {
		return fmt.Errorf("invalid dataset version '%s'", version)
	}
	if semver.Canonical("v"+version) != "v"+version {
		return fmt.Errorf("dataset version '%s' is not in canonical major.minor.patch form", version)
	}
	return nil
}
