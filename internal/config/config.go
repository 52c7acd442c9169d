// Package config loads teitidy settings from a TOML file.
package config

import (
	"io/fs"

	"github.com/BurntSushi/toml"

	"github.com/corpustools/teitidy/core/errors"
)

// DefaultPath is the config file looked up in the working directory when no
// explicit path is given.
const DefaultPath = ".teitidy.toml"

// Config holds the formatter and CLI defaults.
type Config struct {
	// Indent is the starting indentation column for wrapped text.
	Indent int `toml:"indent"`
	// PruneEmpty deletes elements left with no text and no children.
	PruneEmpty bool `toml:"prune_empty"`
	// Catalog is the path of the run catalog database ("" disables it).
	Catalog string `toml:"catalog"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// LogFormat is text or json.
	LogFormat string `toml:"log_format"`
}

// Default returns the built-in defaults: indent 8, pruning enabled, text
// logging at info level.
func Default() Config {
	return Config{
		Indent:     8,
		PruneEmpty: true,
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// Load reads a TOML config file, applying its values over the defaults. A
// missing file is not an error; the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), errors.NewParse("TOML", path, err.Error())
	}
	if cfg.Indent < 0 {
		return Default(), errors.NewValidation("indent", "must not be negative")
	}
	return cfg, nil
}
