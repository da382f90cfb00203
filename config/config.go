package config

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// Options holds the tunable behavior of the editing core and converters.
type Options struct {
	// HistoryLimit bounds the undo stack. Zero or negative falls back to
	// the default at the point of use.
	HistoryLimit int `toml:"history_limit"`

	// HTMLTitle is the <title> used for full-document HTML export.
	HTMLTitle string `toml:"html_title"`

	// HTMLStyle overrides the embedded stylesheet for full-document
	// export. Empty keeps the built-in stylesheet.
	HTMLStyle string `toml:"html_style"`

	// Pretty selects indented JSON output.
	Pretty bool `toml:"pretty"`
}

// Defaults returns the options used when no config file exists.
func Defaults() Options {
	return Options{
		HistoryLimit: 100,
		HTMLTitle:    "Document",
	}
}

// Load reads options from a TOML file. A missing file returns the
// defaults without error; a malformed file is an error.
func Load(path string) (Options, error) {
	opts := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return opts, nil
		}
		return opts, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &opts); err != nil {
		return Defaults(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = Defaults().HistoryLimit
	}
	return opts, nil
}
