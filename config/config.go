package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

type (
	Stream struct {
		// HighWatermark is the amount of buffered body bytes, at which a stream with no
		// consumer attached pauses itself. A paused stream prevents the engine from
		// arming further body reads until it is resumed.
		HighWatermark int `toml:"high_watermark"`
	}

	Body struct {
		// BufferPrealloc is the initial length of the buffer accumulating a request body,
		// as its full length is generally not known in advance.
		BufferPrealloc int `toml:"buffer_prealloc"`
	}

	Headers struct {
		// Prealloc is the number of preallocated seats in the header storage.
		Prealloc int `toml:"prealloc"`
		// Default headers are included into every response implicitly, unless
		// explicitly overridden.
		Default map[string]string `toml:"default" test:"nullable"`
	}
)

// Config holds settings used across syshttp, mainly pre-allocations and buffering
// boundaries. Always modify defaults (returned via Default()) instead of initializing
// the struct manually, otherwise zero-valued limits may render the server inoperable.
type Config struct {
	Stream  Stream  `toml:"stream"`
	Body    Body    `toml:"body"`
	Headers Headers `toml:"headers"`
}

// Default returns the default config.
func Default() *Config {
	return &Config{
		Stream: Stream{
			// a connection with no consumer shouldn't hold more than a few ordinary
			// chunks before the engine is told to back off
			HighWatermark: 64 * 1024,
		},
		Body: Body{
			BufferPrealloc: 1024,
		},
		Headers: Headers{
			Prealloc: 10,
			Default:  make(map[string]string),
		},
	}
}

// Load reads a TOML file and overlays it onto the defaults, so partial files
// are fine.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}
