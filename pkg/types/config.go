package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. The Wikipedia fetch blocks
	// the query loop, so this is also the per-query upper bound.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "wikifacts/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// WikiConfig holds settings for the Wikipedia API client.
type WikiConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the MediaWiki api.php endpoint. Empty selects the
	// English Wikipedia.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// MaxRetries is the number of retries on HTTP 429 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// CacheConfig holds settings for the infobox text cache.
type CacheConfig struct {
	// Path is the SQLite database file. Empty disables the cache.
	Path string `json:"path,omitempty" yaml:"path,omitempty" mapstructure:"path"`

	// TTL is how long a cached infobox stays fresh (default 24h).
	TTL time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl"`
}

// Config groups all settings for the wikifacts CLI.
type Config struct {
	Wiki  WikiConfig  `json:"wiki" yaml:"wiki" mapstructure:"wiki"`
	Cache CacheConfig `json:"cache" yaml:"cache" mapstructure:"cache"`

	// RulesFile optionally replaces the built-in field rules with a
	// YAML rule table.
	RulesFile string `json:"rules_file,omitempty" yaml:"rules_file,omitempty" mapstructure:"rules_file"`
}

// DefaultConfig returns the configuration used when no config file or
// environment overrides are present.
func DefaultConfig() Config {
	return Config{
		Wiki: WikiConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "wikifacts/0.1",
			},
			MaxRetries: 3,
		},
		Cache: CacheConfig{
			TTL: 24 * time.Hour,
		},
	}
}
