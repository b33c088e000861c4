package backoffice

import "time"

// Config holds settings for the back-office API client.
type Config struct {
	// BaseURL is the HTTP endpoint of the backend, e.g. http://localhost:3001
	BaseURL string `yaml:"base_url" json:"base_url"`
	// Timeout is the per-request ceiling; a request that exceeds it is
	// reported as a connectivity failure.
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:3001",
		Timeout: 30 * time.Second,
	}
}
