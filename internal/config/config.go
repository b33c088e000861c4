package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that decodes YAML strings like "30s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config carries settings for both binaries: the admin CLI (client side) and
// the development API server. Values come from defaults, then environment
// variables, then an optional YAML file.
type Config struct {
	// APIURL is the backend base URL the client talks to.
	APIURL string `yaml:"api_url"`
	// APITimeout bounds every outgoing request.
	APITimeout Duration `yaml:"api_timeout"`
	// SessionPath is where the CLI persists its credentials.
	SessionPath string `yaml:"session_path"`

	// Addr is the development server listen address.
	Addr string `yaml:"addr"`
	// JWTSecret signs the development server's access tokens.
	JWTSecret string `yaml:"jwt_secret"`
	// TokenDuration is the development server's token lifetime.
	TokenDuration Duration `yaml:"token_duration"`
	// AdminEmail and AdminPassword seed the development server's only user.
	AdminEmail    string `yaml:"admin_email"`
	AdminPassword string `yaml:"admin_password"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		APIURL:        getEnv("BACKOFFICE_API_URL", "http://localhost:3001"),
		APITimeout:    Duration(30 * time.Second),
		SessionPath:   getEnv("BACKOFFICE_SESSION_PATH", defaultSessionPath()),
		Addr:          getEnv("BACKOFFICE_ADDR", ":3001"),
		JWTSecret:     getEnv("BACKOFFICE_JWT_SECRET", "devsecretkey"),
		TokenDuration: Duration(1 * time.Hour),
		AdminEmail:    getEnv("BACKOFFICE_ADMIN_EMAIL", "admin@example.com"),
		AdminPassword: getEnv("BACKOFFICE_ADMIN_PASSWORD", "secret123"),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "backoffice-session.db"
	}
	return filepath.Join(home, ".backoffice", "session.db")
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
