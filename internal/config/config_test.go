package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIURL != "http://localhost:3001" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.APITimeout.Std() != 30*time.Second {
		t.Fatalf("APITimeout = %v", cfg.APITimeout)
	}
	if cfg.Addr != ":3001" {
		t.Fatalf("Addr = %q", cfg.Addr)
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("BACKOFFICE_API_URL", "https://api.example.com")
	t.Setenv("BACKOFFICE_SESSION_PATH", "/tmp/sess.db")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIURL != "https://api.example.com" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.SessionPath != "/tmp/sess.db" {
		t.Fatalf("SessionPath = %q", cfg.SessionPath)
	}
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	body := "api_url: https://yaml.example.com\napi_timeout: 10s\nadmin_email: root@example.com\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.APIURL != "https://yaml.example.com" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.APITimeout.Std() != 10*time.Second {
		t.Fatalf("APITimeout = %v", cfg.APITimeout)
	}
	if cfg.AdminEmail != "root@example.com" {
		t.Fatalf("AdminEmail = %q", cfg.AdminEmail)
	}
	// untouched keys keep their defaults
	if cfg.Addr != ":3001" {
		t.Fatalf("Addr = %q", cfg.Addr)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig("/does/not/exist.yml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
