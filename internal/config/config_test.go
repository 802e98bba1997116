// /internal/config/config_test.go
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesDefaultFile(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("ASSETS_PATH", "")
	t.Setenv("STORAGE_PATH", "")

	path := filepath.Join(t.TempDir(), "catfm.conf.json")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Token != "" {
		t.Errorf("default token should be empty, got %q", cfg.Token)
	}
	if cfg.Assets != DefaultAssetsDir {
		t.Errorf("expected default assets dir %q, got %q", DefaultAssetsDir, cfg.Assets)
	}
	if cfg.StoragePath == "" {
		t.Error("storage path should have a default")
	}

	// The file must now exist and be valid JSON.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("default config file not written: %v", err)
	}
	var onDisk map[string]any
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("default config file is not valid JSON: %v", err)
	}
	if _, ok := onDisk["token"]; !ok {
		t.Error("default config file should carry a token field")
	}
}

func TestLoadReadsExistingFile(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("ASSETS_PATH", "")

	path := filepath.Join(t.TempDir(), "catfm.conf.json")
	content := `{
		"token": "file-token",
		"guilds": ["g1", "g2"],
		"fm_channel": "c1",
		"assets": "/srv/catfm/assets",
		"developers": ["d1"]
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Token != "file-token" {
		t.Errorf("token %q, want %q", cfg.Token, "file-token")
	}
	if len(cfg.Guilds) != 2 || cfg.Guilds[0] != "g1" {
		t.Errorf("unexpected guilds: %v", cfg.Guilds)
	}
	if cfg.FMChannel != "c1" {
		t.Errorf("fm channel %q, want %q", cfg.FMChannel, "c1")
	}
	if cfg.Assets != "/srv/catfm/assets" {
		t.Errorf("assets %q, want %q", cfg.Assets, "/srv/catfm/assets")
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "env-token")
	t.Setenv("ASSETS_PATH", "/env/assets")

	path := filepath.Join(t.TempDir(), "catfm.conf.json")
	content := `{"token": "file-token", "assets": "/file/assets"}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Token != "env-token" {
		t.Errorf("token %q, env should win over the file", cfg.Token)
	}
	if cfg.Assets != "/env/assets" {
		t.Errorf("assets %q, env should win over the file", cfg.Assets)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catfm.conf.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for a malformed config file")
	}
}
