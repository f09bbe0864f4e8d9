package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigBuildsAgent(t *testing.T) {
	if _, err := agentFromConfig(DefaultConfig()); err != nil {
		t.Fatalf("default config should build an agent: %v", err)
	}
}

func TestAgentFromConfigRejectsUnknownMethod(t *testing.T) {
	config := DefaultConfig()
	config.Method = "montecarlo"
	if _, err := agentFromConfig(config); err == nil {
		t.Fatalf("expected error for unknown method")
	}
}

func TestConfigStoreUpdate(t *testing.T) {
	prev := GetConfig()
	defer configStore.Update(prev)

	config := prev
	config.SearchDepth = 7
	config.TurnTimeMs = 250
	configStore.Update(config)

	got := GetConfig()
	if got.SearchDepth != 7 || got.TurnTimeMs != 250 {
		t.Fatalf("update not visible: %+v", got)
	}
}

func TestLoadServerConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".env")
	if err := os.WriteFile(cfgPath, []byte("SERVER_PORT=9090\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadServerConfig(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ServerPort != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.ServerPort)
	}
}

func TestLoadServerConfigMissingFile(t *testing.T) {
	if _, err := LoadServerConfig(filepath.Join(t.TempDir(), ".env")); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
