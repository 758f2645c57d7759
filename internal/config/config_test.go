package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")

	yaml := `
server:
  ws_url: "wss://chat.example.com/ws"
  token: "secret"
chat:
  room: "dev"
  user: "alice"
animation:
  insert_duration: 300ms
`
	if err := os.WriteFile(cfgPath, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Server.WSURL != "wss://chat.example.com/ws" {
		t.Errorf("Server.WSURL = %q, want wss://chat.example.com/ws", cfg.Server.WSURL)
	}
	if cfg.Server.Token != "secret" {
		t.Errorf("Server.Token = %q, want secret", cfg.Server.Token)
	}
	if cfg.Chat.Room != "dev" {
		t.Errorf("Chat.Room = %q, want dev", cfg.Chat.Room)
	}
	if cfg.Chat.User != "alice" {
		t.Errorf("Chat.User = %q, want alice", cfg.Chat.User)
	}
	if cfg.Animation.InsertDuration.Std() != 300*time.Millisecond {
		t.Errorf("Animation.InsertDuration = %v, want 300ms", cfg.Animation.InsertDuration.Std())
	}

	// Defaults should still be applied for unspecified fields.
	if cfg.Animation.RemoveDuration.Std() != 180*time.Millisecond {
		t.Errorf("Animation.RemoveDuration = %v, want default 180ms", cfg.Animation.RemoveDuration.Std())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Fatal("Load() on missing file should return error")
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadOrDefault() error: %v", err)
	}

	if cfg.Server.WSURL != "ws://127.0.0.1:8080/ws" {
		t.Errorf("Server.WSURL = %q, want default", cfg.Server.WSURL)
	}
	if cfg.Chat.Room != "general" {
		t.Errorf("Chat.Room = %q, want default general", cfg.Chat.Room)
	}
	if !cfg.Chat.Markdown {
		t.Error("Chat.Markdown = false, want default true")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(cfgPath, []byte(":::not valid yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(cfgPath)
	if err == nil {
		t.Fatal("Load() with invalid YAML should return error")
	}
}
