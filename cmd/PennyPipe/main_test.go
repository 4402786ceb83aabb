package main

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCredentialsFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key.json")
	if err := os.WriteFile(path, []byte(`{"type":"service_account"}`), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}

	got, err := loadCredentials(Config{CredentialsFile: path})
	if err != nil {
		t.Fatalf("loadCredentials: %v", err)
	}
	if string(got) != `{"type":"service_account"}` {
		t.Errorf("unexpected credentials: %s", got)
	}
}

func TestLoadCredentialsFromBase64(t *testing.T) {
	raw := `{"type":"service_account","project_id":"pennypipe"}`
	encoded := base64.StdEncoding.EncodeToString([]byte(raw))

	got, err := loadCredentials(Config{CredentialsB64: encoded})
	if err != nil {
		t.Fatalf("loadCredentials: %v", err)
	}
	if string(got) != raw {
		t.Errorf("decoded credentials = %s, want %s", got, raw)
	}
}

func TestLoadCredentialsFilePrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "key.json")
	if err := os.WriteFile(path, []byte("from-file"), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}
	encoded := base64.StdEncoding.EncodeToString([]byte("from-env"))

	got, err := loadCredentials(Config{CredentialsFile: path, CredentialsB64: encoded})
	if err != nil {
		t.Fatalf("loadCredentials: %v", err)
	}
	if string(got) != "from-file" {
		t.Errorf("expected file to win over base64, got %s", got)
	}
}

func TestOpenPostingLogMemoryDriver(t *testing.T) {
	log, err := openPostingLog(Config{PostingLogDriver: "memory"}, t.TempDir())
	if err != nil {
		t.Fatalf("openPostingLog: %v", err)
	}
	defer log.Close()

	seen, err := log.Seen(context.Background(), "2026-01-15|rent")
	if err != nil {
		t.Fatalf("Seen: %v", err)
	}
	if seen {
		t.Error("fresh posting log should not have seen any key")
	}
}
