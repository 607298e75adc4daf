package gauth

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestTokenSourceMissingPath(t *testing.T) {
	_, err := TokenSource(context.Background(), "")
	if err == nil {
		t.Fatal("Expected error for empty credentials path")
	}
}

func TestTokenSourceMissingFile(t *testing.T) {
	_, err := TokenSource(context.Background(), "/nonexistent/sa.json")
	if err == nil {
		t.Fatal("Expected error for missing credentials file")
	}
}

func TestTokenSourceInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sa.json")
	if err := os.WriteFile(path, []byte("not json"), 0600); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err := TokenSource(context.Background(), path)
	if err == nil {
		t.Fatal("Expected error for invalid key file")
	}
}
