package tts

import (
	"context"
	"errors"
	"testing"
)

// mockProvider implements Provider for testing
type mockProvider struct {
	name       string
	synthErr   error
	synthCalls int
}

func (m *mockProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	m.synthCalls++
	if m.synthErr != nil {
		return nil, m.synthErr
	}
	return []byte("audio"), nil
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) IsAvailable() error { return nil }

func TestBreakerPassesThrough(t *testing.T) {
	inner := &mockProvider{name: "mock"}
	provider := NewBreakerProvider(inner)

	audio, err := provider.Synthesize(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if string(audio) != "audio" {
		t.Errorf("Unexpected audio data %q", audio)
	}
	if provider.Name() != "mock" {
		t.Errorf("Expected wrapped name 'mock', got %q", provider.Name())
	}
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &mockProvider{name: "mock", synthErr: errors.New("service down")}
	provider := NewBreakerProvider(inner)

	// Drive the breaker past its failure threshold.
	for i := 0; i < 5; i++ {
		if _, err := provider.Synthesize(context.Background(), "hello"); err == nil {
			t.Fatal("Expected synthesis error")
		}
	}
	if inner.synthCalls != 5 {
		t.Fatalf("Expected 5 inner calls before the breaker opens, got %d", inner.synthCalls)
	}

	// Breaker is open now: the inner provider must not be called again.
	if _, err := provider.Synthesize(context.Background(), "hello"); err == nil {
		t.Fatal("Expected error from open breaker")
	}
	if inner.synthCalls != 5 {
		t.Errorf("Expected inner provider untouched while open, got %d calls", inner.synthCalls)
	}
}
