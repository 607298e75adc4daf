// Package tts provides text-to-speech providers for the audio generator.
// Synthesis happens remotely; providers return the raw encoded audio bytes.
package tts

import (
	"context"
	"fmt"
	"strings"
)

// Provider defines the interface for text-to-speech providers
type Provider interface {
	// Synthesize converts text to speech and returns the encoded audio
	Synthesize(ctx context.Context, text string) ([]byte, error)

	// Name returns the provider name
	Name() string

	// IsAvailable checks if the provider is properly configured and available
	IsAvailable() error
}

// Config holds common configuration for text-to-speech providers
type Config struct {
	Provider     string  // Provider name: "google" or "openai"
	Voice        string  // Voice name, e.g. "cmn-CN-Wavenet-A" or "nova"
	SpeakingRate float64 // Speed multiplier, passed through to the service
	Encoding     string  // "MP3", "OGG_OPUS" or "LINEAR16"

	// Google-specific settings
	CredentialsFile string // Service account key file

	// OpenAI-specific settings
	OpenAIKey   string
	OpenAIModel string // "tts-1", "tts-1-hd", or "gpt-4o-mini-tts"
}

// DefaultConfig returns default provider configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:     "google",
		SpeakingRate: 1.0,
		Encoding:     "MP3",
		OpenAIModel:  "gpt-4o-mini-tts",
	}
}

// NewProvider creates the appropriate text-to-speech provider based on
// configuration.
func NewProvider(ctx context.Context, config *Config) (Provider, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case "google":
		return NewGoogleProvider(ctx, config)

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIProvider(config)

	default:
		return nil, fmt.Errorf("unknown tts provider: %s", config.Provider)
	}
}

// FileExtension returns the audio file extension for an encoding.
func FileExtension(encoding string) string {
	switch encoding {
	case "OGG_OPUS":
		return ".ogg"
	case "LINEAR16":
		return ".wav"
	default:
		return ".mp3"
	}
}

// MIMEType returns the upload MIME type for an encoding.
func MIMEType(encoding string) string {
	switch encoding {
	case "OGG_OPUS":
		return "audio/ogg"
	case "LINEAR16":
		return "audio/wav"
	default:
		return "audio/mpeg"
	}
}

// LanguageCodeFromVoice derives the BCP-47 language code from a Google voice
// name, e.g. "cmn-CN-Wavenet-A" yields "cmn-CN".
func LanguageCodeFromVoice(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) < 2 {
		return voice
	}
	return parts[0] + "-" + parts[1]
}
