package tts

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/texttospeech/v1"

	"codeberg.org/snonux/sentencebank/internal/gauth"
)

// GoogleProvider implements Provider using the Google Cloud Text-to-Speech
// API.
type GoogleProvider struct {
	svc    *texttospeech.Service
	config *Config
}

// NewGoogleProvider creates a Google Cloud TTS provider authorized by the
// configured service-account key file.
func NewGoogleProvider(ctx context.Context, config *Config) (Provider, error) {
	ts, err := gauth.TokenSource(ctx, config.CredentialsFile)
	if err != nil {
		return nil, err
	}

	svc, err := texttospeech.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create Text-to-Speech service: %w", err)
	}

	return &GoogleProvider{svc: svc, config: config}, nil
}

// Synthesize requests speech audio for the text. Voice name, speaking rate
// and encoding are passed through unchanged; the service rejects invalid
// combinations itself.
func (p *GoogleProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req := &texttospeech.SynthesizeSpeechRequest{
		Input: &texttospeech.SynthesisInput{
			Text: text,
		},
		Voice: &texttospeech.VoiceSelectionParams{
			LanguageCode: LanguageCodeFromVoice(p.config.Voice),
			Name:         p.config.Voice,
		},
		AudioConfig: &texttospeech.AudioConfig{
			AudioEncoding: p.config.Encoding,
			SpeakingRate:  p.config.SpeakingRate,
		},
	}

	resp, err := p.svc.Text.Synthesize(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("Text-to-Speech API error: %w", err)
	}

	audio, err := base64.StdEncoding.DecodeString(resp.AudioContent)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio content: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("no audio data received from Text-to-Speech")
	}
	return audio, nil
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

// IsAvailable checks if the provider is configured
func (p *GoogleProvider) IsAvailable() error {
	if p.config.Voice == "" {
		return fmt.Errorf("voice name not configured")
	}
	return nil
}
