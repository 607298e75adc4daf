// Package gauth builds OAuth2 token sources from a locally stored Google
// service-account key file.
package gauth

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scopes required by the sentencebank tools: spreadsheet access, file
// creation/upload on Drive, and speech synthesis.
var Scopes = []string{
	"https://www.googleapis.com/auth/spreadsheets",
	"https://www.googleapis.com/auth/drive",
	"https://www.googleapis.com/auth/cloud-platform",
}

// TokenSource reads the service-account key file and returns a token source
// authorized for Scopes.
func TokenSource(ctx context.Context, credentialsFile string) (oauth2.TokenSource, error) {
	if credentialsFile == "" {
		return nil, fmt.Errorf("Google service account file not configured")
	}

	data, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read service account file: %w", err)
	}

	cfg, err := google.JWTConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("invalid service account file %s: %w", credentialsFile, err)
	}

	return cfg.TokenSource(ctx), nil
}
