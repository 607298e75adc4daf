// Package anki provides a client for the AnkiConnect HTTP API exposed by
// the Anki desktop application on the local network.
package anki

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DefaultURL is the AnkiConnect endpoint on a stock installation.
const DefaultURL = "http://localhost:8765"

// protocolVersion is the AnkiConnect API version this client speaks.
const protocolVersion = 6

// Client talks to a running AnkiConnect instance.
type Client struct {
	url        string
	httpClient *http.Client
}

// NewClient creates a client for the given AnkiConnect URL. An empty URL
// selects DefaultURL.
func NewClient(url string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Field is a single named field of a note.
type Field struct {
	Value string `json:"value"`
	Order int    `json:"order"`
}

// Note is the subset of notesInfo data the extractor needs.
type Note struct {
	NoteID int64            `json:"noteId"`
	Fields map[string]Field `json:"fields"`
}

type request struct {
	Action  string `json:"action"`
	Version int    `json:"version"`
	Params  any    `json:"params,omitempty"`
}

type response struct {
	Result json.RawMessage `json:"result"`
	Error  *string         `json:"error"`
}

// invoke performs a single AnkiConnect action and decodes the result into out.
func (c *Client) invoke(ctx context.Context, action string, params any, out any) error {
	body, err := json.Marshal(request{Action: action, Version: protocolVersion, Params: params})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", action, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("AnkiConnect unreachable at %s: %w", c.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("AnkiConnect returned HTTP %d for %s", resp.StatusCode, action)
	}

	var envelope response
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", action, err)
	}
	if envelope.Error != nil {
		return fmt.Errorf("AnkiConnect error: %s", *envelope.Error)
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Result, out); err != nil {
			return fmt.Errorf("failed to decode %s result: %w", action, err)
		}
	}
	return nil
}

// FindNotes returns the IDs of all notes in the named deck.
func (c *Client) FindNotes(ctx context.Context, deck string) ([]int64, error) {
	params := map[string]string{
		"query": fmt.Sprintf("deck:%q", deck),
	}
	var ids []int64
	if err := c.invoke(ctx, "findNotes", params, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// NotesInfo fetches full note data for the given note IDs. AnkiConnect
// preserves the order of the requested IDs in its reply.
func (c *Client) NotesInfo(ctx context.Context, ids []int64) ([]Note, error) {
	params := map[string][]int64{
		"notes": ids,
	}
	var notes []Note
	if err := c.invoke(ctx, "notesInfo", params, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// DeckNames lists all decks known to the running Anki instance.
func (c *Client) DeckNames(ctx context.Context) ([]string, error) {
	var decks []string
	if err := c.invoke(ctx, "deckNames", nil, &decks); err != nil {
		return nil, err
	}
	return decks, nil
}
