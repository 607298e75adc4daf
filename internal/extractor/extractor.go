// Package extractor pulls sentences out of an Anki deck and writes them to
// a local tab-delimited file for later import into a spreadsheet.
package extractor

import (
	"context"
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/sentencebank/internal/anki"
)

// Sentence is one extracted sentence with its assigned identifier.
type Sentence struct {
	ID   int
	Text string
}

// NoteSource is the part of the AnkiConnect client the extractor uses.
type NoteSource interface {
	FindNotes(ctx context.Context, deck string) ([]int64, error)
	NotesInfo(ctx context.Context, ids []int64) ([]anki.Note, error)
}

// Extractor reads a field from every note in a deck.
type Extractor struct {
	source NoteSource
}

// NewExtractor creates an extractor backed by the given note source.
func NewExtractor(source NoteSource) *Extractor {
	return &Extractor{source: source}
}

// Extract fetches all notes in the deck and returns one Sentence per note
// whose named field is non-empty, with identifiers assigned sequentially
// from startID in note order. Notes with a missing or empty field are
// skipped with a warning on stderr.
func (e *Extractor) Extract(ctx context.Context, deck, field string, startID int) ([]Sentence, error) {
	fmt.Printf("Searching for notes in deck '%s'...\n", deck)
	ids, err := e.source.FindNotes(ctx, deck)
	if err != nil {
		return nil, fmt.Errorf("failed to find notes: %w", err)
	}
	fmt.Printf("Found %d notes\n", len(ids))

	if len(ids) == 0 {
		return nil, nil
	}

	notes, err := e.source.NotesInfo(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch note data: %w", err)
	}

	var sentences []Sentence
	nextID := startID
	for _, note := range notes {
		f, ok := note.Fields[field]
		text := strings.TrimSpace(f.Value)
		if !ok || text == "" {
			fmt.Fprintf(os.Stderr, "Warning: note %d has no usable '%s' field, skipping\n", note.NoteID, field)
			continue
		}
		sentences = append(sentences, Sentence{ID: nextID, Text: text})
		nextID++
	}

	fmt.Printf("Extracted %d sentences from field '%s'\n", len(sentences), field)
	return sentences, nil
}

// WriteSentences writes one "id<TAB>text" line per sentence, creating or
// overwriting the file at path.
func WriteSentences(path string, sentences []Sentence) error {
	var sb strings.Builder
	for _, s := range sentences {
		fmt.Fprintf(&sb, "%d\t%s\n", s.ID, s.Text)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
