package extractor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/snonux/sentencebank/internal/anki"
)

// mockNoteSource implements NoteSource for testing
type mockNoteSource struct {
	ids       []int64
	notes     []anki.Note
	findErr   error
	notesErr  error
	findCalls int
}

func (m *mockNoteSource) FindNotes(ctx context.Context, deck string) ([]int64, error) {
	m.findCalls++
	return m.ids, m.findErr
}

func (m *mockNoteSource) NotesInfo(ctx context.Context, ids []int64) ([]anki.Note, error) {
	return m.notes, m.notesErr
}

func noteWithField(id int64, field, value string) anki.Note {
	return anki.Note{
		NoteID: id,
		Fields: map[string]anki.Field{
			field: {Value: value},
		},
	}
}

func TestExtractAssignsSequentialIDs(t *testing.T) {
	source := &mockNoteSource{
		ids: []int64{1, 2, 3, 4},
		notes: []anki.Note{
			noteWithField(1, "Sentence", "First sentence"),
			noteWithField(2, "Sentence", "Second sentence"),
			noteWithField(3, "Sentence", ""), // empty field, skipped
			noteWithField(4, "Sentence", "Third sentence"),
		},
	}

	sentences, err := NewExtractor(source).Extract(context.Background(), "Deck", "Sentence", 1)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(sentences) != 3 {
		t.Fatalf("Expected 3 sentences, got %d", len(sentences))
	}

	expected := []Sentence{
		{ID: 1, Text: "First sentence"},
		{ID: 2, Text: "Second sentence"},
		{ID: 3, Text: "Third sentence"},
	}
	for i, want := range expected {
		if sentences[i] != want {
			t.Errorf("Sentence %d = %+v, want %+v", i, sentences[i], want)
		}
	}
}

func TestExtractStartID(t *testing.T) {
	source := &mockNoteSource{
		ids: []int64{1, 2},
		notes: []anki.Note{
			noteWithField(1, "Front", "one"),
			noteWithField(2, "Front", "two"),
		},
	}

	sentences, err := NewExtractor(source).Extract(context.Background(), "Deck", "Front", 100)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if sentences[0].ID != 100 || sentences[1].ID != 101 {
		t.Errorf("Expected IDs 100, 101, got %d, %d", sentences[0].ID, sentences[1].ID)
	}
}

func TestExtractMissingField(t *testing.T) {
	source := &mockNoteSource{
		ids: []int64{1, 2},
		notes: []anki.Note{
			noteWithField(1, "Other", "value in different field"),
			noteWithField(2, "Sentence", "kept"),
		},
	}

	sentences, err := NewExtractor(source).Extract(context.Background(), "Deck", "Sentence", 1)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(sentences) != 1 || sentences[0].Text != "kept" {
		t.Errorf("Expected only the note with the field, got %+v", sentences)
	}
}

func TestExtractEmptyDeck(t *testing.T) {
	source := &mockNoteSource{}

	sentences, err := NewExtractor(source).Extract(context.Background(), "Empty", "Sentence", 1)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(sentences) != 0 {
		t.Errorf("Expected no sentences, got %d", len(sentences))
	}
}

func TestExtractFindError(t *testing.T) {
	source := &mockNoteSource{findErr: errors.New("connection refused")}

	_, err := NewExtractor(source).Extract(context.Background(), "Deck", "Sentence", 1)
	if err == nil {
		t.Fatal("Expected error when findNotes fails")
	}
}

func TestWriteSentences(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentences.txt")

	sentences := []Sentence{
		{ID: 1, Text: "Hello world"},
		{ID: 2, Text: "Goodbye"},
	}
	if err := WriteSentences(path, sentences); err != nil {
		t.Fatalf("WriteSentences failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}

	expected := "1\tHello world\n2\tGoodbye\n"
	if string(content) != expected {
		t.Errorf("Output = %q, want %q", content, expected)
	}
}

func TestWriteSentencesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentences.txt")

	if err := WriteSentences(path, nil); err != nil {
		t.Fatalf("WriteSentences failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Expected an empty file to be created: %v", err)
	}
	if len(content) != 0 {
		t.Errorf("Expected empty file, got %q", content)
	}
}

func TestWriteSentencesOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentences.txt")

	if err := os.WriteFile(path, []byte("stale content\n"), 0644); err != nil {
		t.Fatalf("Failed to seed file: %v", err)
	}
	if err := WriteSentences(path, []Sentence{{ID: 5, Text: "fresh"}}); err != nil {
		t.Fatalf("WriteSentences failed: %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "5\tfresh\n" {
		t.Errorf("Expected file to be overwritten, got %q", content)
	}
}
