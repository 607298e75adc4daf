package cli

import (
	"reflect"
	"testing"
	"time"
)

func TestNewExtractFlags(t *testing.T) {
	flags := NewExtractFlags()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"Output", flags.Output, "sentences.txt"},
		{"StartID", flags.StartID, 1},
		{"Deck", flags.Deck, ""},
		{"Field", flags.Field, ""},
		{"AnkiURL", flags.AnkiURL, ""},
		{"ListDecks", flags.ListDecks, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestNewTranslateFlags(t *testing.T) {
	flags := NewTranslateFlags()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"SourceTab", flags.SourceTab, "Sheet1"},
		{"SourceColumn", flags.SourceColumn, "A"},
		{"SourceLang", flags.SourceLang, "en"},
		{"PollInterval", flags.PollInterval, 15 * time.Second},
		{"MaxWait", flags.MaxWait, 10 * time.Minute},
		{"TargetLang", flags.TargetLang, ""},
		{"DestFolderID", flags.DestFolderID, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestNewAudioFlags(t *testing.T) {
	flags := NewAudioFlags()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"TextColumn", flags.TextColumn, "C"},
		{"IDColumn", flags.IDColumn, "A"},
		{"LinkColumn", flags.LinkColumn, "D"},
		{"StartRow", flags.StartRow, 2},
		{"Provider", flags.Provider, "google"},
		{"SpeakingRate", flags.SpeakingRate, 1.0},
		{"Encoding", flags.Encoding, "MP3"},
		{"MaxRows", flags.MaxRows, 0},
		{"OpenAIModel", flags.OpenAIModel, "gpt-4o-mini-tts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !reflect.DeepEqual(tt.got, tt.expected) {
				t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}
