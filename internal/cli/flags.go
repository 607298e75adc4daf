package cli

import "time"

// ExtractFlags holds the flag values of the extract subcommand
type ExtractFlags struct {
	Deck      string
	Field     string
	Output    string
	StartID   int
	AnkiURL   string
	ListDecks bool
}

// NewExtractFlags creates an ExtractFlags instance with default values
func NewExtractFlags() *ExtractFlags {
	return &ExtractFlags{
		Output:  "sentences.txt",
		StartID: 1,
	}
}

// TranslateFlags holds the flag values of the translate subcommand
type TranslateFlags struct {
	SourceSheetID string
	SourceTab     string
	SourceColumn  string
	DestSheetName string
	DestFolderID  string
	SourceLang    string
	TargetLang    string
	PollInterval  time.Duration
	MaxWait       time.Duration
}

// NewTranslateFlags creates a TranslateFlags instance with default values
func NewTranslateFlags() *TranslateFlags {
	return &TranslateFlags{
		SourceTab:    "Sheet1",
		SourceColumn: "A",
		SourceLang:   "en",
		PollInterval: 15 * time.Second,
		MaxWait:      10 * time.Minute,
	}
}

// AudioFlags holds the flag values of the audio subcommand
type AudioFlags struct {
	SheetID      string
	Tab          string
	TextColumn   string
	IDColumn     string
	LinkColumn   string
	StartRow     int
	DestFolderID string
	Provider     string
	Voice        string
	SpeakingRate float64
	Encoding     string
	MaxRows      int

	// OpenAI flags
	OpenAIModel string
}

// NewAudioFlags creates an AudioFlags instance with default values
func NewAudioFlags() *AudioFlags {
	return &AudioFlags{
		TextColumn:   "C",
		IDColumn:     "A",
		LinkColumn:   "D",
		StartRow:     2,
		Provider:     "google",
		SpeakingRate: 1.0,
		Encoding:     "MP3",
		OpenAIModel:  "gpt-4o-mini-tts",
	}
}
