package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/sentencebank/internal/anki"
	"codeberg.org/snonux/sentencebank/internal/audiogen"
	"codeberg.org/snonux/sentencebank/internal/cli"
	"codeberg.org/snonux/sentencebank/internal/drive"
	"codeberg.org/snonux/sentencebank/internal/extractor"
	"codeberg.org/snonux/sentencebank/internal/gauth"
	"codeberg.org/snonux/sentencebank/internal/sheet"
	"codeberg.org/snonux/sentencebank/internal/translate"
	"codeberg.org/snonux/sentencebank/internal/tts"
)

func main() {
	rootCmd := cli.CreateRootCommand()

	cobra.OnInitialize(func() {
		cli.InitConfig(cli.CfgFile())
	})

	rootCmd.AddCommand(newExtractCommand())
	rootCmd.AddCommand(newTranslateCommand())
	rootCmd.AddCommand(newAudioCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newExtractCommand() *cobra.Command {
	flags := cli.NewExtractFlags()

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract sentences from an Anki deck into a text file",
		Long: `extract queries a running Anki instance over AnkiConnect, reads the
named field from every note in the deck and writes one "id<TAB>sentence"
line per note to the output file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, flags)
		},
	}
	cli.SetupExtractFlags(cmd, flags)
	return cmd
}

func runExtract(cmd *cobra.Command, flags *cli.ExtractFlags) error {
	ctx := cmd.Context()
	client := anki.NewClient(cli.GetAnkiConnectURL(flags.AnkiURL))

	if flags.ListDecks {
		decks, err := client.DeckNames(ctx)
		if err != nil {
			return err
		}
		for _, deck := range decks {
			fmt.Println(deck)
		}
		return nil
	}

	if flags.Deck == "" || flags.Field == "" {
		return fmt.Errorf("--deck and --field are required")
	}

	sentences, err := extractor.NewExtractor(client).Extract(ctx, flags.Deck, flags.Field, flags.StartID)
	if err != nil {
		return err
	}

	fmt.Printf("Writing %d sentences to %s...\n", len(sentences), flags.Output)
	if err := extractor.WriteSentences(flags.Output, sentences); err != nil {
		return err
	}
	fmt.Println("Done")
	return nil
}

func newTranslateCommand() *cobra.Command {
	flags := cli.NewTranslateFlags()

	cmd := &cobra.Command{
		Use:   "translate",
		Short: "Build a translated copy of a sentence sheet",
		Long: `translate reads a column of sentences from a Google Sheet, creates a
new spreadsheet with per-row GOOGLETRANSLATE formulas, waits for the
formulas to resolve and freezes the results as literal text.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, flags)
		},
	}
	cli.SetupTranslateFlags(cmd, flags)
	return cmd
}

func runTranslate(cmd *cobra.Command, flags *cli.TranslateFlags) error {
	ctx := cmd.Context()
	sheets, drv, err := googleClients(ctx)
	if err != nil {
		return err
	}

	builder := translate.NewBuilder(sheets, drv)
	return builder.Run(ctx, translate.Options{
		SourceSheetID: flags.SourceSheetID,
		SourceTab:     flags.SourceTab,
		SourceColumn:  flags.SourceColumn,
		DestSheetName: flags.DestSheetName,
		DestFolderID:  flags.DestFolderID,
		SourceLang:    flags.SourceLang,
		TargetLang:    flags.TargetLang,
		PollInterval:  flags.PollInterval,
		MaxWait:       flags.MaxWait,
	})
}

func newAudioCommand() *cobra.Command {
	flags := cli.NewAudioFlags()

	cmd := &cobra.Command{
		Use:   "audio",
		Short: "Generate audio links for a translated sheet",
		Long: `audio synthesizes speech for every sheet row that has text but no
audio link yet, uploads the files to a Drive folder and writes a hyperlink
into the row. Already-linked rows are skipped, so the command is safe to
re-run after a partial failure.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAudio(cmd, flags)
		},
	}
	cli.SetupAudioFlags(cmd, flags)
	return cmd
}

func runAudio(cmd *cobra.Command, flags *cli.AudioFlags) error {
	if flags.SpeakingRate <= 0 {
		return fmt.Errorf("--speaking-rate must be greater than 0")
	}

	ctx := cmd.Context()
	sheets, drv, err := googleClients(ctx)
	if err != nil {
		return err
	}

	provider, err := tts.NewProvider(ctx, &tts.Config{
		Provider:        flags.Provider,
		Voice:           flags.Voice,
		SpeakingRate:    flags.SpeakingRate,
		Encoding:        flags.Encoding,
		CredentialsFile: cli.GetServiceAccountFile(),
		OpenAIKey:       cli.GetOpenAIKey(),
		OpenAIModel:     flags.OpenAIModel,
	})
	if err != nil {
		return err
	}
	if err := provider.IsAvailable(); err != nil {
		return err
	}

	gen := audiogen.NewGenerator(sheets, drv, tts.NewBreakerProvider(provider))
	_, err = gen.Run(ctx, audiogen.Options{
		SheetID:      flags.SheetID,
		Tab:          flags.Tab,
		TextColumn:   flags.TextColumn,
		IDColumn:     flags.IDColumn,
		LinkColumn:   flags.LinkColumn,
		StartRow:     flags.StartRow,
		DestFolderID: flags.DestFolderID,
		Encoding:     flags.Encoding,
		MaxRows:      flags.MaxRows,
	})
	// Per-row failures are reported in the run summary; only an inability
	// to reach the services is a command error.
	return err
}

func googleClients(ctx context.Context) (*sheet.Client, *drive.Client, error) {
	credFile := cli.GetServiceAccountFile()
	ts, err := gauth.TokenSource(ctx, credFile)
	if err != nil {
		return nil, nil, err
	}

	sheets, err := sheet.NewClient(ctx, ts)
	if err != nil {
		return nil, nil, err
	}
	drv, err := drive.NewClient(ctx, ts)
	if err != nil {
		return nil, nil, err
	}
	return sheets, drv, nil
}
