package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/sentencebank/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sentencebank",
		Short: "Language-learning sentence bank tools",
		Long: `sentencebank glues together Anki, Google Sheets, Google Drive and a
text-to-speech service to build a language-learning sentence bank.

The three subcommands are run one after another by the operator:

  sentencebank extract    # pull sentences out of an Anki deck into a file
  sentencebank translate  # build a translated copy of a sentence sheet
  sentencebank audio      # add spoken audio links to a translated sheet`,
		Version:       internal.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sentencebank.yaml)")

	return rootCmd
}

var cfgFile string

// CfgFile returns the --config value, for cobra.OnInitialize hooks.
func CfgFile() string { return cfgFile }

// SetupExtractFlags registers the extract subcommand's flags
func SetupExtractFlags(cmd *cobra.Command, flags *ExtractFlags) {
	cmd.Flags().StringVar(&flags.Deck, "deck", "", "Name of the Anki deck")
	cmd.Flags().StringVar(&flags.Field, "field", "", "Name of the field containing the sentence")
	cmd.Flags().StringVarP(&flags.Output, "output", "o", flags.Output, "Output file path")
	cmd.Flags().IntVar(&flags.StartID, "start-id", flags.StartID, "First sentence identifier")
	cmd.Flags().StringVar(&flags.AnkiURL, "anki-url", "", "AnkiConnect URL (default http://localhost:8765)")
	cmd.Flags().BoolVar(&flags.ListDecks, "list-decks", false, "List available decks and exit")

	viper.BindPFlag("anki.url", cmd.Flags().Lookup("anki-url"))
}

// SetupTranslateFlags registers the translate subcommand's flags
func SetupTranslateFlags(cmd *cobra.Command, flags *TranslateFlags) {
	cmd.Flags().StringVar(&flags.SourceSheetID, "source-sheet-id", "", "Google Sheet ID of the sentence source")
	cmd.Flags().StringVar(&flags.SourceTab, "source-tab", flags.SourceTab, "Tab name inside the source spreadsheet")
	cmd.Flags().StringVar(&flags.SourceColumn, "source-column", flags.SourceColumn, "Column letter holding the sentences")
	cmd.Flags().StringVar(&flags.DestSheetName, "dest-sheet-name", "", "Name of the spreadsheet to create")
	cmd.Flags().StringVar(&flags.DestFolderID, "dest-folder-id", "", "Drive folder ID for the new spreadsheet")
	cmd.Flags().StringVar(&flags.SourceLang, "source-lang", flags.SourceLang, "Source language code")
	cmd.Flags().StringVar(&flags.TargetLang, "target-lang", "", "Target language code (e.g. zh-CN)")
	cmd.Flags().DurationVar(&flags.PollInterval, "poll-interval", flags.PollInterval, "Delay between formula polls")
	cmd.Flags().DurationVar(&flags.MaxWait, "max-wait", flags.MaxWait, "Maximum total time to wait for formulas")

	cobra.CheckErr(cmd.MarkFlagRequired("source-sheet-id"))
	cobra.CheckErr(cmd.MarkFlagRequired("dest-sheet-name"))
	cobra.CheckErr(cmd.MarkFlagRequired("target-lang"))
}

// SetupAudioFlags registers the audio subcommand's flags
func SetupAudioFlags(cmd *cobra.Command, flags *AudioFlags) {
	cmd.Flags().StringVar(&flags.SheetID, "sheet-id", "", "Google Sheet ID")
	cmd.Flags().StringVar(&flags.Tab, "tab", "", "Tab name inside the spreadsheet")
	cmd.Flags().StringVar(&flags.TextColumn, "text-column", flags.TextColumn, "Column letter with text to speak")
	cmd.Flags().StringVar(&flags.IDColumn, "id-column", flags.IDColumn, "Column letter with sentence IDs")
	cmd.Flags().StringVar(&flags.LinkColumn, "link-column", flags.LinkColumn, "Column letter for audio hyperlinks")
	cmd.Flags().IntVar(&flags.StartRow, "start-row", flags.StartRow, "First data row")
	cmd.Flags().StringVar(&flags.DestFolderID, "dest-folder-id", "", "Drive folder ID for the audio subfolder")
	cmd.Flags().StringVar(&flags.Provider, "tts-provider", flags.Provider, "Speech provider: google or openai")
	cmd.Flags().StringVar(&flags.Voice, "voice", "", "Voice name (e.g. cmn-CN-Wavenet-A)")
	cmd.Flags().Float64Var(&flags.SpeakingRate, "speaking-rate", flags.SpeakingRate, "Speaking rate multiplier")
	cmd.Flags().StringVar(&flags.Encoding, "encoding", flags.Encoding, "Audio encoding: MP3, OGG_OPUS or LINEAR16")
	cmd.Flags().IntVar(&flags.MaxRows, "max-rows", 0, "Maximum number of rows to process (0 = no limit)")

	// OpenAI flags
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI TTS model: tts-1, tts-1-hd, gpt-4o-mini-tts")

	cobra.CheckErr(cmd.MarkFlagRequired("sheet-id"))
	cobra.CheckErr(cmd.MarkFlagRequired("tab"))
	cobra.CheckErr(cmd.MarkFlagRequired("dest-folder-id"))
	cobra.CheckErr(cmd.MarkFlagRequired("voice"))

	viper.BindPFlag("audio.provider", cmd.Flags().Lookup("tts-provider"))
	viper.BindPFlag("audio.encoding", cmd.Flags().Lookup("encoding"))
	viper.BindPFlag("audio.openai_model", cmd.Flags().Lookup("openai-model"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".sentencebank" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sentencebank")
	}

	// Environment variables
	viper.SetEnvPrefix("SENTENCEBANK")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetServiceAccountFile retrieves the Google service-account key file path
// from environment or config
func GetServiceAccountFile() string {
	if path := os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"); path != "" {
		return path
	}
	return viper.GetString("google.service_account_file")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("audio.openai_key")
}

// GetAnkiConnectURL retrieves the AnkiConnect URL from flags, environment
// or config. An empty result means the client default.
func GetAnkiConnectURL(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if url := os.Getenv("ANKI_CONNECT_URL"); url != "" {
		return url
	}
	return viper.GetString("anki.url")
}
