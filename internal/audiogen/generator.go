// Package audiogen synthesizes speech audio for the sentences in a
// spreadsheet, uploads the files to a Drive folder and writes a hyperlink
// back into each row. Rows that already carry a link are skipped, so a run
// interrupted halfway can simply be repeated.
package audiogen

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"codeberg.org/snonux/sentencebank/internal/tts"
)

// linkHeader is the required header of the audio link column.
const linkHeader = "audio_file"

// SheetService is the part of the Sheets client the generator uses.
type SheetService interface {
	ReadColumn(ctx context.Context, spreadsheetID, tab, column string, startRow int) ([]string, error)
	ReadColumnPadded(ctx context.Context, spreadsheetID, tab, column string, startRow, rows int) ([]string, error)
	UpdateCell(ctx context.Context, spreadsheetID, tab, column string, row int, value string, raw bool) error
	Title(ctx context.Context, spreadsheetID string) (string, error)
}

// Uploader is the part of the Drive client the generator uses.
type Uploader interface {
	EnsureFolder(ctx context.Context, parentID, name string) (string, error)
	UploadFile(ctx context.Context, folderID, name, mimeType string, data []byte) (string, error)
}

// Options configures a single generator run.
type Options struct {
	SheetID      string
	Tab          string
	TextColumn   string
	IDColumn     string
	LinkColumn   string
	StartRow     int
	DestFolderID string
	Encoding     string
	MaxRows      int // 0 means no limit
}

// Status classifies the outcome of a single row.
type Status string

const (
	StatusProcessed Status = "processed"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Outcome is the result of processing one spreadsheet row.
type Outcome struct {
	Row    int
	Status Status
	Err    error
}

// Generator runs the audio pipeline.
type Generator struct {
	sheets   SheetService
	uploader Uploader
	speech   tts.Provider
}

// NewGenerator creates a generator backed by the given services.
func NewGenerator(sheets SheetService, uploader Uploader, speech tts.Provider) *Generator {
	return &Generator{sheets: sheets, uploader: uploader, speech: speech}
}

// Run processes every row with non-empty text and no existing link. Remote
// failures are captured per row and never abort the run; the returned slice
// holds one Outcome per considered row.
func (g *Generator) Run(ctx context.Context, opts Options) ([]Outcome, error) {
	texts, err := g.sheets.ReadColumn(ctx, opts.SheetID, opts.Tab, opts.TextColumn, opts.StartRow)
	if err != nil {
		return nil, fmt.Errorf("failed to read text column: %w", err)
	}
	if len(texts) == 0 {
		fmt.Println("No sentences found, nothing to do")
		return nil, nil
	}

	links, err := g.sheets.ReadColumnPadded(ctx, opts.SheetID, opts.Tab, opts.LinkColumn, opts.StartRow, len(texts))
	if err != nil {
		return nil, fmt.Errorf("failed to read link column: %w", err)
	}
	ids, err := g.sheets.ReadColumnPadded(ctx, opts.SheetID, opts.Tab, opts.IDColumn, opts.StartRow, len(texts))
	if err != nil {
		return nil, fmt.Errorf("failed to read id column: %w", err)
	}

	outcomes := g.selectRows(texts, links, opts)
	pending := countPending(outcomes)
	if pending == 0 {
		fmt.Println("All rows already have audio links, nothing to do")
		return outcomes, nil
	}
	fmt.Printf("Found %d rows needing audio\n", pending)

	folderID, err := g.audioFolder(ctx, opts)
	if err != nil {
		return nil, err
	}

	for i := range outcomes {
		if outcomes[i].Status != StatusProcessed {
			continue
		}
		idx := outcomes[i].Row - opts.StartRow
		if err := g.processRow(ctx, opts, folderID, outcomes[i].Row, ids[idx], texts[idx]); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing row %d: %v\n", outcomes[i].Row, err)
			outcomes[i].Status = StatusFailed
			outcomes[i].Err = err
		} else {
			fmt.Printf("Row %d done\n", outcomes[i].Row)
		}
	}

	printSummary(outcomes)
	return outcomes, nil
}

// selectRows builds the initial outcome list: rows with an existing link are
// skipped, rows with text are marked for processing, and MaxRows caps how
// many are processed in this run.
func (g *Generator) selectRows(texts, links []string, opts Options) []Outcome {
	var outcomes []Outcome
	selected := 0
	for i, text := range texts {
		row := opts.StartRow + i
		if strings.TrimSpace(text) == "" {
			continue
		}
		if strings.TrimSpace(links[i]) != "" {
			outcomes = append(outcomes, Outcome{Row: row, Status: StatusSkipped})
			continue
		}
		if opts.MaxRows > 0 && selected >= opts.MaxRows {
			outcomes = append(outcomes, Outcome{Row: row, Status: StatusSkipped})
			continue
		}
		outcomes = append(outcomes, Outcome{Row: row, Status: StatusProcessed})
		selected++
	}
	return outcomes
}

// audioFolder ensures the per-spreadsheet audio subfolder exists and the
// link column carries its header.
func (g *Generator) audioFolder(ctx context.Context, opts Options) (string, error) {
	title, err := g.sheets.Title(ctx, opts.SheetID)
	if err != nil {
		return "", fmt.Errorf("failed to get spreadsheet title: %w", err)
	}
	if title == "" {
		title = "Untitled_Sheet"
	}

	if err := g.sheets.UpdateCell(ctx, opts.SheetID, opts.Tab, opts.LinkColumn, 1, linkHeader, false); err != nil {
		return "", fmt.Errorf("failed to write link column header: %w", err)
	}

	folderID, err := g.uploader.EnsureFolder(ctx, opts.DestFolderID, title+"_Audio")
	if err != nil {
		return "", fmt.Errorf("failed to prepare audio folder: %w", err)
	}
	fmt.Printf("Uploading audio files to folder %s\n", folderID)
	return folderID, nil
}

// processRow synthesizes, uploads and links the audio for one row.
func (g *Generator) processRow(ctx context.Context, opts Options, folderID string, row int, id, text string) error {
	filename, err := AudioFileName(id, opts.Encoding)
	if err != nil {
		return err
	}

	audio, err := g.speech.Synthesize(ctx, text)
	if err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}

	link, err := g.uploader.UploadFile(ctx, folderID, filename, tts.MIMEType(opts.Encoding), audio)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	hyperlink := fmt.Sprintf("=HYPERLINK(%q, %q)", link, filename)
	if err := g.sheets.UpdateCell(ctx, opts.SheetID, opts.Tab, opts.LinkColumn, row, hyperlink, false); err != nil {
		return fmt.Errorf("failed to write link: %w", err)
	}
	return nil
}

// AudioFileName derives the upload filename from a row's sentence ID.
func AudioFileName(id, encoding string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil {
		return "", fmt.Errorf("row has no numeric sentence ID (%q)", id)
	}
	return fmt.Sprintf("sentence_%06d%s", n, tts.FileExtension(encoding)), nil
}

func countPending(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Status == StatusProcessed {
			n++
		}
	}
	return n
}

func printSummary(outcomes []Outcome) {
	var processed, skipped, failed int
	for _, o := range outcomes {
		switch o.Status {
		case StatusProcessed:
			processed++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	fmt.Printf("\n=== Audio Generation Summary ===\n")
	fmt.Printf("Processed: %d\n", processed)
	fmt.Printf("Skipped: %d\n", skipped)
	if failed > 0 {
		fmt.Printf("Failed: %d\n", failed)
	}
}
