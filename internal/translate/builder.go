// Package translate builds a new spreadsheet of machine-translated
// sentences. The translation itself is done by the spreadsheet service's
// GOOGLETRANSLATE formula; this package writes the formulas, waits for them
// to resolve and then freezes the results as literal text.
package translate

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MaxRows bounds the number of sentences per run. Synchronous formula
// evaluation in the spreadsheet service becomes unreliable well before
// this; larger sources must be split across tabs by the operator.
const MaxRows = 2000

// dataStartRow is the first spreadsheet row holding sentence data; row 1 is
// the header.
const dataStartRow = 2

// Column layout of the generated sheet.
const (
	idColumn          = "A"
	sentenceColumn    = "B"
	translationColumn = "C"
)

// SheetService is the part of the Sheets client the builder uses.
type SheetService interface {
	ReadColumn(ctx context.Context, spreadsheetID, tab, column string, startRow int) ([]string, error)
	UpdateColumn(ctx context.Context, spreadsheetID, tab, column string, startRow int, values []string, raw bool) error
	UpdateRange(ctx context.Context, spreadsheetID, rng string, rows [][]any, raw bool) error
	FirstSheetID(ctx context.Context, spreadsheetID string) (int64, error)
	FreezeTopRow(ctx context.Context, spreadsheetID string, sheetID int64) error
}

// SheetCreator is the part of the Drive client the builder uses.
type SheetCreator interface {
	CreateSpreadsheet(ctx context.Context, name, folderID string) (string, error)
}

// Options configures a single builder run.
type Options struct {
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

// PollResult reports the outcome of waiting for the translation formulas.
type PollResult struct {
	Resolved   bool
	Unresolved []int    // spreadsheet row numbers that never resolved
	Values     []string // resolved literal values, valid when Resolved
}

// Builder runs the translation sheet pipeline.
type Builder struct {
	sheets SheetService
	drive  SheetCreator
}

// NewBuilder creates a builder backed by the given services.
func NewBuilder(sheets SheetService, drive SheetCreator) *Builder {
	return &Builder{sheets: sheets, drive: drive}
}

// Run executes the pipeline: read source sentences, create the destination
// spreadsheet, write sentences and translation formulas, wait for the
// formulas to resolve, then overwrite them with their literal values. On
// poll timeout the formulas are left in place and the unresolved rows are
// reported; this is not a fatal error.
func (b *Builder) Run(ctx context.Context, opts Options) error {
	sentences, err := b.sheets.ReadColumn(ctx, opts.SourceSheetID, opts.SourceTab, opts.SourceColumn, 1)
	if err != nil {
		return fmt.Errorf("failed to read source sentences: %w", err)
	}
	sentences = dropEmpty(sentences)

	if len(sentences) == 0 {
		fmt.Println("No sentences found in source tab, nothing to do")
		return nil
	}
	if len(sentences) > MaxRows {
		return fmt.Errorf("source tab has %d sentences, maximum per run is %d (split the source tab)", len(sentences), MaxRows)
	}

	fmt.Printf("Fetched %d sentences, creating destination sheet '%s'...\n", len(sentences), opts.DestSheetName)
	destID, err := b.drive.CreateSpreadsheet(ctx, opts.DestSheetName, opts.DestFolderID)
	if err != nil {
		return fmt.Errorf("failed to create destination sheet: %w", err)
	}

	if err := b.writeRows(ctx, destID, sentences, opts); err != nil {
		return err
	}

	result, err := b.waitForTranslations(ctx, destID, len(sentences), opts)
	if err != nil {
		return err
	}

	if !result.Resolved {
		fmt.Printf("Timed out waiting for translations; %d rows unresolved: %v\n", len(result.Unresolved), result.Unresolved)
		fmt.Println("Formulas left in place for manual inspection")
		return nil
	}

	// Freeze: replace every formula with its literal computed text so the
	// column no longer re-evaluates.
	if err := b.sheets.UpdateColumn(ctx, destID, "Sheet1", translationColumn, dataStartRow, result.Values, true); err != nil {
		return fmt.Errorf("failed to freeze translations: %w", err)
	}

	if sheetID, err := b.sheets.FirstSheetID(ctx, destID); err == nil {
		if err := b.sheets.FreezeTopRow(ctx, destID, sheetID); err != nil {
			fmt.Printf("Warning: failed to freeze header row: %v\n", err)
		}
	}

	fmt.Printf("Translation sheet created: https://docs.google.com/spreadsheets/d/%s\n", destID)
	return nil
}

// writeRows writes the header and the data rows with sequential IDs and a
// GOOGLETRANSLATE formula per row.
func (b *Builder) writeRows(ctx context.Context, destID string, sentences []string, opts Options) error {
	header := [][]any{{"sentence_id", "sentence", "translation"}}
	if err := b.sheets.UpdateRange(ctx, destID, "Sheet1!A1:C1", header, true); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	rows := make([][]any, len(sentences))
	for i, sentence := range sentences {
		row := dataStartRow + i
		formula := fmt.Sprintf("=GOOGLETRANSLATE(%s%d, %q, %q)", sentenceColumn, row, opts.SourceLang, opts.TargetLang)
		rows[i] = []any{i + 1, sentence, formula}
	}

	rng := fmt.Sprintf("Sheet1!A%d:C%d", dataStartRow, dataStartRow+len(sentences)-1)
	if err := b.sheets.UpdateRange(ctx, destID, rng, rows, false); err != nil {
		return fmt.Errorf("failed to write sentence rows: %w", err)
	}
	return nil
}

// waitForTranslations polls the formula column until every cell holds a
// resolved value, bounded by MaxWait.
func (b *Builder) waitForTranslations(ctx context.Context, destID string, numRows int, opts Options) (PollResult, error) {
	attempts := 1
	if opts.PollInterval > 0 {
		attempts = int(opts.MaxWait/opts.PollInterval) + 1
	}

	fmt.Println("Waiting for translation formulas to resolve...")
	var result PollResult
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return PollResult{}, ctx.Err()
			case <-time.After(opts.PollInterval):
			}
		}

		values, err := b.sheets.ReadColumn(ctx, destID, "Sheet1", translationColumn, dataStartRow)
		if err != nil {
			return PollResult{}, fmt.Errorf("failed to poll translations: %w", err)
		}
		for len(values) < numRows {
			values = append(values, "")
		}
		values = values[:numRows]

		result = classify(values)
		if result.Resolved {
			fmt.Println("All translations resolved")
			return result, nil
		}
		fmt.Printf("...%d rows pending, sleeping %s\n", len(result.Unresolved), opts.PollInterval)
	}

	return result, nil
}

// classify splits formula cells into resolved and unresolved. A cell that
// still shows a formula, a loading placeholder or a formula-engine error
// marker counts as unresolved.
func classify(values []string) PollResult {
	result := PollResult{Resolved: true, Values: values}
	for i, v := range values {
		if !isResolved(v) {
			result.Resolved = false
			result.Unresolved = append(result.Unresolved, dataStartRow+i)
		}
	}
	return result
}

func isResolved(value string) bool {
	v := strings.TrimSpace(value)
	if v == "" || v == "Loading..." {
		return false
	}
	// "#N/A", "#ERROR!" and friends are formula-engine errors, never frozen
	// as literal text.
	if strings.HasPrefix(v, "#") || strings.HasPrefix(v, "=") {
		return false
	}
	return true
}

func dropEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
