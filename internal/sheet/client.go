// Package sheet wraps the Google Sheets v4 API with the small set of
// column-oriented operations the sentencebank pipelines use.
package sheet

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client is a thin wrapper around the Sheets service.
type Client struct {
	svc *sheets.Service
}

// NewClient creates a Sheets client using the given token source.
func NewClient(ctx context.Context, ts oauth2.TokenSource) (*Client, error) {
	svc, err := sheets.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ColumnRange formats an open-ended A1 range covering a single column from
// startRow down.
func ColumnRange(tab, column string, startRow int) string {
	return fmt.Sprintf("%s!%s%d:%s", tab, column, startRow, column)
}

// boundedColumnRange is like ColumnRange but with a fixed last row.
func boundedColumnRange(tab, column string, startRow, rows int) string {
	return fmt.Sprintf("%s!%s%d:%s%d", tab, column, startRow, column, startRow+rows-1)
}

// ReadColumn reads a single column starting at startRow. Cells missing from
// the reply are returned as empty strings; trailing blank cells are trimmed.
func (c *Client) ReadColumn(ctx context.Context, spreadsheetID, tab, column string, startRow int) ([]string, error) {
	values, err := c.readRange(ctx, spreadsheetID, ColumnRange(tab, column, startRow))
	if err != nil {
		return nil, err
	}
	for len(values) > 0 && strings.TrimSpace(values[len(values)-1]) == "" {
		values = values[:len(values)-1]
	}
	return values, nil
}

// ReadColumnPadded reads exactly rows cells of a column starting at startRow,
// padding the tail with empty strings so the result always has rows entries.
func (c *Client) ReadColumnPadded(ctx context.Context, spreadsheetID, tab, column string, startRow, rows int) ([]string, error) {
	values, err := c.readRange(ctx, spreadsheetID, boundedColumnRange(tab, column, startRow, rows))
	if err != nil {
		return nil, err
	}
	for len(values) < rows {
		values = append(values, "")
	}
	return values[:rows], nil
}

func (c *Client) readRange(ctx context.Context, spreadsheetID, rng string) ([]string, error) {
	result, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", rng, err)
	}

	values := make([]string, 0, len(result.Values))
	for _, row := range result.Values {
		if len(row) == 0 {
			values = append(values, "")
			continue
		}
		values = append(values, fmt.Sprintf("%v", row[0]))
	}
	return values, nil
}

// UpdateColumn writes values into a single column starting at startRow. When
// raw is false the values go through the formula parser (USER_ENTERED), so
// strings beginning with '=' become live formulas.
func (c *Client) UpdateColumn(ctx context.Context, spreadsheetID, tab, column string, startRow int, values []string, raw bool) error {
	rows := make([][]any, len(values))
	for i, v := range values {
		rows[i] = []any{v}
	}
	return c.UpdateRange(ctx, spreadsheetID, ColumnRange(tab, column, startRow), rows, raw)
}

// UpdateCell writes a single cell.
func (c *Client) UpdateCell(ctx context.Context, spreadsheetID, tab, column string, row int, value string, raw bool) error {
	return c.UpdateColumn(ctx, spreadsheetID, tab, column, row, []string{value}, raw)
}

// UpdateRange writes a rectangular block of values into the given A1 range.
func (c *Client) UpdateRange(ctx context.Context, spreadsheetID, rng string, rows [][]any, raw bool) error {
	input := "USER_ENTERED"
	if raw {
		input = "RAW"
	}

	body := &sheets.ValueRange{Values: rows}
	_, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, rng, body).
		ValueInputOption(input).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to update range %s: %w", rng, err)
	}
	return nil
}

// Title returns the document title of the spreadsheet.
func (c *Client) Title(ctx context.Context, spreadsheetID string) (string, error) {
	ss, err := c.svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to get spreadsheet %s: %w", spreadsheetID, err)
	}
	if ss.Properties == nil {
		return "", nil
	}
	return ss.Properties.Title, nil
}

// FirstSheetID returns the numeric ID of the first tab in the spreadsheet.
func (c *Client) FirstSheetID(ctx context.Context, spreadsheetID string) (int64, error) {
	ss, err := c.svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to get spreadsheet %s: %w", spreadsheetID, err)
	}
	if len(ss.Sheets) == 0 || ss.Sheets[0].Properties == nil {
		return 0, fmt.Errorf("spreadsheet %s has no sheets", spreadsheetID)
	}
	return ss.Sheets[0].Properties.SheetId, nil
}

// FreezeTopRow pins the header row of the given tab.
func (c *Client) FreezeTopRow(ctx context.Context, spreadsheetID string, sheetID int64) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId: sheetID,
						GridProperties: &sheets.GridProperties{
							FrozenRowCount: 1,
						},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
		},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to freeze header row: %w", err)
	}
	return nil
}
