// Package sheets syncs recruitment data with a Google Sheets spreadsheet
// using a service account.
package sheets

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"talent-track/internal/config"
)

// Client wraps the Sheets API with a per-call rate limiter so bulk syncs
// stay under the API quota.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	limiter       *rate.Limiter
	log           *zap.Logger
}

func NewClient(ctx context.Context, cfg config.SheetsConfig, log *zap.Logger) (*Client, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("sheets sync not configured")
	}
	if log == nil {
		log = zap.NewNop()
	}

	opts := []option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	} else {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 1
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.SpreadsheetID,
		limiter:       rate.NewLimiter(rate.Limit(rps), 1),
		log:           log,
	}, nil
}

// ReadTab fetches a whole tab as strings. A missing tab returns nil rows
// and no error, matching how the legacy loader tolerated absent sheets.
func (c *Client) ReadTab(ctx context.Context, tab string) ([][]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, tab).Context(ctx).Do()
	if err != nil {
		if isMissingTab(err) {
			c.log.Debug("tab not found", zap.String("tab", tab))
			return nil, nil
		}
		return nil, fmt.Errorf("read tab %s: %w", tab, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, cell := range raw {
			row = append(row, fmt.Sprint(cell))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteTab replaces a tab's contents.
func (c *Client) WriteTab(ctx context.Context, tab string, rows [][]string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, tab, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear tab %s: %w", tab, err)
	}

	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		cells := make([]interface{}, len(row))
		for i, v := range row {
			cells[i] = v
		}
		values = append(values, cells)
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := c.svc.Spreadsheets.Values.
		Update(c.spreadsheetID, tab+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write tab %s: %w", tab, err)
	}
	return nil
}

func (c *Client) SpreadsheetID() string {
	if c == nil {
		return ""
	}
	return c.spreadsheetID
}

func isMissingTab(err error) bool {
	// The API reports unknown ranges as a 400 mentioning the range.
	return err != nil && strings.Contains(err.Error(), "Unable to parse range")
}
