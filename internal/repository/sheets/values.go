package sheets

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/recipecalc/internal/config"
)

// ValueStore is the cell-level access PriceSheet needs.
type ValueStore interface {
	AppendRow(ctx context.Context, sheetRange string, values []interface{}) error
	ReadRows(ctx context.Context, sheetRange string) ([][]interface{}, error)
}

// SpreadsheetValues reads and appends cell values of one spreadsheet
// through the Sheets v4 API.
type SpreadsheetValues struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewSpreadsheetValues authenticates with the service account credentials
// file and binds the configured spreadsheet.
func NewSpreadsheetValues(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*SpreadsheetValues, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Enabled() {
		return nil, errors.New("sheets credentials path and spreadsheet id are required")
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &SpreadsheetValues{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendRow adds one row after the last filled row of sheetRange.
func (v *SpreadsheetValues) AppendRow(ctx context.Context, sheetRange string, values []interface{}) error {
	if sheetRange == "" {
		return errors.New("sheet range must not be empty")
	}

	payload := &sheetsapi.ValueRange{MajorDimension: "ROWS", Values: [][]interface{}{values}}

	call := v.service.Spreadsheets.Values.Append(v.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return fmt.Errorf("append row into %s: %w", sheetRange, err)
	}

	if resp.Updates != nil {
		v.logger.Debug("evaluation row appended", zap.String("range", resp.Updates.UpdatedRange))
	}
	return nil
}

// ReadRows returns the rows of sheetRange with numbers left unformatted, so
// price cells arrive as plain values rather than currency strings.
func (v *SpreadsheetValues) ReadRows(ctx context.Context, sheetRange string) ([][]interface{}, error) {
	if sheetRange == "" {
		return nil, errors.New("sheet range must not be empty")
	}

	resp, err := v.service.Spreadsheets.Values.Get(v.spreadsheetID, sheetRange).
		MajorDimension("ROWS").
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}

	v.logger.Debug("sheet range read", zap.String("range", sheetRange), zap.Int("rows", len(resp.Values)))
	return resp.Values, nil
}
