// Package google stores the snapshot blob in a Google Sheets cell. It is an
// optional backend for deployments that want the state inspectable in a
// spreadsheet; auth uses service-account credentials from the environment.
package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"trackfin/internal/blob"
	"trackfin/internal/core"
	applog "trackfin/internal/log"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	key           string
	logger        *applog.Logger
}

// Ensure interface conformance
var _ blob.SnapshotStore = (*Client)(nil)

// NewFromEnv creates a Sheets-backed snapshot store.
// Required: GOOGLE_SPREADSHEET_ID.
// Optional: GOOGLE_SHEET_NAME (default "State") and service-account
// credentials via GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context, key string, logger *applog.Logger) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "State"
	}
	if key == "" {
		key = blob.DefaultKey
	}
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		key:           key,
		logger:        logger.WithComponent(applog.ComponentSheets),
	}, nil
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// cellRange is the key/body pair in the first row of the state sheet.
func (c *Client) cellRange() string {
	return fmt.Sprintf("%s!A1:B1", c.sheetName)
}

// Load implements blob.SnapshotStore.
func (c *Client) Load(ctx context.Context) (core.Snapshot, bool, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.cellRange()).
		Context(ctx).Do()
	if err != nil {
		return core.Snapshot{}, false, fmt.Errorf("read state cell: %w", err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) < 2 {
		return core.Snapshot{}, false, nil
	}
	storedKey, _ := resp.Values[0][0].(string)
	body, _ := resp.Values[0][1].(string)
	if storedKey != c.key || body == "" {
		return core.Snapshot{}, false, nil
	}

	snap, err := blob.Decode([]byte(body))
	if err != nil {
		c.logger.WarnContext(ctx, "Discarding malformed snapshot blob",
			applog.FieldSnapshotKey, c.key,
			applog.FieldError, err)
		return core.Snapshot{}, false, nil
	}
	return snap, true, nil
}

// Save implements blob.SnapshotStore.
func (c *Client) Save(ctx context.Context, snap core.Snapshot) error {
	body, err := blob.Encode(snap)
	if err != nil {
		return err
	}
	values := &gsheet.ValueRange{
		Values: [][]interface{}{{c.key, string(body)}},
	}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, c.cellRange(), values).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write state cell: %w", err)
	}
	return nil
}
