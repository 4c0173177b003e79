// Package csvdata implements the data-analysis tools that read CSV files
// from the template's Spaces bucket: listing available files, loading
// previews, and describing columns.
package csvdata

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/digitalocean/gradient-agent-templates/internal/platform/spaces"
	"github.com/digitalocean/gradient-agent-templates/internal/tools"
)

// DefaultPreviewRows bounds how many data rows a preview returns.
const DefaultPreviewRows = 20

// typeSampleRows bounds how many rows column type inference looks at.
const typeSampleRows = 50

// Store reads objects from the bucket configured in the function runtime
// environment.
type Store struct {
	Bucket string
	Region string
	Client spaces.ObjectStore
}

// NewStoreFromEnv builds a Store from the function runtime environment.
func NewStoreFromEnv() (*Store, error) {
	accessKey := os.Getenv("SPACES_ACCESS_KEY")
	secretKey := os.Getenv("SPACES_SECRET_KEY")
	bucket := os.Getenv("SPACES_BUCKET")
	region := os.Getenv("SPACES_REGION")
	if accessKey == "" || secretKey == "" || bucket == "" || region == "" {
		return nil, fmt.Errorf("missing Spaces configuration")
	}

	endpoint := fmt.Sprintf("https://%s.digitaloceanspaces.com", region)
	client, err := spaces.New(endpoint, region, accessKey, secretKey)
	if err != nil {
		return nil, err
	}
	return &Store{Bucket: bucket, Region: region, Client: client}, nil
}

// ListFilesHandler lists the CSV files available in the bucket.
func ListFilesHandler(ctx context.Context, args tools.Args) (tools.Body, error) {
	store, err := NewStoreFromEnv()
	if err != nil {
		return nil, err
	}

	keys, err := store.Client.ListObjects(ctx, store.Bucket, "")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, key := range keys {
		if strings.HasSuffix(strings.ToLower(key), ".csv") {
			files = append(files, key)
		}
	}
	return tools.Body{"success": true, "files": files, "count": len(files)}, nil
}

// LoadCSVHandler returns a bounded preview of one CSV file.
func LoadCSVHandler(ctx context.Context, args tools.Args) (tools.Body, error) {
	filename := args.String("filename")
	if filename == "" {
		return nil, fmt.Errorf("a filename must be provided")
	}

	store, err := NewStoreFromEnv()
	if err != nil {
		return nil, err
	}

	header, rows, err := store.readCSV(ctx, filename, args.Int("rows", DefaultPreviewRows))
	if err != nil {
		return nil, err
	}

	records := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		record := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				record[col] = row[i]
			}
		}
		records = append(records, record)
	}
	return tools.Body{"success": true, "columns": header, "rows": records}, nil
}

// ColumnInfoHandler describes the columns of one CSV file, with a simple
// type sniff over a bounded sample.
func ColumnInfoHandler(ctx context.Context, args tools.Args) (tools.Body, error) {
	filename := args.String("filename")
	if filename == "" {
		return nil, fmt.Errorf("a filename must be provided")
	}

	store, err := NewStoreFromEnv()
	if err != nil {
		return nil, err
	}

	header, rows, err := store.readCSV(ctx, filename, typeSampleRows)
	if err != nil {
		return nil, err
	}

	columns := make([]map[string]any, 0, len(header))
	for i, col := range header {
		var sample []string
		for _, row := range rows {
			if i < len(row) && row[i] != "" {
				sample = append(sample, row[i])
			}
		}
		columns = append(columns, map[string]any{
			"name": col,
			"type": inferType(sample),
		})
	}
	return tools.Body{"success": true, "columns": columns}, nil
}

// readCSV downloads the object and parses the header plus at most maxRows
// data rows.
func (s *Store) readCSV(ctx context.Context, key string, maxRows int) ([]string, [][]string, error) {
	data, err := s.Client.GetObject(ctx, s.Bucket, key)
	if err != nil {
		return nil, nil, err
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s as CSV: %w", key, err)
	}
	if len(all) == 0 {
		return nil, nil, fmt.Errorf("file %s is empty", key)
	}

	header := all[0]
	rows := all[1:]
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	return header, rows, nil
}

// inferType classifies a column as integer, float, boolean, or string based
// on its sampled values.
func inferType(sample []string) string {
	if len(sample) == 0 {
		return "string"
	}

	isInt, isFloat, isBool := true, true, true
	for _, v := range sample {
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			isFloat = false
		}
		if _, err := strconv.ParseBool(v); err != nil {
			isBool = false
		}
	}

	switch {
	case isInt:
		return "integer"
	case isFloat:
		return "float"
	case isBool:
		return "boolean"
	default:
		return "string"
	}
}
