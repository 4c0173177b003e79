package sqlquery

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-sql-driver/mysql"
)

// DefaultMaxRows caps result sets handed back to the agent.
const DefaultMaxRows = 100

// Result standardizes query execution outcomes for the tool body.
type Result struct {
	Success bool
	Data    string
	Error   string
}

// Body converts the result to the tool payload shape.
func (r Result) Body() map[string]any {
	return map[string]any{
		"success": r.Success,
		"data":    r.Data,
		"error":   r.Error,
	}
}

func failure(format string, v ...any) Result {
	return Result{Success: false, Data: "[]", Error: fmt.Sprintf(format, v...)}
}

// DSNFromEnv builds the MySQL DSN from the function runtime environment.
// The connection uses the read-only agent user provisioned during setup.
func DSNFromEnv() (string, error) {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	name := os.Getenv("DB_NAME")
	user := os.Getenv("DB_AGENT_USER")
	password := os.Getenv("DB_AGENT_PASSWORD")
	if host == "" || port == "" || name == "" || user == "" {
		return "", fmt.Errorf("database connection environment is incomplete")
	}

	cfg := mysql.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%s", host, port)
	cfg.DBName = name
	cfg.User = user
	cfg.Passwd = password
	return cfg.FormatDSN(), nil
}

// Open connects to the database configured in the environment.
func Open() (*sql.DB, error) {
	dsn, err := DSNFromEnv()
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}
	return db, nil
}

// Execute validates and runs a SELECT query, returning at most maxRows rows
// encoded as indented JSON.
func Execute(ctx context.Context, db *sql.DB, query string, maxRows int) Result {
	if !ValidateSelect(query) {
		return failure("Query validation failed: Only SELECT statements are allowed")
	}
	if maxRows <= 0 {
		maxRows = DefaultMaxRows
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return failure("MySQL error: %v", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return failure("failed to read result columns: %v", err)
	}

	var records []map[string]any
	for rows.Next() {
		if len(records) >= maxRows {
			break
		}
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return failure("failed to scan row: %v", err)
		}

		record := make(map[string]any, len(columns))
		for i, col := range columns {
			record[col] = jsonSafe(values[i])
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return failure("MySQL error: %v", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return failure("failed to encode results: %v", err)
	}
	if records == nil {
		data = []byte("[]")
	}

	return Result{Success: true, Data: string(data)}
}

// jsonSafe converts driver values into JSON-encodable ones. The MySQL driver
// hands back []byte for most textual and decimal columns.
func jsonSafe(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
