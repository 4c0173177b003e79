package sqlquery

import (
	"context"
	"database/sql"
	"fmt"
)

// TableSchema describes one table for the agent.
type TableSchema struct {
	Name    string         `json:"name"`
	Comment string         `json:"comment,omitempty"`
	Columns []ColumnSchema `json:"columns"`
}

// ColumnSchema describes one column.
type ColumnSchema struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
	Key      string `json:"key,omitempty"`
}

// Relationship describes one foreign-key edge between tables.
type Relationship struct {
	Table            string `json:"table"`
	Column           string `json:"column"`
	ReferencedTable  string `json:"referenced_table"`
	ReferencedColumn string `json:"referenced_column"`
}

// Schema is the full introspection result.
type Schema struct {
	DatabaseName  string         `json:"database_name"`
	Tables        []TableSchema  `json:"tables"`
	Relationships []Relationship `json:"relationships"`
}

// DescribeSchema reads table, column, and foreign-key metadata from
// information_schema for the connected database.
func DescribeSchema(ctx context.Context, db *sql.DB) (*Schema, error) {
	var dbName string
	if err := db.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&dbName); err != nil {
		return nil, fmt.Errorf("failed to resolve database name: %w", err)
	}

	schema := &Schema{DatabaseName: dbName}

	tables, err := listTables(ctx, db, dbName)
	if err != nil {
		return nil, err
	}

	for _, t := range tables {
		columns, err := listColumns(ctx, db, dbName, t.Name)
		if err != nil {
			return nil, err
		}
		t.Columns = columns
		schema.Tables = append(schema.Tables, t)
	}

	rels, err := listRelationships(ctx, db, dbName)
	if err != nil {
		return nil, err
	}
	schema.Relationships = rels

	return schema, nil
}

func listTables(ctx context.Context, db *sql.DB, dbName string) ([]TableSchema, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT TABLE_NAME, TABLE_COMMENT
		FROM information_schema.TABLES
		WHERE TABLE_SCHEMA = ?
		ORDER BY TABLE_NAME`, dbName)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []TableSchema
	for rows.Next() {
		var t TableSchema
		if err := rows.Scan(&t.Name, &t.Comment); err != nil {
			return nil, fmt.Errorf("failed to scan table row: %w", err)
		}
		tables = append(tables, t)
	}
	return tables, rows.Err()
}

func listColumns(ctx context.Context, db *sql.DB, dbName, table string) ([]ColumnSchema, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT COLUMN_NAME, COLUMN_TYPE, IS_NULLABLE, COLUMN_KEY
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION`, dbName, table)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns of %s: %w", table, err)
	}
	defer rows.Close()

	var columns []ColumnSchema
	for rows.Next() {
		var c ColumnSchema
		var nullable string
		if err := rows.Scan(&c.Name, &c.Type, &nullable, &c.Key); err != nil {
			return nil, fmt.Errorf("failed to scan column row: %w", err)
		}
		c.Nullable = nullable == "YES"
		columns = append(columns, c)
	}
	return columns, rows.Err()
}

func listRelationships(ctx context.Context, db *sql.DB, dbName string) ([]Relationship, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT TABLE_NAME, COLUMN_NAME, REFERENCED_TABLE_NAME, REFERENCED_COLUMN_NAME
		FROM information_schema.KEY_COLUMN_USAGE
		WHERE TABLE_SCHEMA = ? AND REFERENCED_TABLE_NAME IS NOT NULL
		ORDER BY TABLE_NAME`, dbName)
	if err != nil {
		return nil, fmt.Errorf("failed to list relationships: %w", err)
	}
	defer rows.Close()

	var rels []Relationship
	for rows.Next() {
		var r Relationship
		if err := rows.Scan(&r.Table, &r.Column, &r.ReferencedTable, &r.ReferencedColumn); err != nil {
			return nil, fmt.Errorf("failed to scan relationship row: %w", err)
		}
		rels = append(rels, r)
	}
	return rels, rows.Err()
}
