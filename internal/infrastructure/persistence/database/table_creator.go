package database

import (
	"context"
	"fmt"
)

// LeadsTable is the name of the append-only lead table.
const LeadsTable = "leads"

// TableCreator handles the creation of the lead store schema.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the tables and
// indexes. Every statement is idempotent.
func (tc *TableCreator) CreateSchema(ctx context.Context, db *DB) error {
	for _, tableSQL := range tables {
		if _, err := db.ExecContext(ctx, tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.ExecContext(ctx, indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}

// Timestamps are stored as fixed-width UTC text so lexical order is
// chronological on every backend.
var tables = []string{
	`CREATE TABLE IF NOT EXISTS leads (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		email TEXT NOT NULL,
		phone TEXT NOT NULL,
		case_type TEXT NOT NULL,
		exposure_period TEXT,
		medical_condition TEXT,
		additional_info TEXT,
		ip_address TEXT NOT NULL,
		user_agent TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at, id)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_case_type ON leads(case_type)`,
}
