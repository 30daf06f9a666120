// Package leads provides the SQL-based implementation of the lead
// repository.
package leads

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/AtRiskMedia/caseeval-go/internal/domain/leads"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/observability/logging"
	"github.com/AtRiskMedia/caseeval-go/internal/infrastructure/persistence/database"
)

// TimestampLayout is the fixed-width UTC layout used for created_at and
// updated_at. Fixed width keeps string order equal to time order.
const TimestampLayout = "2006-01-02T15:04:05.000000000Z"

const leadColumns = `id, first_name, last_name, email, phone, case_type,
	exposure_period, medical_condition, additional_info,
	ip_address, user_agent, created_at, updated_at`

const searchClause = ` WHERE (LOWER(first_name) LIKE ? ESCAPE '\'
	OR LOWER(last_name) LIKE ? ESCAPE '\'
	OR LOWER(email) LIKE ? ESCAPE '\'
	OR LOWER(case_type) LIKE ? ESCAPE '\')`

// SQLLeadRepository is the SQL-based implementation of leads.Repository.
type SQLLeadRepository struct {
	provider *database.Provider
	logger   *logging.ChanneledLogger
}

// NewSQLLeadRepository creates a new instance of the repository.
func NewSQLLeadRepository(provider *database.Provider, logger *logging.ChanneledLogger) *SQLLeadRepository {
	return &SQLLeadRepository{
		provider: provider,
		logger:   logger,
	}
}

var _ leads.Repository = (*SQLLeadRepository)(nil)

// Insert appends a lead and returns its ID.
func (r *SQLLeadRepository) Insert(ctx context.Context, lead *leads.Lead) (string, error) {
	const query = `INSERT INTO leads (` + leadColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	db, err := r.provider.DB(ctx)
	if err != nil {
		return "", fmt.Errorf("lead store unavailable: %w", err)
	}

	start := time.Now()
	r.logger.Database().Debug("Executing lead insert", "id", lead.ID)

	_, err = db.ExecContext(ctx, db.Rebind(query),
		lead.ID,
		lead.FirstName,
		lead.LastName,
		lead.Email,
		lead.Phone,
		lead.CaseType,
		nullIfEmpty(lead.ExposurePeriod),
		nullIfEmpty(lead.MedicalCondition),
		nullIfEmpty(lead.AdditionalInfo),
		lead.IPAddress,
		lead.UserAgent,
		formatTimestamp(lead.CreatedAt),
		formatTimestamp(lead.UpdatedAt),
	)
	if err != nil {
		r.logger.Database().Error("Lead insert failed", "error", err.Error(), "id", lead.ID)
		return "", fmt.Errorf("failed to insert lead: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Info("Lead insert completed", "id", lead.ID, "duration", duration)
	database.CheckAndLogSlowQuery(r.logger, query, duration, r.provider.SlowQueryThreshold())
	return lead.ID, nil
}

// Count returns the number of leads matching filter.
func (r *SQLLeadRepository) Count(ctx context.Context, filter leads.Filter) (int, error) {
	db, err := r.provider.DB(ctx)
	if err != nil {
		return 0, fmt.Errorf("lead store unavailable: %w", err)
	}

	where, args := buildWhere(db, filter)
	query := `SELECT COUNT(*) FROM leads` + where

	start := time.Now()
	var total int
	if err := db.QueryRowContext(ctx, db.Rebind(query), args...).Scan(&total); err != nil {
		r.logger.Database().Error("Lead count failed", "error", err.Error())
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Debug("Lead count completed", "total", total, "filtered", where != "", "duration", duration)
	database.CheckAndLogSlowQuery(r.logger, query, duration, r.provider.SlowQueryThreshold())
	return total, nil
}

// Find returns one window of matching leads, newest first. Leads created in
// the same instant are ordered by descending ID.
func (r *SQLLeadRepository) Find(ctx context.Context, filter leads.Filter, opts leads.FindOptions) ([]*leads.Lead, error) {
	if opts.Limit <= 0 {
		return []*leads.Lead{}, nil
	}
	if opts.Skip < 0 {
		opts.Skip = 0
	}

	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("lead store unavailable: %w", err)
	}

	where, args := buildWhere(db, filter)
	query := `SELECT ` + leadColumns + ` FROM leads` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, opts.Limit, opts.Skip)

	start := time.Now()
	rows, err := db.QueryContext(ctx, db.Rebind(query), args...)
	if err != nil {
		r.logger.Database().Error("Lead query failed", "error", err.Error())
		return nil, fmt.Errorf("failed to query leads: %w", err)
	}
	defer rows.Close()

	result := make([]*leads.Lead, 0, opts.Limit)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			r.logger.Database().Error("Failed to scan lead row", "error", err.Error())
			return nil, err
		}
		result = append(result, lead)
	}
	if err := rows.Err(); err != nil {
		r.logger.Database().Error("Lead row iteration failed", "error", err.Error())
		return nil, fmt.Errorf("failed to read leads: %w", err)
	}

	duration := time.Since(start)
	r.logger.Database().Debug("Lead query completed", "count", len(result), "skip", opts.Skip, "limit", opts.Limit, "duration", duration)
	database.CheckAndLogSlowQuery(r.logger, query, duration, r.provider.SlowQueryThreshold())
	return result, nil
}

// FindByID retrieves a lead by its ID, returning leads.ErrNotFound when absent.
func (r *SQLLeadRepository) FindByID(ctx context.Context, id string) (*leads.Lead, error) {
	const query = `SELECT ` + leadColumns + ` FROM leads WHERE id = ?`

	db, err := r.provider.DB(ctx)
	if err != nil {
		return nil, fmt.Errorf("lead store unavailable: %w", err)
	}

	start := time.Now()
	lead, err := scanLead(db.QueryRowContext(ctx, db.Rebind(query), id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Database().Debug("Lead not found by ID", "id", id)
			return nil, leads.ErrNotFound
		}
		r.logger.Database().Error("Failed to load lead by ID", "error", err.Error(), "id", id)
		return nil, err
	}

	duration := time.Since(start)
	r.logger.Database().Debug("Lead loaded by ID", "id", id, "duration", duration)
	database.CheckAndLogSlowQuery(r.logger, query, duration, r.provider.SlowQueryThreshold())
	return lead, nil
}

// buildWhere folds the term with the backend's own LOWER() rules so both sides
// of the LIKE agree.
func buildWhere(db *database.DB, filter leads.Filter) (string, []any) {
	if filter.Search == "" {
		return "", nil
	}
	pattern := "%" + database.EscapeLike(db.FoldCase(filter.Search)) + "%"
	return searchClause, []any{pattern, pattern, pattern, pattern}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*leads.Lead, error) {
	var (
		lead                                    leads.Lead
		exposurePeriod, medicalCondition, extra sql.NullString
		createdAt, updatedAt                    string
	)

	err := row.Scan(
		&lead.ID,
		&lead.FirstName,
		&lead.LastName,
		&lead.Email,
		&lead.Phone,
		&lead.CaseType,
		&exposurePeriod,
		&medicalCondition,
		&extra,
		&lead.IPAddress,
		&lead.UserAgent,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan lead: %w", err)
	}

	lead.ExposurePeriod = exposurePeriod.String
	lead.MedicalCondition = medicalCondition.String
	lead.AdditionalInfo = extra.String

	if lead.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("invalid created_at for lead %s: %w", lead.ID, err)
	}
	if lead.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("invalid updated_at for lead %s: %w", lead.ID, err)
	}

	return &lead, nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

func parseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, value)
	if err != nil {
		return time.Parse(time.RFC3339Nano, value)
	}
	return t, nil
}

func nullIfEmpty(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
