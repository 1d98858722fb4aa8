package repository

import (
	"context"
	"time"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Totenem/Time-Tracker-App/internal/common/db"
	"github.com/Totenem/Time-Tracker-App/internal/track/domain"
)

type TimeEntryRepository interface {
	Create(ctx context.Context, entry domain.TimeEntry) error
	ListByDateRange(ctx context.Context, userID string, start, end time.Time) ([]domain.TimeEntry, error)
	ListByDateRangeAndProject(ctx context.Context, userID string, start, end time.Time, projectID string) ([]domain.TimeEntry, error)
}

type PgTimeEntryRepository struct {
	pool *pgxpool.Pool
}

func NewPgTimeEntryRepository(pool *pgxpool.Pool) *PgTimeEntryRepository {
	return &PgTimeEntryRepository{pool: pool}
}

func (r *PgTimeEntryRepository) Create(ctx context.Context, entry domain.TimeEntry) error {
	start := time.Now()
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO time_entries (id, user_id, project_id, description, hours, entry_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID,
		entry.UserID,
		entry.ProjectID,
		entry.Description,
		entry.Hours.String(),
		entry.EntryDate,
		entry.CreatedAt,
	)
	if err != nil {
		return db.HandleExecError(err, "create time entry", start)
	}
	db.MeasureQueryDuration("create time entry", start)
	return nil
}

// Range bounds are inclusive dates. Entries come back most recent entry
// date first; created_at breaks ties so the ordering is deterministic.
const listEntriesQuery = `
	SELECT t.id, t.user_id, t.project_id, p.name, t.description, t.hours::text, t.entry_date, t.created_at
	FROM time_entries t
	JOIN projects p ON p.id = t.project_id
	WHERE t.user_id = $1 AND t.entry_date BETWEEN $2 AND $3`

const listEntriesOrder = ` ORDER BY t.entry_date DESC, t.created_at DESC`

func (r *PgTimeEntryRepository) ListByDateRange(ctx context.Context, userID string, start, end time.Time) ([]domain.TimeEntry, error) {
	startTime := time.Now()
	rows, err := r.pool.Query(ctx, listEntriesQuery+listEntriesOrder, userID, start, end)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list time entries", startTime)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list time entries", startTime)
	}
	db.MeasureQueryDuration("list time entries", startTime)
	return entries, nil
}

func (r *PgTimeEntryRepository) ListByDateRangeAndProject(ctx context.Context, userID string, start, end time.Time, projectID string) ([]domain.TimeEntry, error) {
	startTime := time.Now()
	rows, err := r.pool.Query(ctx, listEntriesQuery+` AND t.project_id = $4`+listEntriesOrder, userID, start, end, projectID)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list time entries by project", startTime)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, db.HandleQueryError(err, nil, "list time entries by project", startTime)
	}
	db.MeasureQueryDuration("list time entries by project", startTime)
	return entries, nil
}

func scanEntries(rows pgx.Rows) ([]domain.TimeEntry, error) {
	entries := make([]domain.TimeEntry, 0)
	for rows.Next() {
		var entry domain.TimeEntry
		var hours string
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.ProjectID,
			&entry.ProjectName,
			&entry.Description,
			&hours,
			&entry.EntryDate,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}

		// hours is selected as text so the numeric value survives the
		// round trip exactly.
		parsed, err := decimal.NewFromString(hours)
		if err != nil {
			return nil, err
		}
		entry.Hours = parsed

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
