package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeEntry is append-only: entries are never mutated or deleted, and
// visibility is always scoped to the owning user.
type TimeEntry struct {
	ID          string
	UserID      string
	ProjectID   string
	ProjectName string
	Description string
	Hours       decimal.Decimal
	EntryDate   time.Time
	CreatedAt   time.Time
}

type Project struct {
	ID   string
	Name string
}

type ProjectTotal struct {
	Name  string
	Hours decimal.Decimal
}

// WeeklySummary is derived on every request, never persisted. Entries are
// ordered most recent entry date first; ProjectTotals by descending hours.
type WeeklySummary struct {
	WeekStart     time.Time
	WeekEnd       time.Time
	Entries       []TimeEntry
	TotalHours    decimal.Decimal
	ProjectTotals []ProjectTotal
}
