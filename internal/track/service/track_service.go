package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Totenem/Time-Tracker-App/internal/common/clock"
	commoncrypto "github.com/Totenem/Time-Tracker-App/internal/common/crypto"
	commonerrors "github.com/Totenem/Time-Tracker-App/internal/common/errors"
	"github.com/Totenem/Time-Tracker-App/internal/common/logger"
	"github.com/Totenem/Time-Tracker-App/internal/observability/metrics"
	"github.com/Totenem/Time-Tracker-App/internal/track/domain"
	"github.com/Totenem/Time-Tracker-App/internal/track/repository"
)

type TrackService struct {
	entries     repository.TimeEntryRepository
	projects    repository.ProjectRepository
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

func NewTrackService(
	entries repository.TimeEntryRepository,
	projects repository.ProjectRepository,
	idGenerator commoncrypto.IDGenerator,
	clk clock.Clock,
	log *logger.Logger,
) *TrackService {
	return &TrackService{
		entries:     entries,
		projects:    projects,
		idGenerator: idGenerator,
		clock:       clk,
		log:         log,
	}
}

type AddTimeInput struct {
	ProjectName string
	Description string
	Hours       decimal.Decimal
	EntryDate   time.Time
}

func (s *TrackService) AddTime(ctx context.Context, userID string, input AddTimeInput) error {
	if input.Hours.LessThanOrEqual(decimal.Zero) {
		return commonerrors.NewInvalidInput("Hours must be greater than zero")
	}

	project, err := s.projects.FindByName(ctx, input.ProjectName)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": userID,
				"project": input.ProjectName,
				"action":  "add_time_project_not_found",
			}).Warn("add time failed: project not found")
			return ErrProjectNotFound
		}
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return commonerrors.ErrInternalError.WithCause(err)
	}

	entryDate := input.EntryDate
	if entryDate.IsZero() {
		entryDate = s.clock.Now()
	}

	entry := domain.TimeEntry{
		ID:          id,
		UserID:      userID,
		ProjectID:   project.ID,
		ProjectName: project.Name,
		Description: input.Description,
		Hours:       input.Hours,
		EntryDate:   entryDate,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.entries.Create(ctx, entry); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"project": project.Name,
			"action":  "add_time_insert_failed",
		}).Errorf("add time failed: %v", err)
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.TimeEntriesRecorded.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": userID,
		"project": project.Name,
		"hours":   entry.Hours.String(),
		"action":  "add_time_success",
	}).Info("time entry recorded")

	return nil
}

// WeekSummary aggregates the caller's entries for the current Monday-Sunday
// week. An empty week yields zero totals, not an error.
func (s *TrackService) WeekSummary(ctx context.Context, userID string) (domain.WeeklySummary, error) {
	start, end := WeekBounds(s.clock.Now())

	entries, err := s.entries.ListByDateRange(ctx, userID, start, end)
	if err != nil {
		return domain.WeeklySummary{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	return s.summarize(start, end, entries), nil
}

// ProjectWeekSummary restricts the current-week aggregation to one project,
// resolved by name first.
func (s *TrackService) ProjectWeekSummary(ctx context.Context, userID, projectName string) (domain.WeeklySummary, error) {
	project, err := s.projects.FindByName(ctx, projectName)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return domain.WeeklySummary{}, ErrProjectNotFound
		}
		return domain.WeeklySummary{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	start, end := WeekBounds(s.clock.Now())

	entries, err := s.entries.ListByDateRangeAndProject(ctx, userID, start, end, project.ID)
	if err != nil {
		return domain.WeeklySummary{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	return s.summarize(start, end, entries), nil
}

// summarize computes exact decimal totals; the grand total always equals
// the sum of the per-project totals because both come from one pass over
// the same entries.
func (s *TrackService) summarize(start, end time.Time, entries []domain.TimeEntry) domain.WeeklySummary {
	total := decimal.Zero
	perProject := make(map[string]decimal.Decimal)
	order := make([]string, 0)

	for _, entry := range entries {
		total = total.Add(entry.Hours)
		if _, seen := perProject[entry.ProjectName]; !seen {
			order = append(order, entry.ProjectName)
		}
		perProject[entry.ProjectName] = perProject[entry.ProjectName].Add(entry.Hours)
	}

	totals := make([]domain.ProjectTotal, 0, len(order))
	for _, name := range order {
		totals = append(totals, domain.ProjectTotal{Name: name, Hours: perProject[name]})
	}

	// Descending by hours; ties keep the repository's ordering, which is
	// deterministic, so repeated requests agree.
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Hours.GreaterThan(totals[j].Hours)
	})

	metrics.WeekSummariesComputed.Inc()

	return domain.WeeklySummary{
		WeekStart:     start,
		WeekEnd:       end,
		Entries:       entries,
		TotalHours:    total,
		ProjectTotals: totals,
	}
}
