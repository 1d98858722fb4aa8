package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	commonhttp "github.com/Totenem/Time-Tracker-App/internal/common/http"
	"github.com/Totenem/Time-Tracker-App/internal/common/jwtverify"
	"github.com/Totenem/Time-Tracker-App/internal/common/logger"
	"github.com/Totenem/Time-Tracker-App/internal/track/domain"
	"github.com/Totenem/Time-Tracker-App/internal/track/service"
)

const entryDateLayout = "2006-01-02"

type addTimeRequest struct {
	ProjectName string  `json:"project_name" validate:"required"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours" validate:"required"`
	EntryDate   string  `json:"entry_date"`
}

type timeEntryResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	ProjectID   string  `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
	EntryDate   string  `json:"entry_date"`
	CreatedAt   string  `json:"created_at"`
}

type weekSummaryResponse struct {
	Message       string              `json:"message"`
	ProjectName   string              `json:"project_name,omitempty"`
	TimeEntries   []timeEntryResponse `json:"time_entries"`
	TotalHours    float64             `json:"total_hours"`
	ProjectTotals map[string]float64  `json:"project_totals"`
	WeekStart     string              `json:"week_start"`
	WeekEnd       string              `json:"week_end"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	track    *service.TrackService
	validate *validator.Validate
	errors   *commonhttp.ErrorHandler
	timeout  time.Duration
	log      *logger.Logger
}

func NewHandler(track *service.TrackService, timeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		track:    track,
		validate: validator.New(),
		errors:   commonhttp.NewErrorHandler(log),
		timeout:  timeout,
		log:      log,
	}
}

// Register mounts the time endpoints behind the auth gate.
func (h *Handler) Register(mux *http.ServeMux, authGate func(http.Handler) http.Handler) {
	mux.Handle("/v1/time/add",
		authGate(commonhttp.RequireMethod(http.MethodPost)(h.addTime)))
	mux.Handle("/v1/time/get_week_summary",
		authGate(commonhttp.RequireMethod(http.MethodGet)(h.weekSummary)))
	mux.Handle("/v1/time/get_project_week_summary",
		authGate(commonhttp.RequireMethod(http.MethodGet)(h.projectWeekSummary)))
}

func (h *Handler) addTime(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing or invalid authorization")
		return
	}

	var req addTimeRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("add time failed: invalid json: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeInvalidJSON, "invalid json")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.log.Warnf("add time failed: invalid request body: %v", err)
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, "project_name and hours are required")
		return
	}

	var entryDate time.Time
	if req.EntryDate != "" {
		parsed, err := time.ParseInLocation(entryDateLayout, req.EntryDate, time.Local)
		if err != nil {
			commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, "entry_date must be formatted YYYY-MM-DD")
			return
		}
		entryDate = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	err := h.track.AddTime(ctx, claims.UserID, service.AddTimeInput{
		ProjectName: req.ProjectName,
		Description: req.Description,
		Hours:       decimal.NewFromFloat(req.Hours),
		EntryDate:   entryDate,
	})
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, messageResponse{Message: "Time entry added successfully"})
}

func (h *Handler) weekSummary(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing or invalid authorization")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	summary, err := h.track.WeekSummary(ctx, claims.UserID)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toSummaryResponse(summary, ""))
}

func (h *Handler) projectWeekSummary(w http.ResponseWriter, r *http.Request) {
	claims, ok := jwtverify.FromContext(r.Context())
	if !ok {
		commonhttp.WriteErrorEnvelope(w, http.StatusUnauthorized, commonhttp.CodeMissingAuthorization, "missing or invalid authorization")
		return
	}

	projectName := r.URL.Query().Get("project_name")
	if projectName == "" {
		commonhttp.WriteErrorEnvelope(w, http.StatusBadRequest, commonhttp.CodeBadRequest, "project_name query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	summary, err := h.track.ProjectWeekSummary(ctx, claims.UserID, projectName)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toSummaryResponse(summary, projectName))
}

func toSummaryResponse(summary domain.WeeklySummary, projectName string) weekSummaryResponse {
	entries := make([]timeEntryResponse, 0, len(summary.Entries))
	for _, entry := range summary.Entries {
		entries = append(entries, timeEntryResponse{
			ID:          entry.ID,
			UserID:      entry.UserID,
			ProjectID:   entry.ProjectID,
			ProjectName: entry.ProjectName,
			Description: entry.Description,
			Hours:       entry.Hours.InexactFloat64(),
			EntryDate:   entry.EntryDate.Format(entryDateLayout),
			CreatedAt:   entry.CreatedAt.Format(time.RFC3339),
		})
	}

	totals := make(map[string]float64, len(summary.ProjectTotals))
	for _, pt := range summary.ProjectTotals {
		totals[pt.Name] = pt.Hours.InexactFloat64()
	}

	return weekSummaryResponse{
		Message:       "Week summary retrieved successfully",
		ProjectName:   projectName,
		TimeEntries:   entries,
		TotalHours:    summary.TotalHours.InexactFloat64(),
		ProjectTotals: totals,
		WeekStart:     summary.WeekStart.Format(entryDateLayout),
		WeekEnd:       summary.WeekEnd.Format(entryDateLayout),
	}
}
