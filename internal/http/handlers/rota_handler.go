package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ApexSites26/route-care-app-78-sub000/internal/domain"
)

type RotaService interface {
	WeekGrid(ctx context.Context, companyID uuid.UUID, referenceDate time.Time) ([]domain.RotaRow, error)
	UpcomingChanges(ctx context.Context, companyID uuid.UUID, referenceDate time.Time) ([]domain.UpcomingChange, error)
}

type RotaHandler struct {
	service RotaService
	clock   func() time.Time
}

func NewRotaHandler(svc RotaService) *RotaHandler {
	return &RotaHandler{service: svc, clock: time.Now}
}

func (h *RotaHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /rota/week", h.handleWeekGrid)
	mux.HandleFunc("GET /rota/upcoming", h.handleUpcoming)
}

type rotaCellResponse struct {
	Weekday    int     `json:"weekday"`
	Date       string  `json:"date"`
	Leg        string  `json:"leg"`
	Time       *string `json:"time"`
	Overridden bool    `json:"overridden"`
	Note       string  `json:"note,omitempty"`
	DriverID   *string `json:"driver_id,omitempty"`
	EscortID   *string `json:"escort_id,omitempty"`
}

type rotaRowResponse struct {
	RunID   string             `json:"run_id"`
	RunCode string             `json:"run_code"`
	Cells   []rotaCellResponse `json:"cells"`
}

type upcomingChangeResponse struct {
	RunCode    string `json:"run_code"`
	Leg        string `json:"leg"`
	PickupTime string `json:"pickup_time"`
	Note       string `json:"note,omitempty"`
}

func (h *RotaHandler) handleWeekGrid(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := callerScope(w, r)
	if !ok {
		return
	}
	referenceDate, ok := h.referenceDate(w, r)
	if !ok {
		return
	}

	grid, err := h.service.WeekGrid(r.Context(), companyID, referenceDate)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]rotaRowResponse, 0, len(grid))
	for _, row := range grid {
		cells := make([]rotaCellResponse, 0, len(row.Cells))
		for _, cell := range row.Cells {
			cells = append(cells, toRotaCellResponse(cell))
		}
		out = append(out, rotaRowResponse{
			RunID:   row.Run.ID.String(),
			RunCode: row.Run.Code,
			Cells:   cells,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *RotaHandler) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := callerScope(w, r)
	if !ok {
		return
	}
	referenceDate, ok := h.referenceDate(w, r)
	if !ok {
		return
	}

	changes, err := h.service.UpcomingChanges(r.Context(), companyID, referenceDate)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]upcomingChangeResponse, 0, len(changes))
	for _, change := range changes {
		out = append(out, upcomingChangeResponse{
			RunCode:    change.RunCode,
			Leg:        change.LegLabel,
			PickupTime: change.PickupTime.Format(timeFormat),
			Note:       change.Note,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// referenceDate reads the optional date query parameter; absent, it falls
// back to today. The fallback lives here so the services below stay free of
// the clock.
func (h *RotaHandler) referenceDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return h.clock(), true
	}
	parsed, err := time.Parse(dateFormat, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return time.Time{}, false
	}
	return parsed, true
}

func toRotaCellResponse(cell domain.RotaCell) rotaCellResponse {
	out := rotaCellResponse{
		Weekday:    int(cell.Weekday),
		Date:       cell.Date.Format(dateFormat),
		Leg:        string(cell.Leg),
		Overridden: cell.Overridden,
		Note:       cell.Note,
	}
	if cell.Time != nil {
		formatted := cell.Time.Format(timeFormat)
		out.Time = &formatted
	}
	if cell.DriverID != nil {
		id := cell.DriverID.String()
		out.DriverID = &id
	}
	if cell.EscortID != nil {
		id := cell.EscortID.String()
		out.EscortID = &id
	}
	return out
}
