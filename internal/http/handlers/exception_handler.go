package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ApexSites26/route-care-app-78-sub000/internal/domain"
	"github.com/ApexSites26/route-care-app-78-sub000/internal/repository"
	"github.com/ApexSites26/route-care-app-78-sub000/internal/service"
)

const (
	dateFormat = "2006-01-02"
	timeFormat = "15:04"
)

type ExceptionService interface {
	Create(ctx context.Context, actorID, companyID uuid.UUID, input service.CreateExceptionInput) (domain.Exception, error)
	Update(ctx context.Context, actorID, companyID, id uuid.UUID, patch service.ExceptionPatch) (domain.Exception, error)
	Delete(ctx context.Context, actorID, companyID, id uuid.UUID) error
	List(ctx context.Context, companyID uuid.UUID, filter repository.ExceptionFilter) ([]domain.Exception, error)
}

type ExceptionHandler struct {
	service ExceptionService
}

func NewExceptionHandler(svc ExceptionService) *ExceptionHandler {
	return &ExceptionHandler{service: svc}
}

func (h *ExceptionHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /exceptions", h.handleCreate)
	mux.HandleFunc("GET /exceptions", h.handleList)
	mux.HandleFunc("PATCH /exceptions/{id}", h.handleUpdate)
	mux.HandleFunc("DELETE /exceptions/{id}", h.handleDelete)
}

type createExceptionRequest struct {
	RunID      string `json:"run_id"`
	Date       string `json:"date"`
	Leg        string `json:"leg"`
	PickupTime string `json:"pickup_time"`
	Note       string `json:"note"`
}

type updateExceptionRequest struct {
	Date       *string `json:"date"`
	Leg        *string `json:"leg"`
	PickupTime *string `json:"pickup_time"`
	Note       *string `json:"note"`
}

type exceptionResponse struct {
	ID         string `json:"id"`
	RunID      string `json:"run_id"`
	Date       string `json:"date"`
	Leg        string `json:"leg"`
	PickupTime string `json:"pickup_time"`
	Note       string `json:"note,omitempty"`
	CreatedBy  string `json:"created_by"`
	CreatedAt  string `json:"created_at"`
}

func (h *ExceptionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	actorID, companyID, ok := callerScope(w, r)
	if !ok {
		return
	}

	var req createExceptionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	runID, err := uuid.Parse(req.RunID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run_id")
		return
	}
	date, err := time.Parse(dateFormat, req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid date")
		return
	}
	pickup, err := time.Parse(timeFormat, req.PickupTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid pickup_time")
		return
	}

	created, err := h.service.Create(r.Context(), actorID, companyID, service.CreateExceptionInput{
		RunID:      runID,
		Date:       date,
		Leg:        domain.Leg(req.Leg),
		PickupTime: pickup,
		Note:       req.Note,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toExceptionResponse(created))
}

func (h *ExceptionHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	actorID, companyID, ok := callerScope(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	var req updateExceptionRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}

	var patch service.ExceptionPatch
	if req.Date != nil {
		date, err := time.Parse(dateFormat, *req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date")
			return
		}
		patch.Date = &date
	}
	if req.Leg != nil {
		leg := domain.Leg(*req.Leg)
		patch.Leg = &leg
	}
	if req.PickupTime != nil {
		pickup, err := time.Parse(timeFormat, *req.PickupTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid pickup_time")
			return
		}
		patch.PickupTime = &pickup
	}
	patch.Note = req.Note

	updated, err := h.service.Update(r.Context(), actorID, companyID, id, patch)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toExceptionResponse(updated))
}

func (h *ExceptionHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	actorID, companyID, ok := callerScope(w, r)
	if !ok {
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.service.Delete(r.Context(), actorID, companyID, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ExceptionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := callerScope(w, r)
	if !ok {
		return
	}

	var filter repository.ExceptionFilter
	if raw := r.URL.Query().Get("run_id"); raw != "" {
		runID, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid run_id")
			return
		}
		filter.RunID = &runID
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := time.Parse(dateFormat, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid from")
			return
		}
		filter.From = &from
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		to, err := time.Parse(dateFormat, raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid to")
			return
		}
		filter.To = &to
	}

	exceptions, err := h.service.List(r.Context(), companyID, filter)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	out := make([]exceptionResponse, 0, len(exceptions))
	for _, exc := range exceptions {
		out = append(out, toExceptionResponse(exc))
	}
	writeJSON(w, http.StatusOK, out)
}

func toExceptionResponse(exc domain.Exception) exceptionResponse {
	return exceptionResponse{
		ID:         exc.ID.String(),
		RunID:      exc.RunID.String(),
		Date:       exc.Date.Format(dateFormat),
		Leg:        string(exc.Leg),
		PickupTime: exc.PickupTime.Format(timeFormat),
		Note:       exc.Note,
		CreatedBy:  exc.CreatedBy.String(),
		CreatedAt:  exc.CreatedAt.Format(time.RFC3339),
	}
}

// callerScope reads the acting user and company scope the gateway forwards
// on every request. The company id is caller-supplied on purpose; the
// service layer verifies the actor actually belongs to it.
func callerScope(w http.ResponseWriter, r *http.Request) (actorID, companyID uuid.UUID, ok bool) {
	actorID, err := uuid.Parse(r.Header.Get("X-User-ID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing or invalid X-User-ID")
		return uuid.Nil, uuid.Nil, false
	}
	companyID, err = uuid.Parse(r.Header.Get("X-Company-ID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing or invalid X-Company-ID")
		return uuid.Nil, uuid.Nil, false
	}
	return actorID, companyID, true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, service.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, service.ErrConflict):
		writeError(w, http.StatusConflict, "an exception already exists for this run, date and leg")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
