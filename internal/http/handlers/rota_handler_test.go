package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ApexSites26/route-care-app-78-sub000/internal/domain"
)

type stubRotaService struct {
	grid        []domain.RotaRow
	changes     []domain.UpcomingChange
	gotDate     time.Time
	gridErr     error
	upcomingErr error
}

func (s *stubRotaService) WeekGrid(_ context.Context, _ uuid.UUID, referenceDate time.Time) ([]domain.RotaRow, error) {
	s.gotDate = referenceDate
	return s.grid, s.gridErr
}

func (s *stubRotaService) UpcomingChanges(_ context.Context, _ uuid.UUID, referenceDate time.Time) ([]domain.UpcomingChange, error) {
	s.gotDate = referenceDate
	return s.changes, s.upcomingErr
}

func newRotaMux(svc RotaService) *http.ServeMux {
	mux := http.NewServeMux()
	NewRotaHandler(svc).Register(mux)
	return mux
}

func TestWeekGridPassesReferenceDate(t *testing.T) {
	stub := &stubRotaService{}
	mux := newRotaMux(stub)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest(http.MethodGet, "/rota/week?date=2024-03-04", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, stub.gotDate.Equal(time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)))
}

func TestWeekGridDefaultsToToday(t *testing.T) {
	stub := &stubRotaService{}
	handler := NewRotaHandler(stub)
	fixed := time.Date(2024, time.March, 6, 10, 30, 0, 0, time.UTC)
	handler.clock = func() time.Time { return fixed }

	mux := http.NewServeMux()
	handler.Register(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest(http.MethodGet, "/rota/week", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, stub.gotDate.Equal(fixed))
}

func TestWeekGridRejectsBadDate(t *testing.T) {
	mux := newRotaMux(&stubRotaService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest(http.MethodGet, "/rota/week?date=04-03-2024", ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpcomingResponseShape(t *testing.T) {
	stub := &stubRotaService{changes: []domain.UpcomingChange{{
		RunCode:    "R7",
		LegLabel:   "PM",
		PickupTime: time.Date(0, time.January, 1, 14, 0, 0, 0, time.UTC),
		Note:       "Inset day",
	}}}
	mux := newRotaMux(stub)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest(http.MethodGet, "/rota/upcoming?date=2024-03-04", ""))
	require.Equal(t, http.StatusOK, rec.Code)

	var body []upcomingChangeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "R7", body[0].RunCode)
	assert.Equal(t, "PM", body[0].Leg)
	assert.Equal(t, "14:00", body[0].PickupTime)
	assert.Equal(t, "Inset day", body[0].Note)
}

func TestUpcomingEmptyIsJSONArray(t *testing.T) {
	mux := newRotaMux(&stubRotaService{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, scopedRequest(http.MethodGet, "/rota/upcoming?date=2024-03-04", ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]\n", rec.Body.String())
}
