package update_appointment_notes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	err error
	got *models.UpdateNotesRequest
}

func (f *fakeService) UpdateNotes(_ context.Context, id int64, req *models.UpdateNotesRequest, _ domain.Caller) (*models.AppointmentResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: "PENDING", Notes: req.Notes}, nil
}

func serve(svc *fakeService, target, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/appointments/{appointmentId}/notes", NewHandler(svc, logger.NewNop()).Handle)

	r := httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body))
	r = r.WithContext(middleware.WithCaller(r.Context(), domain.Caller{UserID: 7, Role: domain.RolePatient}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestHandler_Success(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/api/v1/appointments/5/notes", `{"notes":"bring previous results"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.got.Notes)
	assert.Equal(t, "bring previous results", *svc.got.Notes)
	assert.Contains(t, rec.Body.String(), `"notes":"bring previous results"`)
}

func TestHandler_NullClearsNotes(t *testing.T) {
	svc := &fakeService{}

	rec := serve(svc, "/api/v1/appointments/5/notes", `{"notes":null}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.got.Notes)
	assert.NotContains(t, rec.Body.String(), `"notes"`)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad id", url: "/api/v1/appointments/abc/notes", body: `{"notes":"x"}`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", url: "/api/v1/appointments/5/notes", body: `{"date":"2025-03-10"}`, wantStatus: http.StatusBadRequest},
		{name: "too long", url: "/api/v1/appointments/5/notes", body: `{"notes":"x"}`, err: appointments.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", url: "/api/v1/appointments/5/notes", body: `{"notes":"x"}`, err: appointments.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", url: "/api/v1/appointments/5/notes", body: `{"notes":"x"}`, err: appointments.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", url: "/api/v1/appointments/5/notes", body: `{"notes":"x"}`, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, tt.url, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
