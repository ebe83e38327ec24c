package update_appointment_status

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) UpdateStatus(_ context.Context, id int64, req *models.UpdateStatusRequest, _ domain.Caller) (*models.AppointmentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: req.Status}, nil
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		body       string
		err        error
		wantStatus int
	}{
		{name: "confirmed", url: "/api/v1/appointments/5/status", body: `{"status":"CONFIRMED"}`, wantStatus: http.StatusOK},
		{name: "bad id", url: "/api/v1/appointments/-5/status", body: `{"status":"CONFIRMED"}`, wantStatus: http.StatusBadRequest},
		{name: "broken body", url: "/api/v1/appointments/5/status", body: `status=CONFIRMED`, wantStatus: http.StatusBadRequest},
		{name: "unsupported status", url: "/api/v1/appointments/5/status", body: `{"status":"NO_SHOW"}`, err: appointments.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not found", url: "/api/v1/appointments/5/status", body: `{"status":"CONFIRMED"}`, err: appointments.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "forbidden", url: "/api/v1/appointments/5/status", body: `{"status":"CONFIRMED"}`, err: appointments.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "terminal", url: "/api/v1/appointments/5/status", body: `{"status":"CONFIRMED"}`, err: appointments.ErrInvalidTransition, wantStatus: http.StatusConflict},
		{name: "internal", url: "/api/v1/appointments/5/status", body: `{"status":"CONFIRMED"}`, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := mux.NewRouter()
			router.HandleFunc("/api/v1/appointments/{appointmentId}/status", NewHandler(&fakeService{err: tt.err}, logger.NewNop()).Handle)

			r := httptest.NewRequest(http.MethodPatch, tt.url, strings.NewReader(tt.body))
			r = r.WithContext(middleware.WithCaller(r.Context(), domain.Caller{UserID: 1, Role: domain.RoleAdmin}))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
