package get_appointment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
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
	err       error
	gotCaller domain.Caller
}

func (f *fakeService) GetByID(_ context.Context, id int64, caller domain.Caller) (*models.AppointmentResponse, error) {
	f.gotCaller = caller
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, Status: "PENDING"}, nil
}

func TestHandler(t *testing.T) {
	patient := domain.Caller{UserID: 7, Role: domain.RolePatient}

	tests := []struct {
		name       string
		url        string
		caller     *domain.Caller
		err        error
		wantStatus int
	}{
		{name: "ok", url: "/api/v1/appointments/5", caller: &patient, wantStatus: http.StatusOK},
		{name: "bad id", url: "/api/v1/appointments/abc", caller: &patient, wantStatus: http.StatusBadRequest},
		{name: "no caller", url: "/api/v1/appointments/5", wantStatus: http.StatusUnauthorized},
		{name: "not found", url: "/api/v1/appointments/5", caller: &patient, err: appointments.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "foreign appointment", url: "/api/v1/appointments/5", caller: &patient, err: appointments.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "internal", url: "/api/v1/appointments/5", caller: &patient, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{err: tt.err}
			router := mux.NewRouter()
			router.HandleFunc("/api/v1/appointments/{appointmentId}", NewHandler(svc, logger.NewNop()).Handle)

			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			if tt.caller != nil {
				r = r.WithContext(middleware.WithCaller(r.Context(), *tt.caller))
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, r)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, patient, svc.gotCaller)
				assert.Contains(t, rec.Body.String(), `"status":"PENDING"`)
			}
		})
	}
}
