package create_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

var facility = time.FixedZone("ART", -3*60*60)

type fakeUseCase struct {
	err error
	got *createAppointment.Request
}

func (f *fakeUseCase) Execute(_ context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &createAppointment.Response{
		ID:          11,
		PatientID:   req.PatientID,
		DoctorID:    req.DoctorID,
		ScheduledAt: req.ScheduledAt.UTC(),
		Status:      string(domain.StatusPending),
		Notes:       req.Notes,
	}, nil
}

func post(uc *fakeUseCase, body string, caller *domain.Caller) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	if caller != nil {
		r = r.WithContext(middleware.WithCaller(r.Context(), *caller))
	}
	rec := httptest.NewRecorder()
	NewHandler(uc, facility, logger.NewNop()).Handle(rec, r)
	return rec
}

var patient = &domain.Caller{UserID: 7, Role: domain.RolePatient}

func TestHandler_Created(t *testing.T) {
	uc := &fakeUseCase{}

	rec := post(uc, `{"patientId":7,"doctorId":3,"dateTime":"2025-03-10T10:30","notes":"control"}`, patient)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, time.Date(2025, 3, 10, 13, 30, 0, 0, time.UTC), uc.got.ScheduledAt.UTC())
	assert.Equal(t, *patient, uc.got.Caller)

	var body CreateAppointmentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.NotNil(t, body.Appointment)
	assert.Equal(t, int64(11), body.Appointment.ID)
	assert.Equal(t, "PENDING", body.Appointment.Status)
	assert.Equal(t, "2025-03-10", body.Appointment.Date)
	assert.Equal(t, "10:30", body.Appointment.Time)
}

func TestHandler_AcceptsRFC3339(t *testing.T) {
	uc := &fakeUseCase{}

	rec := post(uc, `{"patientId":7,"doctorId":3,"dateTime":"2025-03-10T13:30:00Z"}`, patient)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, uc.got.ScheduledAt.Equal(time.Date(2025, 3, 10, 13, 30, 0, 0, time.UTC)))
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		caller     *domain.Caller
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "no caller", body: `{}`, wantStatus: http.StatusUnauthorized},
		{name: "broken body", body: `{"patientId":`, caller: patient, wantStatus: http.StatusBadRequest, wantError: msgInvalidRequestBody},
		{name: "bad date time", body: `{"patientId":7,"doctorId":3,"dateTime":"10/03/2025 10:30"}`, caller: patient, wantStatus: http.StatusBadRequest, wantError: msgInvalidDateTime},
		{name: "slot taken", body: `{"patientId":7,"doctorId":3,"dateTime":"2025-03-10T10:30"}`, caller: patient, err: createAppointment.ErrSlotNotAvailable, wantStatus: http.StatusConflict, wantError: msgSlotNotAvailable},
		{name: "booking for someone else", body: `{"patientId":8,"doctorId":3,"dateTime":"2025-03-10T10:30"}`, caller: patient, err: createAppointment.ErrAccessDenied, wantStatus: http.StatusForbidden, wantError: msgForbidden},
		{name: "doctor not found", body: `{"patientId":7,"doctorId":3,"dateTime":"2025-03-10T10:30"}`, caller: patient, err: createAppointment.ErrDoctorNotFound, wantStatus: http.StatusNotFound},
		{name: "patient not found", body: `{"patientId":7,"doctorId":3,"dateTime":"2025-03-10T10:30"}`, caller: patient, err: createAppointment.ErrPatientNotFound, wantStatus: http.StatusNotFound},
		{name: "invalid input", body: `{"patientId":7,"doctorId":0,"dateTime":"2025-03-10T10:30"}`, caller: patient, err: createAppointment.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "internal", body: `{"patientId":7,"doctorId":3,"dateTime":"2025-03-10T10:30"}`, caller: patient, err: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(&fakeUseCase{err: tt.err}, tt.body, tt.caller)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				var body map[string]string
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
				assert.Equal(t, tt.wantError, body["error"])
			}
		})
	}
}
