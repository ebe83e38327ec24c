package create_absence

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/middleware"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/absences"
	"github.com/m04kA/SMC-AppointmentService/internal/service/absences/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	err error
	got *models.CreateAbsenceRequest
}

func (f *fakeService) Create(_ context.Context, doctorID int64, req *models.CreateAbsenceRequest, _ domain.Caller) (*models.AbsenceResponse, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AbsenceResponse{ID: 9, DoctorID: doctorID, StartDate: req.StartDate, EndDate: req.EndDate, Reason: req.Reason}, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/doctors/{doctorId}/absences", NewHandler(svc, logger.NewNop()).Handle)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/doctors/3/absences", strings.NewReader(body))
	r = r.WithContext(middleware.WithCaller(r.Context(), domain.Caller{UserID: 1, Role: domain.RoleAdmin}))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, r)
	return rec
}

func TestHandler(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"startDate":"2025-07-01","endDate":"2025-07-15","reason":"Vacaciones"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Vacaciones", svc.got.Reason)
	assert.Contains(t, rec.Body.String(), `"id":9`)

	body := `{"startDate":"2025-07-01","endDate":"2025-07-15","reason":"x"}`
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, `{"startDate":`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{err: absences.ErrInvalidInput}, body).Code)
	assert.Equal(t, http.StatusForbidden, serve(&fakeService{err: absences.ErrAccessDenied}, body).Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: absences.ErrDoctorNotFound}, body).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: absences.ErrInternal}, body).Code)
}
