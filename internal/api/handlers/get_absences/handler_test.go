package get_absences

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AppointmentService/internal/service/absences"
	"github.com/m04kA/SMC-AppointmentService/internal/service/absences/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeService struct {
	err error
}

func (f *fakeService) ListByDoctor(_ context.Context, doctorID int64) (*models.AbsenceListResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AbsenceListResponse{Absences: []models.AbsenceResponse{{ID: 1, DoctorID: doctorID, Reason: "Vacaciones"}}}, nil
}

func serve(svc *fakeService, url string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/doctors/{doctorId}/absences", NewHandler(svc, logger.NewNop()).Handle)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandler(t *testing.T) {
	rec := serve(&fakeService{}, "/api/v1/doctors/3/absences")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reason":"Vacaciones"`)

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "/api/v1/doctors/abc/absences").Code)
	assert.Equal(t, http.StatusNotFound, serve(&fakeService{err: absences.ErrDoctorNotFound}, "/api/v1/doctors/3/absences").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: absences.ErrInternal}, "/api/v1/doctors/3/absences").Code)
}
