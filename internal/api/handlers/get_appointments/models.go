package get_appointments

import (
	"net/url"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

// ToServiceRequest создает запрос сервиса из query параметров status, from, to
func ToServiceRequest(query url.Values) (*models.GetAppointmentsRequest, error) {
	req := &models.GetAppointmentsRequest{}

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.DateFrom = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, err
		}
		req.DateTo = &to
	}

	return req, nil
}
