package create_appointment

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	PatientID int64   `json:"patientId"`
	DoctorID  int64   `json:"doctorId"`
	DateTime  string  `json:"dateTime"` // "2025-03-10T10:30" по времени клиники или RFC3339
	Notes     *string `json:"notes,omitempty"`
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	Appointment *models.AppointmentResponse `json:"appointment"`
}

// ParseDateTime разбирает время приема. Без смещения время считается временем клиники.
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(domain.DateTimeFormat, value, loc); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(caller domain.Caller, loc *time.Location) (*createAppointment.Request, error) {
	scheduledAt, err := ParseDateTime(r.DateTime, loc)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		Caller:      caller,
		PatientID:   r.PatientID,
		DoctorID:    r.DoctorID,
		ScheduledAt: scheduledAt,
		Notes:       r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response, loc *time.Location) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		Appointment: models.FromDomainAppointment(&domain.Appointment{
			ID:          resp.ID,
			PatientID:   resp.PatientID,
			DoctorID:    resp.DoctorID,
			ScheduledAt: resp.ScheduledAt,
			Status:      domain.AppointmentStatus(resp.Status),
			Notes:       resp.Notes,
			CreatedAt:   resp.CreatedAt,
			UpdatedAt:   resp.UpdatedAt,
		}, loc),
	}
}
