package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на подтверждение или завершение записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetDoctorAppointmentsRequest запрос на получение записей врача
type GetDoctorAppointmentsRequest struct {
	DoctorID         int64
	Date             *time.Time // Календарная дата (опционально)
	Status           *string    // Фильтр по статусу (опционально)
	IncludeCancelled bool
}

// GetAppointmentsRequest запрос администратора на список всех записей
type GetAppointmentsRequest struct {
	Status   *string    // Фильтр по статусу (опционально)
	DateFrom *time.Time // Первая календарная дата, включительно (опционально)
	DateTo   *time.Time // Последняя календарная дата, включительно (опционально)
}

// UpdateNotesRequest запрос на изменение комментария к записи
type UpdateNotesRequest struct {
	Notes *string `json:"notes"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID        int64     `json:"id"`
	PatientID int64     `json:"patientId"`
	DoctorID  int64     `json:"doctorId"`
	DateTime  time.Time `json:"dateTime"`
	Date      string    `json:"date"` // "2025-03-10" по времени клиники
	Time      string    `json:"time"` // "10:30" по времени клиники
	Status    string    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO; дата и время показываются в поясе loc
func FromDomainAppointment(a *domain.Appointment, loc *time.Location) *AppointmentResponse {
	if a == nil {
		return nil
	}

	local := a.ScheduledAt.In(loc)

	return &AppointmentResponse{
		ID:        a.ID,
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		DateTime:  local,
		Date:      local.Format(domain.DateFormat),
		Time:      local.Format(domain.TimeFormat),
		Status:    string(a.Status),
		Notes:     a.Notes,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment, loc *time.Location) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		if item := FromDomainAppointment(a, loc); item != nil {
			resp.Appointments = append(resp.Appointments, *item)
		}
	}

	return resp
}
