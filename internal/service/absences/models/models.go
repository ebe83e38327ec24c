package models

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// CreateAbsenceRequest запрос на создание периода отсутствия
type CreateAbsenceRequest struct {
	StartDate string `json:"startDate"` // "2025-07-01"
	EndDate   string `json:"endDate"`   // "2025-07-15", включительно
	Reason    string `json:"reason"`
}

// AbsenceResponse период отсутствия
type AbsenceResponse struct {
	ID        int64     `json:"id"`
	DoctorID  int64     `json:"doctorId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// AbsenceListResponse список периодов отсутствия
type AbsenceListResponse struct {
	Absences []AbsenceResponse `json:"absences"`
}

// FromDomainAbsence конвертирует domain модель в DTO
func FromDomainAbsence(a *domain.AbsencePeriod) *AbsenceResponse {
	if a == nil {
		return nil
	}
	return &AbsenceResponse{
		ID:        a.ID,
		DoctorID:  a.DoctorID,
		StartDate: a.StartDate.Format(domain.DateFormat),
		EndDate:   a.EndDate.Format(domain.DateFormat),
		Reason:    a.Reason,
		CreatedAt: a.CreatedAt,
	}
}

// FromDomainAbsenceList конвертирует список domain моделей в DTO
func FromDomainAbsenceList(absences []*domain.AbsencePeriod) *AbsenceListResponse {
	resp := &AbsenceListResponse{Absences: make([]AbsenceResponse, 0, len(absences))}
	for _, a := range absences {
		resp.Absences = append(resp.Absences, *FromDomainAbsence(a))
	}
	return resp
}
