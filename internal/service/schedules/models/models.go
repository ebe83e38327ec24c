package models

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// RuleResponse правило расписания
type RuleResponse struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ScheduleResponse недельное расписание врача
type ScheduleResponse struct {
	DoctorID int64          `json:"doctorId"`
	Rules    []RuleResponse `json:"rules"`
}

// FromDomainRules конвертирует правила в DTO
func FromDomainRules(doctorID int64, rules []*domain.WeeklyScheduleRule) *ScheduleResponse {
	resp := &ScheduleResponse{
		DoctorID: doctorID,
		Rules:    make([]RuleResponse, 0, len(rules)),
	}

	for _, r := range rules {
		resp.Rules = append(resp.Rules, RuleResponse{
			ID:        r.ID,
			DayOfWeek: int(r.DayOfWeek),
			StartTime: r.StartTime.String(),
			EndTime:   r.EndTime.String(),
		})
	}

	return resp
}
