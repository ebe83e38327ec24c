package replace_schedule

import (
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	replaceSchedule "github.com/m04kA/SMC-AppointmentService/internal/usecase/replace_schedule"
)

// RuleRequest правило недельного расписания
type RuleRequest struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "13:00"
}

// ReplaceScheduleRequest HTTP request model. Пустой список правил допустим.
type ReplaceScheduleRequest struct {
	Rules []RuleRequest `json:"rules"`
}

// ReplaceScheduleResponse HTTP response model
type ReplaceScheduleResponse struct {
	Success bool  `json:"success"`
	Deleted int64 `json:"deleted"`
	Created int   `json:"created"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ReplaceScheduleRequest) ToUseCaseRequest(caller domain.Caller, doctorID int64) *replaceSchedule.Request {
	rules := make([]replaceSchedule.Rule, 0, len(r.Rules))
	for _, rule := range r.Rules {
		rules = append(rules, replaceSchedule.Rule{
			DayOfWeek: rule.DayOfWeek,
			StartTime: rule.StartTime,
			EndTime:   rule.EndTime,
		})
	}

	return &replaceSchedule.Request{
		Caller:   caller,
		DoctorID: doctorID,
		Rules:    rules,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *replaceSchedule.Response) *ReplaceScheduleResponse {
	return &ReplaceScheduleResponse{
		Success: true,
		Deleted: resp.Deleted,
		Created: resp.Created,
	}
}
