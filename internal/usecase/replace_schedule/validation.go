package replace_schedule

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// validateRequest валидирует запрос и переводит правила в доменную модель
func validateRequest(req *Request) ([]*domain.WeeklyScheduleRule, error) {
	if !req.Caller.IsValid() {
		return nil, fmt.Errorf("%w: caller is required", ErrInvalidInput)
	}

	if req.DoctorID <= 0 {
		return nil, fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if len(req.Rules) > domain.MaxRulesPerSchedule {
		return nil, fmt.Errorf("%w: at most %d rules allowed", ErrInvalidInput, domain.MaxRulesPerSchedule)
	}

	rules := make([]*domain.WeeklyScheduleRule, 0, len(req.Rules))
	for i, r := range req.Rules {
		if r.DayOfWeek < int(time.Sunday) || r.DayOfWeek > int(time.Saturday) {
			return nil, fmt.Errorf("%w: rules[%d]: %v", ErrInvalidInput, i, domain.ErrInvalidDayOfWeek)
		}

		start, err := types.NewTimeStringFromString(r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("%w: rules[%d].startTime: %v", ErrInvalidInput, i, err)
		}

		end, err := types.NewTimeStringFromString(r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: rules[%d].endTime: %v", ErrInvalidInput, i, err)
		}

		rule := &domain.WeeklyScheduleRule{
			DoctorID:  req.DoctorID,
			DayOfWeek: time.Weekday(r.DayOfWeek),
			StartTime: start,
			EndTime:   end,
		}
		if err := rule.Validate(); err != nil {
			return nil, fmt.Errorf("%w: rules[%d]: %v", ErrInvalidInput, i, err)
		}

		rules = append(rules, rule)
	}

	return rules, nil
}
