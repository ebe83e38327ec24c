package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// generateSlots строит свободные слоты по правилам дня.
// Правила обходятся в порядке выборки, внутри правила слоты идут с шагом slotDuration,
// пока кандидат строго меньше конца правила. Кандидат пропускается, если его HH:MM занято.
func generateSlots(rules []*domain.WeeklyScheduleRule, slotDuration int, busy map[types.TimeString]struct{}) []types.TimeString {
	slots := make([]types.TimeString, 0)

	for _, rule := range rules {
		candidate := rule.StartTime

		for candidate.IsBefore(rule.EndTime) {
			if _, taken := busy[candidate]; !taken {
				slots = append(slots, candidate)
			}

			next, err := candidate.AddMinutes(slotDuration)
			if err != nil {
				// Следующий слот перешел бы через полночь
				break
			}
			candidate = next
		}
	}

	return slots
}

// busyTimes собирает HH:MM активных записей в часовом поясе клиники
func busyTimes(appointments []*domain.Appointment, loc *time.Location) map[types.TimeString]struct{} {
	busy := make(map[types.TimeString]struct{}, len(appointments))

	for _, appointment := range appointments {
		if !appointment.IsActive() {
			continue
		}
		busy[types.NewTimeString(appointment.ScheduledAt.In(loc))] = struct{}{}
	}

	return busy
}

// startOfDay возвращает полночь календарной даты date в поясе loc
func startOfDay(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
