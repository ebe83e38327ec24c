package replace_schedule

import "github.com/m04kA/SMC-AppointmentService/internal/domain"

// Rule правило расписания во входном формате
type Rule struct {
	DayOfWeek int    // 0 = воскресенье ... 6 = суббота
	StartTime string // HH:MM
	EndTime   string // HH:MM
}

// Request модель запроса на замену расписания врача
type Request struct {
	Caller   domain.Caller
	DoctorID int64
	Rules    []Rule // Пустой список означает, что врач не принимает ни в один день
}

// Response результат замены
type Response struct {
	DoctorID int64
	Deleted  int64 // Сколько старых правил удалено
	Created  int   // Сколько новых правил сохранено
}
