package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Settings параметры расчета слотов
type Settings struct {
	SlotDurationMinutes int            // Шаг сетки слотов
	Location            *time.Location // Часовой пояс клиники
}

// Request модель запроса на получение свободных слотов
type Request struct {
	DoctorID int64     // ID врача
	Date     time.Time // Календарная дата (время суток и пояс не учитываются)
}

// Response результат расчета: либо список слотов (возможно пустой), либо блокировка всего дня
type Response struct {
	DoctorID int64
	Date     time.Time
	Slots    []types.TimeString
	Blocked  *domain.DayBlock
}

// IsBlocked возвращает true, если день недоступен целиком
func (r *Response) IsBlocked() bool {
	return r.Blocked != nil
}
