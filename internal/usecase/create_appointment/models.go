package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	Caller      domain.Caller // Кто выполняет запрос
	PatientID   int64         // ID пациента
	DoctorID    int64         // ID врача
	ScheduledAt time.Time     // Дата и время приема (с точностью до минуты)
	Notes       *string       // Комментарий (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID          int64
	PatientID   int64
	DoctorID    int64
	ScheduledAt time.Time
	Status      string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
