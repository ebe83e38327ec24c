package create_appointment

import (
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if !req.Caller.IsValid() {
		return fmt.Errorf("%w: caller is required", ErrInvalidInput)
	}

	if req.PatientID <= 0 {
		return fmt.Errorf("%w: patientID must be positive", ErrInvalidInput)
	}

	if req.DoctorID <= 0 {
		return fmt.Errorf("%w: doctorID must be positive", ErrInvalidInput)
	}

	if req.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: dateTime is required", ErrInvalidInput)
	}

	// Слоты задаются с точностью до минуты, иначе уникальный индекс не поймает дубль
	if req.ScheduledAt.Second() != 0 || req.ScheduledAt.Nanosecond() != 0 {
		return fmt.Errorf("%w: dateTime must not contain seconds", ErrInvalidInput)
	}

	if req.Notes != nil && utf8.RuneCountInString(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must be at most %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// authorize проверяет, что не-администратор записывает только себя
func authorize(caller domain.Caller, patientID int64) error {
	if caller.IsAdmin() {
		return nil
	}
	if caller.UserID != patientID {
		return ErrAccessDenied
	}
	return nil
}
