package replace_schedule

import "errors"

var (
	// ErrDoctorNotFound возвращается, когда врач не найден
	ErrDoctorNotFound = errors.New("replace_schedule: doctor not found")

	// ErrAccessDenied возвращается, когда вызывающий не может менять расписание этого врача
	ErrAccessDenied = errors.New("replace_schedule: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("replace_schedule: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("replace_schedule: internal error")
)
