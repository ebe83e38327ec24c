package replace_schedule

import (
	"context"

	replaceSchedule "github.com/m04kA/SMC-AppointmentService/internal/usecase/replace_schedule"
)

type ReplaceScheduleUseCase interface {
	Execute(ctx context.Context, req *replaceSchedule.Request) (*replaceSchedule.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
