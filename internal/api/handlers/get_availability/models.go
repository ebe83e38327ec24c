package get_availability

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	getAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/get_availability"
)

// AvailabilityResponse HTTP response model.
// Для заблокированного дня заполнены Error и Reason, а Slots пустой.
type AvailabilityResponse struct {
	DoctorID int64    `json:"doctorId"`
	Date     string   `json:"date"`
	Slots    []string `json:"slots"`
	Error    string   `json:"error,omitempty"`
	Reason   string   `json:"reason,omitempty"`
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(doctorID int64, dateStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		DoctorID: doctorID,
		Date:     date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	result := &AvailabilityResponse{
		DoctorID: resp.DoctorID,
		Date:     resp.Date.Format(domain.DateFormat),
		Slots:    make([]string, 0, len(resp.Slots)),
	}

	if resp.IsBlocked() {
		result.Reason = string(resp.Blocked.Reason)
		result.Error = blockedMessage(resp.Blocked)
		return result
	}

	for _, slot := range resp.Slots {
		result.Slots = append(result.Slots, slot.String())
	}

	return result
}

func blockedMessage(block *domain.DayBlock) string {
	if block.Message != "" {
		return block.Message
	}
	switch block.Reason {
	case domain.BlockReasonAbsence:
		return msgDoctorAbsent
	default:
		return msgNonWorkingDay
	}
}
