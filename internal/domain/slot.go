package domain

import "github.com/m04kA/SMC-AppointmentService/pkg/types"

// BlockReason explains why a day has no bookable slots at all
type BlockReason string

const (
	BlockReasonAbsence       BlockReason = "absence"
	BlockReasonNonWorkingDay BlockReason = "non_working_day"
)

// DayBlock is the "not available today" outcome of the availability calculation.
// It is a normal result, not an error.
type DayBlock struct {
	Reason  BlockReason
	Message string
}

// Availability is the result of computing free slots for one doctor and day.
// Exactly one of Blocked / Slots is meaningful: when Blocked is nil, Slots may be empty
// (the doctor works that day but every slot is taken).
type Availability struct {
	Slots   []types.TimeString
	Blocked *DayBlock
}

// IsBlocked returns true if the whole day is unavailable
func (a *Availability) IsBlocked() bool {
	return a.Blocked != nil
}
