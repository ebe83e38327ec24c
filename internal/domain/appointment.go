package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrUnknownStatus is returned when a status string is not one of the declared values
var ErrUnknownStatus = errors.New("unknown appointment status")

// AppointmentStatus represents the status of an appointment
//
// State transitions:
//
//	PENDING → CONFIRMED → COMPLETED
//	PENDING → CANCELLED
//	CONFIRMED → CANCELLED
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDING"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCancelled AppointmentStatus = "CANCELLED"
	StatusCompleted AppointmentStatus = "COMPLETED"
)

var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
	StatusCancelled: {},
	StatusCompleted: {},
}

// ParseAppointmentStatus converts a boundary string into a status, rejecting anything undeclared
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", ErrUnknownStatus
	}
	return status, nil
}

// IsValid returns true for the four declared statuses
func (s AppointmentStatus) IsValid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

// IsTerminal returns true for CANCELLED and COMPLETED
func (s AppointmentStatus) IsTerminal() bool {
	return len(allowedTransitions[s]) == 0
}

// Appointment is a booking of a patient with a doctor at an exact instant
type Appointment struct {
	ID          int64
	PatientID   int64
	DoctorID    int64
	ScheduledAt time.Time
	Status      AppointmentStatus
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the appointment occupies its slot
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanTransitionTo returns true if the status machine allows moving to next
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	for _, s := range allowedTransitions[a.Status] {
		if s == next {
			return true
		}
	}
	return false
}

// NormalizeNotes trims notes; blank notes are stored as NULL
func NormalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// AppointmentsFilter фильтр для выборки записей
type AppointmentsFilter struct {
	DoctorID         *int64
	PatientID        *int64
	From             *time.Time // включительно
	To               *time.Time // не включительно
	Status           *AppointmentStatus
	IncludeCancelled bool
	NewestFirst      bool // сортировка по scheduled_at по убыванию
}
