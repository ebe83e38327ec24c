package domain

import "time"

// Doctor is the scheduling-relevant projection of a doctor profile.
// UserID links the profile to the account used for self-service edits.
type Doctor struct {
	ID        int64
	UserID    int64
	Name      string
	Specialty *string
	CreatedAt time.Time
}

// Patient is the scheduling-relevant projection of a patient account
type Patient struct {
	ID        int64
	Name      string
	Email     *string
	CreatedAt time.Time
}
