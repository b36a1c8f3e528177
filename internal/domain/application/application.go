package application

import (
	"time"

	"internboard/internal/common"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// IsTerminal reports whether no further status transition is permitted.
func (s Status) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected
}

type Application struct {
	ID          common.UUID `json:"id"`
	OfferID     common.UUID `json:"offer_id"`
	StudentID   common.UUID `json:"student_id"`
	Status      Status      `json:"status"`
	CoverLetter string      `json:"cover_letter,omitempty"`
	// CVURL is snapshotted from the student's profile at apply time; later
	// CV changes do not alter submitted applications.
	CVURL     string    `json:"cv_url,omitempty"`
	AppliedAt time.Time `json:"applied_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
