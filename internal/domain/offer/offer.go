package offer

import (
	"time"

	"internboard/internal/common"
)

type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
	StatusClosed Status = "closed"
)

type Offer struct {
	ID          common.UUID `json:"id"`
	CompanyID   common.UUID `json:"company_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Location    string      `json:"location"`
	Tags        []string    `json:"tags,omitempty"`
	Deadline    *time.Time  `json:"deadline,omitempty"`
	Status      Status      `json:"status"`
	PostedAt    time.Time   `json:"posted_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
