package identity

import (
	"time"

	"internboard/internal/common"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCompany Role = "company"
	RoleStudent Role = "student"
)

// Identity is a role-tagged account. Role is carried as data, not as a type
// hierarchy: access decisions are plain comparisons on this value.
type Identity struct {
	ID           common.UUID `json:"id"`
	Email        string      `json:"email"`
	Role         Role        `json:"role"`
	PasswordHash string      `json:"-"`
	CompanyName  string      `json:"company_name,omitempty"`
	IsApproved   bool        `json:"is_approved,omitempty"`
	CVURL        string      `json:"cv_url,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Actor is the verified identity attached to a request by the auth
// middleware. It is the only identity value downstream code may trust;
// identity fields arriving in request payloads are never consulted.
type Actor struct {
	ID   common.UUID
	Role Role
}

func (a Actor) IsAdmin() bool   { return a.Role == RoleAdmin }
func (a Actor) IsCompany() bool { return a.Role == RoleCompany }
func (a Actor) IsStudent() bool { return a.Role == RoleStudent }
