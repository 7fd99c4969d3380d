package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Operator roles, from least to most privileged.
const (
	RoleAttendant     = "attendant"
	RoleSupervisor    = "supervisor"
	RoleSecurityChief = "security_chief"
	RoleAdmin         = "admin"
)

// roleCapabilities maps each role to the step-up approval capabilities
// it holds. Roles are cumulative: a supervisor can approve everything
// an attendant can.
var roleCapabilities = map[string][]Capability{
	RoleAttendant:     {CapabilityLowRiskApproval},
	RoleSupervisor:    {CapabilityLowRiskApproval, CapabilityMediumRiskApproval},
	RoleSecurityChief: {CapabilityLowRiskApproval, CapabilityMediumRiskApproval, CapabilityHighRiskApproval},
	RoleAdmin:         {CapabilityLowRiskApproval, CapabilityMediumRiskApproval, CapabilityHighRiskApproval},
}

// Operator represents a reception desk user. Operators authenticate
// for their admin session and re-authenticate for step-up approvals.
type Operator struct {
	ID                  uint       `json:"id" gorm:"primaryKey"`
	UUID                string     `json:"uuid" gorm:"uniqueIndex"`
	Email               string     `json:"email" gorm:"uniqueIndex"`
	Name                string     `json:"name"`
	PasswordHash        string     `json:"-"` // Never serialize password hash
	Role                string     `json:"role" gorm:"default:'attendant'"`
	Enabled             bool       `json:"enabled" gorm:"default:true"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	LockedUntil         *time.Time `json:"-"`
	LastLogin           *time.Time `json:"last_login,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// SetPassword hashes and sets the operator's password.
func (o *Operator) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	o.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares the provided password with the stored hash.
func (o *Operator) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(o.PasswordHash), []byte(password))
	return err == nil
}

// Locked reports whether the account is currently locked out after
// repeated failed logins.
func (o *Operator) Locked(now time.Time) bool {
	return o.LockedUntil != nil && o.LockedUntil.After(now)
}

// HasCapability reports whether the operator's role grants the given
// approval capability. Unknown roles hold nothing.
func (o *Operator) HasCapability(cap Capability) bool {
	for _, c := range roleCapabilities[o.Role] {
		if c == cap {
			return true
		}
	}
	return false
}
