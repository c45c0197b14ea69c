// Package auth validates CRM-issued JWTs and enforces the internal-staff
// boundary on gRPC and HTTP transports.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims issued by the CRM gateway.
type Claims struct {
	jwt.RegisteredClaims
	UserID string   `json:"user_id"`
	Email  string   `json:"email,omitempty"`
	Roles  []string `json:"roles"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	for _, r := range c.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// IsInternalStaff reports whether the caller may see scrutiny results: it
// holds at least one staff role and no partner role.
func (c Claims) IsInternalStaff() bool {
	if c.HasRole(RolePartner) {
		return false
	}
	for _, r := range StaffRoles {
		if c.HasRole(r) {
			return true
		}
	}
	return false
}

// Actor is the identifier recorded against writes made by this caller.
func (c Claims) Actor() string {
	if c.UserID != "" {
		return c.UserID
	}
	return c.Subject
}

// Role constants
const (
	RoleAdmin       = "admin"
	RoleSales       = "sales"
	RoleUnderwriter = "underwriter"
	RoleAnalyst     = "analyst"
	RolePartner     = "partner"
)

// StaffRoles are the internal roles allowed to run and read assessments.
var StaffRoles = []string{RoleAdmin, RoleSales, RoleUnderwriter, RoleAnalyst}
