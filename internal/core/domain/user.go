package domain

import "time"

// Role classifies what an authenticated user is allowed to do.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleOrderUploader  Role = "order_uploader"
	RolePatternMaker   Role = "pattern_maker"
	RolePatternChecker Role = "pattern_checker"
	RoleGeneralUser    Role = "general_user"
)

// Roles lists every assignable role.
var Roles = []Role{RoleAdmin, RoleOrderUploader, RolePatternMaker, RolePatternChecker, RoleGeneralUser}

// ValidRole reports whether r is one of the assignable roles.
func ValidRole(r Role) bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User models an authenticated actor in the system.
type User struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	PasswordHash     string    `json:"-"`
	Role             Role      `json:"role"`
	IsApproved       bool      `json:"is_approved"`
	IsActive         bool      `json:"is_active"`
	IsEmailVerified  bool      `json:"is_email_verified"`
	VerificationCode string    `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
}

// CanReadOrders reports whether the user may list or fetch orders.
// Admins always may; everyone else must have been approved by an admin first.
func (u *User) CanReadOrders() bool {
	return u.Role == RoleAdmin || u.IsApproved
}
