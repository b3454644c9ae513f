package domain

import "time"

// Role values recognised at signup and login.
const (
	RoleUser      = "user"
	RoleTrainer   = "trainer"
	RoleInstitute = "institute"
)

// ValidRole reports whether r is one of the known roles.
func ValidRole(r string) bool {
	switch r {
	case RoleUser, RoleTrainer, RoleInstitute:
		return true
	}
	return false
}

// Account represents a registered marketplace member.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
