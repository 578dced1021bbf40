package entity

import "time"

type UserRole string

const (
	RoleFaculty UserRole = "Faculty"
	RoleAdmin   UserRole = "admin"
)

// IsAssignable reports whether the role can be given to a user
// through the changeUserRole command.
func (r UserRole) IsAssignable() bool {
	return r == RoleFaculty || r == RoleAdmin
}

// User mirrors a profile document. The ID is the auth provider UID,
// not a locally generated one.
type User struct {
	ID          string    `db:"id"`
	DisplayName string    `db:"display_name"`
	Email       string    `db:"email"`
	Role        UserRole  `db:"role"`
	FCMTokens   []string  `db:"fcm_tokens"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
