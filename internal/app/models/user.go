package models

import "time"

// User is an account that can act on the approval workflow. RoleType decides
// which stage (if any) the user may review.
type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"fullName" db:"full_name"`
	RoleType     RoleType  `json:"roleType" db:"role_type"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Actor identifies who is performing a workflow operation: the authenticated
// user's id and role as carried in the JWT claims.
type Actor struct {
	UserID int64
	Role   RoleType
}
