package models

import "time"

// AdminUser is a back-office account allowed to review applications
type AdminUser struct {
	ID           int64      `json:"id" db:"id" example:"1"`
	Email        string     `json:"email" db:"email" example:"admin@bathudi.co.za"`
	PasswordHash string     `json:"-" db:"password_hash"`
	FullName     string     `json:"full_name" db:"full_name" example:"Thabo Admin"`
	Role         RoleType   `json:"role" db:"role" example:"ADMIN"`
	IsActive     bool       `json:"is_active" db:"is_active" example:"true"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" db:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
}
