package models

// RoleType defines the role carried in access tokens
type RoleType string

const (
	RoleAdmin RoleType = "ADMIN"
	RoleStaff RoleType = "STAFF"
)
