package models

// Role names, seeded with fixed ids "1".."4" so tokens and seed data stay
// stable across environments.
const (
	RoleUser          = "User"
	RoleCleaningStaff = "CleaningStaff"
	RoleReception     = "Reception"
	RoleAdmin         = "Admin"
)

type Role struct {
	Base

	Name        string `gorm:"size:100;uniqueIndex" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	Users []User `gorm:"foreignKey:RoleID" json:"users,omitempty"`
}

// StaffRoles are the roles allowed onto the management endpoints.
func StaffRoles() []string {
	return []string{RoleAdmin, RoleReception}
}
