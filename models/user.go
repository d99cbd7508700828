package models

import "time"

type User struct {
	Base

	Email          string     `gorm:"uniqueIndex;size:255" json:"email"`
	Username       string     `gorm:"size:150" json:"username"`
	HashedPassword string     `gorm:"size:255" json:"-"`
	LastLogin      *time.Time `gorm:"column:last_login" json:"lastLogin,omitempty"`

	RoleID string `gorm:"column:role_id;size:36;index" json:"roleId"`
	Role   Role   `gorm:"foreignKey:RoleID;references:ID" json:"role,omitempty"`

	Bookings []Booking `gorm:"foreignKey:UserID" json:"bookings,omitempty"`
}
