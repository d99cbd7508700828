package models

import (
	"time"

	"gorm.io/datatypes"
)

// Booking lifecycle. New bookings start out pending; cancelled bookings no
// longer occupy their rooms.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking holds one or more rooms for the half-open interval
// [OccupiedFrom, OccupiedTill). Both instants are UTC.
type Booking struct {
	Base

	Adults   int `gorm:"default:1" json:"adults"`
	Children int `gorm:"default:0" json:"children"`

	RoomService bool `gorm:"column:room_service" json:"roomService"`
	Breakfast   bool `json:"breakfast"`
	Dinner      bool `json:"dinner"`

	TotalPrice float64 `gorm:"column:total_price" json:"totalPrice"`

	OccupiedFrom time.Time `gorm:"column:occupied_from;index" json:"occupiedFrom"`
	OccupiedTill time.Time `gorm:"column:occupied_till;index" json:"occupiedTill"`

	Status string `gorm:"size:32;default:pending" json:"status"`

	UserID string `gorm:"column:user_id;size:36;index" json:"userId"`
	User   User   `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`

	// Optional list of accompanying guest names, stored as a JSON array.
	GuestNames datatypes.JSON `gorm:"column:guest_names" json:"guestNames,omitempty"`

	Rooms []BookingRoom `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"rooms,omitempty"`
}
