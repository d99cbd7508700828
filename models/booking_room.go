package models

// BookingRoom links one booking to one of its rooms. Rows are only ever
// created inside the booking-creation transaction and are removed by the
// database cascade when either parent goes away.
type BookingRoom struct {
	Base

	BookingID string `gorm:"column:booking_id;size:36;index" json:"bookingId"`
	RoomID    string `gorm:"column:room_id;size:36;index" json:"roomId"`

	Booking Booking `gorm:"foreignKey:BookingID;references:ID;constraint:OnDelete:CASCADE" json:"booking,omitempty"`
	Room    Room    `gorm:"foreignKey:RoomID;references:ID;constraint:OnDelete:CASCADE" json:"room,omitempty"`
}

func (BookingRoom) TableName() string {
	return "bookings_rooms"
}
