package models

// Message is a stored chat message between two users. Delivery/relay is the
// client's concern; the backend only persists and serves them.
type Message struct {
	Base

	SenderID      string  `gorm:"column:sender_id;size:36;index" json:"senderId"`
	DestinationID *string `gorm:"column:destination_id;size:36;index" json:"destinationId,omitempty"`
	Content       string  `gorm:"type:text" json:"content"`

	Sender      User  `gorm:"foreignKey:SenderID;references:ID" json:"sender,omitempty"`
	Destination *User `gorm:"foreignKey:DestinationID;references:ID" json:"destination,omitempty"`
}
