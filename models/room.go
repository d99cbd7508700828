package models

type Room struct {
	Base

	Beds      int `json:"beds"`
	KingBeds  int `gorm:"column:king_beds" json:"kingBeds"`
	QueenBeds int `gorm:"column:queen_beds" json:"queenBeds"`
	TwinBeds  int `gorm:"column:twin_beds" json:"twinBeds"`

	Size      int  `json:"size"`
	TV        int  `gorm:"column:tv" json:"tv"`
	Bathroom  bool `json:"bathroom"`
	WiFi      bool `gorm:"column:wifi" json:"wifi"`
	Fridge    bool `json:"fridge"`
	Stove     bool `json:"stove"`
	Oven      bool `json:"oven"`
	Microwave bool `json:"microwave"`

	// Price is per night.
	Price       float64 `json:"price"`
	Description string  `gorm:"type:text" json:"description"`
	Clean       bool    `gorm:"default:true" json:"clean"`
}
