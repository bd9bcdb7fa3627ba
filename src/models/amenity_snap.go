package models

import "rbs/src/types"

// AmenitySnap freezes an amenity's priced attributes at the moment a booking
// includes it. Later edits to the live amenity never reach this row.
type AmenitySnap struct {
	ID           string `gorm:"primarykey;type:uuid" json:"ame_snap_id"`
	BookRoomID   string `gorm:"type:uuid;index;not null" json:"book_room_id"`
	RestaurantID string `gorm:"size:24;not null" json:"restaurant_id"`
	Name         string `gorm:"size:255" json:"name"`
	Price        int64  `json:"price"`
	Note         string `gorm:"size:255" json:"note,omitempty"`
	Description  string `gorm:"type:text" json:"description,omitempty"`
	Quantity     int    `json:"quantity"`

	BookRoom *BookRoom `gorm:"foreignKey:BookRoomID" json:"-"`

	types.Timestamps
}

func (AmenitySnap) TableName() string {
	return "amenity_snaps"
}
