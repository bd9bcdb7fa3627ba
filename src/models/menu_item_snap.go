package models

import "rbs/src/types"

// MenuItemSnap is the menu-item counterpart of AmenitySnap.
type MenuItemSnap struct {
	ID           string `gorm:"primarykey;type:uuid" json:"mitems_snap_id"`
	BookRoomID   string `gorm:"type:uuid;index;not null" json:"book_room_id"`
	RestaurantID string `gorm:"size:24;not null" json:"restaurant_id"`
	Name         string `gorm:"size:255" json:"name"`
	Price        int64  `json:"price"`
	Image        string `gorm:"type:text" json:"image,omitempty"`
	Note         string `gorm:"size:255" json:"note,omitempty"`
	Description  string `gorm:"type:text" json:"description,omitempty"`
	Quantity     int    `json:"quantity"`

	BookRoom *BookRoom `gorm:"foreignKey:BookRoomID" json:"-"`

	types.Timestamps
}

func (MenuItemSnap) TableName() string {
	return "menu_item_snaps"
}
