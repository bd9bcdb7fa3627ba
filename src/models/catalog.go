package models

import "rbs/src/types"

// Catalog entities are tenant-scoped and soft-deleted. The booking core only
// reads them (id + restaurant + enabled) to validate existence before
// snapshotting; edits happen through the catalog handlers.

type Amenity struct {
	ID           string              `gorm:"primarykey;type:uuid" json:"ame_id"`
	RestaurantID string              `gorm:"size:24;index;not null" json:"restaurant_id"`
	Name         string              `gorm:"size:255;not null" json:"name"`
	Price        int64               `json:"price"`
	Note         string              `gorm:"size:255" json:"note,omitempty"`
	Description  string              `gorm:"type:text" json:"description,omitempty"`
	Status       types.CatalogStatus `gorm:"size:16;default:'enable'" json:"status"`

	types.Timestamps
}

func (Amenity) TableName() string {
	return "amenities"
}

type MenuItem struct {
	ID           string              `gorm:"primarykey;type:uuid" json:"mitems_id"`
	RestaurantID string              `gorm:"size:24;index;not null" json:"restaurant_id"`
	CategoryID   *string             `gorm:"type:uuid" json:"category_id,omitempty"`
	Name         string              `gorm:"size:255;not null" json:"name"`
	Price        int64               `json:"price"`
	Image        string              `gorm:"type:text" json:"image,omitempty"`
	Note         string              `gorm:"size:255" json:"note,omitempty"`
	Description  string              `gorm:"type:text" json:"description,omitempty"`
	Status       types.CatalogStatus `gorm:"size:16;default:'enable'" json:"status"`

	Category *MenuCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	types.Timestamps
}

func (MenuItem) TableName() string {
	return "menu_items"
}

type MenuCategory struct {
	ID           string              `gorm:"primarykey;type:uuid" json:"mcat_id"`
	RestaurantID string              `gorm:"size:24;index;not null" json:"restaurant_id"`
	Name         string              `gorm:"size:255;not null" json:"name"`
	Description  string              `gorm:"type:text" json:"description,omitempty"`
	Status       types.CatalogStatus `gorm:"size:16;default:'enable'" json:"status"`

	types.Timestamps
}

func (MenuCategory) TableName() string {
	return "menu_categories"
}

type Room struct {
	ID           string              `gorm:"primarykey;type:uuid" json:"room_id"`
	RestaurantID string              `gorm:"size:24;index;not null" json:"restaurant_id"`
	Name         string              `gorm:"size:255;not null" json:"name"`
	Seats        uint                `json:"seats,omitempty"`
	BasePrice    int64               `json:"base_price"`
	DepositPrice int64               `json:"deposit_price"`
	Description  string              `gorm:"type:text" json:"description,omitempty"`
	Status       types.CatalogStatus `gorm:"size:16;default:'enable'" json:"status"`

	Bookings []BookRoom `gorm:"foreignKey:RoomID" json:"bookings,omitempty"`

	types.Timestamps
}

func (Room) TableName() string {
	return "rooms"
}
