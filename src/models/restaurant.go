package models

import "rbs/src/types"

// Restaurant is the tenant. Account management lives in a separate service;
// this row only anchors catalog and booking ownership.
type Restaurant struct {
	ID    string `gorm:"primarykey;size:24" json:"restaurant_id"`
	Name  string `gorm:"size:255;not null" json:"name"`
	Email string `gorm:"size:255" json:"email,omitempty"`
	Phone string `gorm:"size:255" json:"phone,omitempty"`

	types.Timestamps
}

func (Restaurant) TableName() string {
	return "restaurants"
}
