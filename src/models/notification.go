package models

import (
	"rbs/src/types"

	"github.com/google/uuid"
)

// Notification is the persisted copy of a staff notification. The broker
// message carries the same payload; the row survives broker outages.
type Notification struct {
	ID           uuid.UUID    `gorm:"primarykey;type:uuid" json:"id"`
	RestaurantID string       `gorm:"size:24;index;not null" json:"restaurant_id"`
	Title        string       `json:"title"`
	Content      string       `json:"content"`
	Type         string       `json:"type"`
	Metadata     *types.JSONB `gorm:"type:text" json:"metadata,omitempty"`
	Audience     string       `gorm:"size:64;default:'all_account'" json:"audience"`

	types.Timestamps
}

func (Notification) TableName() string {
	return "notifications"
}
