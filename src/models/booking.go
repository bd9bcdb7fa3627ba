package models

import (
	"rbs/src/types"
	"time"
)

// BookRoom is one guest reservation request. The status column drives the
// lifecycle; DetailHistory is the append-only audit trail serialized into a
// single text column. Snapshots are owned by the booking and go away with it.
type BookRoom struct {
	ID           string `gorm:"primarykey;type:uuid" json:"bkr_id"`
	RestaurantID string `gorm:"size:24;index;not null" json:"restaurant_id"`
	RoomID       *string `gorm:"size:36" json:"room_id,omitempty"`
	GuestID      string  `gorm:"size:255;index" json:"guest_id,omitempty"`
	GuestName    string  `gorm:"size:255" json:"guest_name,omitempty"`
	Email        string  `gorm:"size:255" json:"email,omitempty"`
	Phone        string  `gorm:"size:255" json:"phone,omitempty"`

	TimeStart time.Time  `json:"time_start"`
	TimeEnd   time.Time  `json:"time_end"`
	CheckIn   *time.Time `json:"check_in,omitempty"`
	CheckOut  *time.Time `json:"check_out,omitempty"`

	Note    string `gorm:"size:255" json:"note,omitempty"`
	NoteRes string `gorm:"size:255" json:"note_res,omitempty"`

	BasePrice    *int64 `json:"base_price,omitempty"`
	DepositPrice *int64 `json:"deposit_price,omitempty"`
	PlusPrice    *int64 `json:"plus_price,omitempty"`

	Status        types.BookingStatus `gorm:"size:64;index;default:'NEW_CREATED'" json:"status"`
	DetailHistory types.HistoryLog    `gorm:"type:text" json:"detail_history"`
	ReasonCancel  string              `gorm:"size:255" json:"reason_cancel,omitempty"`

	Feedback string          `gorm:"size:255" json:"feedback,omitempty"`
	Reply    string          `gorm:"size:255" json:"reply,omitempty"`
	Star     *int            `json:"star,omitempty"`
	FeedView types.FeedView  `gorm:"size:16;default:'disable'" json:"feed_view,omitempty"`

	Amenities []AmenitySnap  `gorm:"foreignKey:BookRoomID;constraint:OnDelete:CASCADE" json:"amenities,omitempty"`
	MenuItems []MenuItemSnap `gorm:"foreignKey:BookRoomID;constraint:OnDelete:CASCADE" json:"menu_items,omitempty"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID" json:"-"`
	Room       *Room       `gorm:"foreignKey:RoomID" json:"room,omitempty"`

	types.Timestamps
}

func (BookRoom) TableName() string {
	return "book_rooms"
}
