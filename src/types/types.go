package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type JSONB map[string]any

func (a JSONB) Value() (driver.Value, error) {
	valueString, err := json.Marshal(a)
	return string(valueString), err
}
func (a *JSONB) Scan(value any) error {
	b, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("type assertion to []byte failed")
		}
		b = []byte(s)
	}
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	return nil
}

type BookingStatus string

const (
	BOOKING_NEW_CREATED                BookingStatus = "NEW_CREATED"
	BOOKING_OVERTIME_GUEST             BookingStatus = "OVERTIME_GUEST"
	BOOKING_CANCEL_GUEST               BookingStatus = "CANCEL_GUEST"
	BOOKING_WAITING_RESTAURANT         BookingStatus = "WAITING_RESTAURANT"
	BOOKING_RESTAURANT_CONFIRM_DEPOSIT BookingStatus = "RESTAURANT_CONFIRM_DEPOSIT"
	BOOKING_CANCEL_RESTAURANT          BookingStatus = "CANCEL_RESTAURANT"
	BOOKING_RESTAURANT_CONFIRM         BookingStatus = "RESTAURANT_CONFIRM"
	BOOKING_GUEST_CHECK_IN             BookingStatus = "GUEST_CHECK_IN"
	BOOKING_GUEST_CHECK_OUT            BookingStatus = "GUEST_CHECK_OUT"
	BOOKING_GUEST_CHECK_OUT_OVERTIME   BookingStatus = "GUEST_CHECK_OUT_OVERTIME"
	BOOKING_NO_SHOW                    BookingStatus = "NO_SHOW"
	BOOKING_REFUND_DEPOSIT             BookingStatus = "RESTAURANT_REFUND_DEPOSIT"
	BOOKING_REFUND_ONE_THIRD_DEPOSIT   BookingStatus = "RESTAURANT_REFUND_ONE_THIRD"
	BOOKING_REFUND_ONE_TWO_DEPOSIT     BookingStatus = "RESTAURANT_REFUND_ONE_TWO_DEPOSITE"
	BOOKING_NO_DEPOSIT                 BookingStatus = "RESTAURANT_NO_DEPOSIT"
	BOOKING_IN_USE                     BookingStatus = "IN_USE"
	BOOKING_RESTAURANT_CONFIRM_PAYMENT BookingStatus = "RESTAURANT_CONFIRM_PAYMENT"
	BOOKING_GUEST_COMPLAINT            BookingStatus = "GUEST_COMPLAINT"
	BOOKING_DONE_COMPLAINT             BookingStatus = "DONE_COMPLAINT"
	BOOKING_RESTAURANT_EXCEPTION       BookingStatus = "RESTAURANT_EXCEPTION"
	BOOKING_GUEST_EXCEPTION            BookingStatus = "GUEST_EXCEPTION"
)

func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	for _, s := range AllBookingStatuses() {
		if bs == s {
			return true
		}
	}
	return false
}

func AllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BOOKING_NEW_CREATED,
		BOOKING_OVERTIME_GUEST,
		BOOKING_CANCEL_GUEST,
		BOOKING_WAITING_RESTAURANT,
		BOOKING_RESTAURANT_CONFIRM_DEPOSIT,
		BOOKING_CANCEL_RESTAURANT,
		BOOKING_RESTAURANT_CONFIRM,
		BOOKING_GUEST_CHECK_IN,
		BOOKING_GUEST_CHECK_OUT,
		BOOKING_GUEST_CHECK_OUT_OVERTIME,
		BOOKING_NO_SHOW,
		BOOKING_REFUND_DEPOSIT,
		BOOKING_REFUND_ONE_THIRD_DEPOSIT,
		BOOKING_REFUND_ONE_TWO_DEPOSIT,
		BOOKING_NO_DEPOSIT,
		BOOKING_IN_USE,
		BOOKING_RESTAURANT_CONFIRM_PAYMENT,
		BOOKING_GUEST_COMPLAINT,
		BOOKING_DONE_COMPLAINT,
		BOOKING_RESTAURANT_EXCEPTION,
		BOOKING_GUEST_EXCEPTION,
	}
}

// InactiveBookingStatuses is the set of statuses that no longer contend for
// the room. Bookings in any of these do not block a new request for an
// overlapping time window.
func InactiveBookingStatuses() []BookingStatus {
	return []BookingStatus{
		BOOKING_OVERTIME_GUEST,
		BOOKING_CANCEL_GUEST,
		BOOKING_CANCEL_RESTAURANT,
		BOOKING_GUEST_EXCEPTION,
		BOOKING_GUEST_CHECK_IN,
		BOOKING_GUEST_CHECK_OUT,
		BOOKING_GUEST_CHECK_OUT_OVERTIME,
		BOOKING_NO_SHOW,
		BOOKING_DONE_COMPLAINT,
		BOOKING_RESTAURANT_EXCEPTION,
		BOOKING_NO_DEPOSIT,
		BOOKING_REFUND_DEPOSIT,
		BOOKING_REFUND_ONE_THIRD_DEPOSIT,
		BOOKING_REFUND_ONE_TWO_DEPOSIT,
		BOOKING_IN_USE,
		BOOKING_RESTAURANT_CONFIRM_PAYMENT,
		BOOKING_GUEST_COMPLAINT,
	}
}

type FeedView string

const (
	FEED_VIEW_ACTIVE  FeedView = "active"
	FEED_VIEW_DISABLE FeedView = "disable"
)

type CatalogStatus string

const (
	CATALOG_ENABLED  CatalogStatus = "enable"
	CATALOG_DISABLED CatalogStatus = "disable"
)

type Claims struct {
	AccountEmail string `json:"email"`
	RestaurantID string `json:"restaurant_id"`
	jwt.RegisteredClaims
}

type BookRoomMenuItem struct {
	MenuID   string `json:"menu_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type BookRoomAmenity struct {
	AmenityID string `json:"amenity_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type CreateBookRoomRequestBody struct {
	RestaurantID string             `json:"restaurant_id" binding:"required"`
	GuestName    string             `json:"guest_name" binding:"required"`
	Email        string             `json:"email" binding:"required,email"`
	Phone        string             `json:"phone" binding:"required"`
	TimeStart    string             `json:"time_start" binding:"required,bookabledate" time_format:"2006-01-02 15:04:05 -07:00"`
	TimeEnd      string             `json:"time_end" binding:"required,bookabledate,gtdate=TimeStart" time_format:"2006-01-02 15:04:05 -07:00"`
	Note         string             `json:"note,omitempty"`
	LinkConfirm  string             `json:"link_confirm" binding:"required"`
	MenuItems    []BookRoomMenuItem `json:"menu_items,omitempty" binding:"omitempty,dive"`
	Amenities    []BookRoomAmenity  `json:"amenities,omitempty" binding:"omitempty,dive"`
}

type CancelBookRoomRequestBody struct {
	Reason string `json:"reason" binding:"required"`
}

type ConfirmPaymentRequestBody struct {
	PlusPrice int64 `json:"plus_price" binding:"min=0"`
}

type GuestFeedbackRequestBody struct {
	Star     int    `json:"star" binding:"required,min=1,max=5"`
	Feedback string `json:"feedback" binding:"required"`
}

type FeedbackReplyRequestBody struct {
	Reply string `json:"reply" binding:"required"`
}

type RestaurantNoteRequestBody struct {
	NoteRes string `json:"note_res" binding:"required"`
}

type FeedViewRequestBody struct {
	FeedView string `json:"feed_view" binding:"required,oneof=active disable"`
}

type AddMenuItemsRequestBody struct {
	MenuItems []BookRoomMenuItem `json:"menu_items" binding:"required,min=1,dive"`
}

type AddAmenitiesRequestBody struct {
	Amenities []BookRoomAmenity `json:"amenities" binding:"required,min=1,dive"`
}

type CreateAmenityRequestBody struct {
	Name        string `json:"name" binding:"required"`
	Price       int64  `json:"price" binding:"required,gt=0"`
	Note        string `json:"note,omitempty"`
	Description string `json:"description,omitempty"`
}

type CreateMenuItemRequestBody struct {
	Name        string `json:"name" binding:"required"`
	Price       int64  `json:"price" binding:"required,gt=0"`
	Image       string `json:"image,omitempty"`
	Note        string `json:"note,omitempty"`
	Description string `json:"description,omitempty"`
	CategoryID  string `json:"category_id,omitempty"`
}

type CreateRoomRequestBody struct {
	Name         string `json:"name" binding:"required"`
	Seats        uint   `json:"seats,omitempty"`
	BasePrice    int64  `json:"base_price" binding:"required,gt=0"`
	DepositPrice int64  `json:"deposit_price" binding:"min=0"`
	Description  string `json:"description,omitempty"`
}

type UpdateCatalogStatusRequestBody struct {
	Status string `json:"status" binding:"required,oneof=enable disable"`
}

type BookRoomIDParams struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type ConfirmBookRoomQuery struct {
	BkrID        string `form:"bkr_id" binding:"required,uuid"`
	RestaurantID string `form:"restaurant_id" binding:"required"`
}

type ListBookRoomQuery struct {
	Status    string `form:"status"`
	Keyword   string `form:"keyword"`
	FromDate  string `form:"from_date" binding:"omitempty,datetime=2006-01-02"`
	ToDate    string `form:"to_date" binding:"omitempty,datetime=2006-01-02"`
	PageIndex int    `form:"page_index"`
	PageSize  int    `form:"page_size"`
}

type ListFeedbackQuery struct {
	Star      int `form:"star" binding:"omitempty,min=1,max=5"`
	PageIndex int `form:"page_index"`
	PageSize  int `form:"page_size"`
}

type PageMeta struct {
	Current   int   `json:"current"`
	PageSize  int   `json:"pageSize"`
	TotalItem int64 `json:"totalItem"`
	TotalPage int64 `json:"totalPage"`
}
