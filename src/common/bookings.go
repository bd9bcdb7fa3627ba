package common

import (
	"errors"
	"fmt"
	"rbs/src/config"
	"rbs/src/db"
	"rbs/src/models"
	"rbs/src/types"
	"rbs/src/utils"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const component = "BookRoomService"

const (
	msgBookingNotFound = "booking does not exist or has been removed"
	msgAmenityNotFound = "amenity does not exist or has been removed"
	msgMenuNotFound    = "menu item does not exist or has been removed"
)

// transition describes one guarded move through the booking status graph.
// Every transition funnels through applyTransition so the persistence step
// is always a conditional write keyed on the observed status: of several
// racing callers only one can flip the row, the rest fail their guard.
type transition struct {
	action   string
	scope    map[string]any
	expected []types.BookingStatus
	next     types.BookingStatus
	guardMsg string
	entry    types.HistoryEntry
	updates  map[string]any
}

func statusIn(s types.BookingStatus, set []types.BookingStatus) bool {
	for _, v := range set {
		if s == v {
			return true
		}
	}
	return false
}

func applyTransition(d *gorm.DB, id string, t transition) (*models.BookRoom, error) {
	var booking models.BookRoom
	q := d.Where("id = ?", id)
	for col, v := range t.scope {
		q = q.Where(col+" = ?", v)
	}
	err := q.First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound(msgBookingNotFound)
	}
	if err != nil {
		return nil, utils.Internal(t.action, component, err)
	}
	if len(t.expected) > 0 && !statusIn(booking.Status, t.expected) {
		return nil, utils.InvalidState(t.guardMsg)
	}

	entry := t.entry
	entry.Time = time.Now()
	history := booking.DetailHistory.Append(entry)

	updates := map[string]any{
		"status":         t.next,
		"detail_history": history,
	}
	for k, v := range t.updates {
		updates[k] = v
	}
	res := d.
		Model(&models.BookRoom{}).
		Where("id = ? AND status = ?", id, booking.Status).
		Updates(updates)
	if res.Error != nil {
		return nil, utils.Internal(t.action, component, res.Error)
	}
	if res.RowsAffected == 0 {
		// A competing transition flipped the row between our read and the
		// conditional write; this caller loses its guard.
		return nil, utils.InvalidState(t.guardMsg)
	}

	booking.Status = t.next
	booking.DetailHistory = history
	return &booking, nil
}

func restaurantScope(restaurantID string) map[string]any {
	return map[string]any{"restaurant_id": restaurantID}
}

func guestScope(guestID string) map[string]any {
	return map[string]any{"guest_id": guestID}
}

// CreateBookRoom persists the booking and every requested snapshot inside
// one transaction. A conflicting live booking, or a missing or disabled
// amenity or menu item, aborts the whole creation; no partial booking is
// ever visible.
func CreateBookRoom(guestID string, params *types.CreateBookRoomRequestBody) (*models.BookRoom, error) {
	const action = "CreateBookRoom"

	start, err := time.Parse(config.TIME_PARSE_FORMAT, params.TimeStart)
	if err != nil {
		return nil, utils.Validation("time_start is not a valid timestamp")
	}
	end, err := time.Parse(config.TIME_PARSE_FORMAT, params.TimeEnd)
	if err != nil {
		return nil, utils.Validation("time_end is not a valid timestamp")
	}
	if !start.Before(end) {
		return nil, utils.Validation("time_start must be before time_end")
	}

	booking := models.BookRoom{
		ID:           uuid.NewString(),
		RestaurantID: params.RestaurantID,
		GuestID:      guestID,
		GuestName:    params.GuestName,
		Email:        params.Email,
		Phone:        params.Phone,
		TimeStart:    start,
		TimeEnd:      end,
		Note:         params.Note,
		Status:       types.BOOKING_NEW_CREATED,
		FeedView:     types.FEED_VIEW_DISABLE,
		DetailHistory: types.HistoryLog{}.Append(types.HistoryEntry{
			Type:        "Guest booked a room",
			Description: "The guest has requested a room, please confirm through the email link within 10 minutes",
			Time:        time.Now(),
		}),
	}

	d := db.GetDb()
	err = d.Transaction(func(tx *gorm.DB) error {
		conflict, err := HasBookingConflict(tx, params.RestaurantID, start, end)
		if err != nil {
			return err
		}
		if conflict {
			return utils.Conflict("another booking already occupies this time window")
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		for _, item := range params.Amenities {
			var amenity models.Amenity
			err := tx.
				Where(&models.Amenity{ID: item.AmenityID, RestaurantID: params.RestaurantID, Status: types.CATALOG_ENABLED}).
				First(&amenity).
				Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound(msgAmenityNotFound)
			}
			if err != nil {
				return err
			}
			snap := models.AmenitySnap{
				ID:           uuid.NewString(),
				BookRoomID:   booking.ID,
				RestaurantID: params.RestaurantID,
				Name:         amenity.Name,
				Price:        amenity.Price,
				Note:         amenity.Note,
				Description:  amenity.Description,
				Quantity:     item.Quantity,
			}
			if err := tx.Create(&snap).Error; err != nil {
				return err
			}
			booking.Amenities = append(booking.Amenities, snap)
		}
		// A missing menu item aborts the batch the same way a missing
		// amenity does.
		for _, item := range params.MenuItems {
			var menu models.MenuItem
			err := tx.
				Where(&models.MenuItem{ID: item.MenuID, RestaurantID: params.RestaurantID, Status: types.CATALOG_ENABLED}).
				First(&menu).
				Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NotFound(msgMenuNotFound)
			}
			if err != nil {
				return err
			}
			snap := models.MenuItemSnap{
				ID:           uuid.NewString(),
				BookRoomID:   booking.ID,
				RestaurantID: params.RestaurantID,
				Name:         menu.Name,
				Price:        menu.Price,
				Image:        menu.Image,
				Note:         menu.Note,
				Description:  menu.Description,
				Quantity:     item.Quantity,
			}
			if err := tx.Create(&snap).Error; err != nil {
				return err
			}
			booking.MenuItems = append(booking.MenuItems, snap)
		}
		return nil
	})
	if err != nil {
		return nil, utils.PassThrough(action, component, err)
	}

	go SendBookingConfirmMail(&booking, params.LinkConfirm)
	NotifyRestaurant(booking.RestaurantID, "Room booking", fmt.Sprintf("New room booking request from %s", booking.GuestName), types.JSONB{"booking_id": booking.ID})
	return &booking, nil
}

// GuestConfirmBookRoom is reached through the link in the confirmation
// email, which carries the booking id and the restaurant id.
func GuestConfirmBookRoom(id, restaurantID string) (*models.BookRoom, error) {
	booking, err := applyTransition(db.GetDb(), id, transition{
		action:   "GuestConfirmBookRoom",
		scope:    restaurantScope(restaurantID),
		expected: []types.BookingStatus{types.BOOKING_NEW_CREATED},
		next:     types.BOOKING_WAITING_RESTAURANT,
		guardMsg: "booking has already been confirmed or canceled",
		entry: types.HistoryEntry{
			Type:        "Guest confirmed",
			Description: "The guest confirmed the booking, waiting for the restaurant to confirm",
		},
	})
	if err != nil {
		return nil, err
	}
	NotifyRestaurant(booking.RestaurantID, "Room booking", fmt.Sprintf("New confirmed room booking from %s", booking.GuestName), types.JSONB{"booking_id": booking.ID})
	return booking, nil
}

func GuestCancelBookRoom(id, guestID, reason string) (*models.BookRoom, error) {
	booking, err := applyTransition(db.GetDb(), id, transition{
		action:   "GuestCancelBookRoom",
		scope:    guestScope(guestID),
		expected: []types.BookingStatus{types.BOOKING_NEW_CREATED},
		next:     types.BOOKING_CANCEL_GUEST,
		guardMsg: "booking has already been confirmed or canceled",
		entry: types.HistoryEntry{
			Type:        "Guest canceled the booking",
			Description: fmt.Sprintf("The guest canceled the booking, reason: %s", reason),
		},
		updates: map[string]any{"reason_cancel": reason},
	})
	if err != nil {
		return nil, err
	}
	NotifyRestaurant(booking.RestaurantID, "Booking canceled", fmt.Sprintf("%s canceled their room booking", booking.GuestName), types.JSONB{"booking_id": booking.ID})
	return booking, nil
}

func RestaurantConfirmDepositBookRoom(id, restaurantID string) (*models.BookRoom, error) {
	return applyTransition(db.GetDb(), id, transition{
		action:   "RestaurantConfirmDepositBookRoom",
		scope:    restaurantScope(restaurantID),
		expected: []types.BookingStatus{types.BOOKING_WAITING_RESTAURANT},
		next:     types.BOOKING_RESTAURANT_CONFIRM_DEPOSIT,
		guardMsg: "booking has already been confirmed or canceled",
		entry: types.HistoryEntry{
			Type:        "Restaurant confirmed the deposit",
			Description: "The restaurant confirmed the guest has paid the deposit",
		},
	})
}

func RestaurantCancelBookRoom(id, restaurantID, reason string) (*models.BookRoom, error) {
	return applyTransition(db.GetDb(), id, transition{
		action:   "RestaurantCancelBookRoom",
		scope:    restaurantScope(restaurantID),
		expected: []types.BookingStatus{types.BOOKING_WAITING_RESTAURANT},
		next:     types.BOOKING_CANCEL_RESTAURANT,
		guardMsg: "booking has already been confirmed or canceled",
		entry: types.HistoryEntry{
			Type:        "Restaurant canceled the booking",
			Description: fmt.Sprintf("The restaurant canceled the booking, reason: %s", reason),
		},
		updates: map[string]any{"reason_cancel": reason},
	})
}

func RestaurantConfirmBookRoom(id, restaurantID string) (*models.BookRoom, error) {
	return applyTransition(db.GetDb(), id, transition{
		action:   "RestaurantConfirmBookRoom",
		scope:    restaurantScope(restaurantID),
		expected: []types.BookingStatus{types.BOOKING_RESTAURANT_CONFIRM_DEPOSIT},
		next:     types.BOOKING_RESTAURANT_CONFIRM,
		guardMsg: "the deposit has not been confirmed yet",
		entry: types.HistoryEntry{
			Type:        "Restaurant confirmed",
			Description: "The restaurant confirmed the booking, please arrive on time to check in",
		},
	})
}

func RestaurantCheckInBookRoom(id, restaurantID string) (*models.BookRoom, error) {
	now := time.Now()
	return applyTransition(db.GetDb(), id, transition{
		action:   "RestaurantCheckInBookRoom",
		scope:    restaurantScope(restaurantID),
		expected: []types.BookingStatus{types.BOOKING_RESTAURANT_CONFIRM},
		next:     types.BOOKING_GUEST_CHECK_IN,
		guardMsg: "the restaurant has not confirmed the booking or it was canceled",
		entry: types.HistoryEntry{
			Type:        "Guest arrived",
			Description: "The restaurant confirmed the guest has arrived",
		},
		updates: map[string]any{"check_in": now},
	})
}

func RestaurantInUseBookRoom(id, restaurantID string) (*models.BookRoom, error) {
	return applyTransition(db.GetDb(), id, transition{
		action:   "RestaurantInUseBookRoom",
		scope:    restaurantScope(restaurantID),
		expected: []types.BookingStatus{types.BOOKING_GUEST_CHECK_IN},
		next:     types.BOOKING_IN_USE,
		guardMsg: "the guest has not checked in yet",
		entry: types.HistoryEntry{
			Type:        "Room in use",
			Description: "The restaurant confirmed the room is in use",
		},
	})
}

func RestaurantNoShowBookRoom(id, restaurantID string) (*models.BookRoom, error) {
	return applyTransition(db.GetDb(), id, transition{
		action:   "RestaurantNoShowBookRoom",
		scope:    restaurantScope(restaurantID),
		expected: []types.BookingStatus{types.BOOKING_RESTAURANT_CONFIRM},
		next:     types.BOOKING_NO_SHOW,
		guardMsg: "the restaurant has not confirmed the booking or it was canceled",
		entry: types.HistoryEntry{
			Type:        "Guest did not show up",
			Description: "The restaurant confirmed the guest never arrived to claim the room",
		},
	})
}

func RestaurantCheckOutBookRoom(id, restaurantID string) (*models.BookRoom, error) {
	now := time.Now()
	return applyTransition(db.GetDb(), id, transition{
		action:   "RestaurantCheckOutBookRoom",
		scope:    restaurantScope(restaurantID),
		expected: []types.BookingStatus{types.BOOKING_IN_USE},
		next:     types.BOOKING_GUEST_CHECK_OUT,
		guardMsg: "the room has not been marked in use",
		entry: types.HistoryEntry{
			Type:        "Guest checked out",
			Description: "The restaurant confirmed the guest returned the room",
		},
		updates: map[string]any{"check_out": now},
	})
}

func RestaurantCheckOutOvertimeBookRoom(id, restaurantID string) (*models.BookRoom, error) {
	now := time.Now()
	return applyTransition(db.GetDb(), id, transition{
		action:   "RestaurantCheckOutOvertimeBookRoom",
		scope:    restaurantScope(restaurantID),
		expected: []types.BookingStatus{types.BOOKING_IN_USE},
		next:     types.BOOKING_GUEST_CHECK_OUT_OVERTIME,
		guardMsg: "the room has not been marked in use",
		entry: types.HistoryEntry{
			Type:        "Guest checked out",
			Description: "The restaurant confirmed the guest returned the room past the booked window",
		},
		updates: map[string]any{"check_out": now},
	})
}

func RestaurantConfirmPaymentBookRoom(id, restaurantID string, plusPrice int64) (*models.BookRoom, error) {
	return applyTransition(db.GetDb(), id, transition{
		action: "RestaurantConfirmPaymentBookRoom",
		scope:  restaurantScope(restaurantID),
		expected: []types.BookingStatus{
			types.BOOKING_GUEST_CHECK_OUT,
			types.BOOKING_GUEST_CHECK_OUT_OVERTIME,
		},
		next:     types.BOOKING_RESTAURANT_CONFIRM_PAYMENT,
		guardMsg: "the guest has not checked out yet",
		entry: types.HistoryEntry{
			Type:        "Restaurant confirmed payment",
			Description: "The restaurant confirmed the guest has settled the payment",
		},
		updates: map[string]any{"plus_price": plusPrice},
	})
}

// Exception transitions have no status guard; anything that went sideways on
// either side can be flagged from any point of the lifecycle.
func GuestExceptionBookRoom(id, restaurantID string) (*models.BookRoom, error) {
	return applyTransition(db.GetDb(), id, transition{
		action: "GuestExceptionBookRoom",
		scope:  restaurantScope(restaurantID),
		next:   types.BOOKING_GUEST_EXCEPTION,
		entry: types.HistoryEntry{
			Type:        "Guest ran into an unexpected problem",
			Description: "An unexpected problem occurred on the guest side, contact the guest for details",
		},
	})
}

func RestaurantExceptionBookRoom(id, restaurantID string) (*models.BookRoom, error) {
	return applyTransition(db.GetDb(), id, transition{
		action: "RestaurantExceptionBookRoom",
		scope:  restaurantScope(restaurantID),
		next:   types.BOOKING_RESTAURANT_EXCEPTION,
		entry: types.HistoryEntry{
			Type:        "Restaurant ran into an unexpected problem",
			Description: "An unexpected problem occurred on the restaurant side, contact the restaurant for details",
		},
	})
}

func refundSourceStatuses() []types.BookingStatus {
	return []types.BookingStatus{
		types.BOOKING_CANCEL_GUEST,
		types.BOOKING_NO_SHOW,
		types.BOOKING_GUEST_EXCEPTION,
		types.BOOKING_RESTAURANT_EXCEPTION,
	}
}

func RestaurantRefundDepositBookRoom(id, restaurantID string) (*models.BookRoom, error) {
	return applyTransition(db.GetDb(), id, transition{
		action: "RestaurantRefundDepositBookRoom",
		scope:  restaurantScope(restaurantID),
		expected: []types.BookingStatus{
			types.BOOKING_CANCEL_GUEST,
			types.BOOKING_NO_SHOW,
		},
		next:     types.BOOKING_REFUND_DEPOSIT,
		guardMsg: "a full refund is only possible after a guest cancellation or no-show",
		entry: types.HistoryEntry{
			Type:        "Restaurant confirmed a refund",
			Description: "The restaurant refunded the full deposit to the guest",
		},
	})
}

func RestaurantRefundOneThirdBookRoom(id, restaurantID string) (*models.BookRoom, error) {
	return applyTransition(db.GetDb(), id, transition{
		action:   "RestaurantRefundOneThirdBookRoom",
		scope:    restaurantScope(restaurantID),
		expected: refundSourceStatuses(),
		next:     types.BOOKING_REFUND_ONE_THIRD_DEPOSIT,
		guardMsg: "a refund is only possible after a cancellation, no-show or exception",
		entry: types.HistoryEntry{
			Type:        "Restaurant confirmed a refund",
			Description: "The restaurant refunded one third of the deposit to the guest",
		},
	})
}

func RestaurantRefundOneTwoBookRoom(id, restaurantID string) (*models.BookRoom, error) {
	return applyTransition(db.GetDb(), id, transition{
		action:   "RestaurantRefundOneTwoBookRoom",
		scope:    restaurantScope(restaurantID),
		expected: refundSourceStatuses(),
		next:     types.BOOKING_REFUND_ONE_TWO_DEPOSIT,
		guardMsg: "a refund is only possible after a cancellation, no-show or exception",
		entry: types.HistoryEntry{
			Type:        "Restaurant confirmed a refund",
			Description: "The restaurant refunded two thirds of the deposit to the guest",
		},
	})
}

func RestaurantNoDepositBookRoom(id, restaurantID string) (*models.BookRoom, error) {
	return applyTransition(db.GetDb(), id, transition{
		action:   "RestaurantNoDepositBookRoom",
		scope:    restaurantScope(restaurantID),
		expected: refundSourceStatuses(),
		next:     types.BOOKING_NO_DEPOSIT,
		guardMsg: "a refund decision is only possible after a cancellation, no-show or exception",
		entry: types.HistoryEntry{
			Type:        "Restaurant confirmed a refund",
			Description: "The restaurant decided to withhold the deposit",
		},
	})
}

func GuestComplaintBookRoom(id, guestID string) (*models.BookRoom, error) {
	booking, err := applyTransition(db.GetDb(), id, transition{
		action:   "GuestComplaintBookRoom",
		scope:    guestScope(guestID),
		expected: []types.BookingStatus{types.BOOKING_RESTAURANT_CONFIRM_PAYMENT},
		next:     types.BOOKING_GUEST_COMPLAINT,
		guardMsg: "the restaurant has not confirmed the payment yet",
		entry: types.HistoryEntry{
			Type:        "Guest filed a complaint",
			Description: "The guest filed a complaint about the restaurant's service",
		},
	})
	if err != nil {
		return nil, err
	}
	NotifyRestaurant(booking.RestaurantID, "Complaint", fmt.Sprintf("%s filed a complaint about their booking", booking.GuestName), types.JSONB{"booking_id": booking.ID})
	return booking, nil
}

func DoneComplaintBookRoom(id, restaurantID string) (*models.BookRoom, error) {
	return applyTransition(db.GetDb(), id, transition{
		action:   "DoneComplaintBookRoom",
		scope:    restaurantScope(restaurantID),
		expected: []types.BookingStatus{types.BOOKING_GUEST_COMPLAINT},
		next:     types.BOOKING_DONE_COMPLAINT,
		guardMsg: "the guest has not filed a complaint",
		entry: types.HistoryEntry{
			Type:        "Restaurant resolved the complaint",
			Description: "The restaurant resolved the guest's complaint",
		},
	})
}

// GuestFeedbackBookRoom records the star rating and comment. The status is
// left where it is; the conditional write still protects the history append.
func GuestFeedbackBookRoom(id, guestID string, star int, feedback string) (*models.BookRoom, error) {
	if star < 1 || star > 5 {
		return nil, utils.Validation("star rating must be between 1 and 5")
	}
	d := db.GetDb()
	var booking models.BookRoom
	err := d.Where("id = ?", id).Where("guest_id = ?", guestID).First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound(msgBookingNotFound)
	}
	if err != nil {
		return nil, utils.Internal("GuestFeedbackBookRoom", component, err)
	}
	return applyTransition(d, id, transition{
		action:   "GuestFeedbackBookRoom",
		scope:    guestScope(guestID),
		expected: []types.BookingStatus{types.BOOKING_RESTAURANT_CONFIRM_PAYMENT},
		next:     booking.Status,
		guardMsg: "the restaurant has not confirmed the payment yet",
		entry: types.HistoryEntry{
			Type:        "Guest left feedback",
			Description: "The guest left feedback about the restaurant's service",
		},
		updates: map[string]any{"star": star, "feedback": feedback},
	})
}

// RestaurantFeedbackBookRoom stores the restaurant's reply. It requires the
// payment to be confirmed and the guest feedback to already exist.
func RestaurantFeedbackBookRoom(id, restaurantID, reply string) (*models.BookRoom, error) {
	d := db.GetDb()
	var booking models.BookRoom
	err := d.Where("id = ?", id).Where("restaurant_id = ?", restaurantID).First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound(msgBookingNotFound)
	}
	if err != nil {
		return nil, utils.Internal("RestaurantFeedbackBookRoom", component, err)
	}
	if booking.Feedback == "" {
		return nil, utils.InvalidState("the guest has not left feedback yet")
	}
	return applyTransition(d, id, transition{
		action:   "RestaurantFeedbackBookRoom",
		scope:    restaurantScope(restaurantID),
		expected: []types.BookingStatus{types.BOOKING_RESTAURANT_CONFIRM_PAYMENT},
		next:     booking.Status,
		guardMsg: "the restaurant has not confirmed the payment yet",
		entry: types.HistoryEntry{
			Type:        "Restaurant replied",
			Description: "The restaurant replied to the guest's feedback",
		},
		updates: map[string]any{"reply": reply},
	})
}

// UpdateRestaurantNote stores the restaurant's internal note on the booking.
// Not a lifecycle step; no guard and no history entry.
func UpdateRestaurantNote(id, restaurantID, note string) (*models.BookRoom, error) {
	d := db.GetDb()
	var booking models.BookRoom
	err := d.Where("id = ?", id).Where("restaurant_id = ?", restaurantID).First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound(msgBookingNotFound)
	}
	if err != nil {
		return nil, utils.Internal("UpdateRestaurantNote", component, err)
	}
	if err := d.Model(&models.BookRoom{}).Where("id = ?", id).Update("note_res", note).Error; err != nil {
		return nil, utils.Internal("UpdateRestaurantNote", component, err)
	}
	booking.NoteRes = note
	return &booking, nil
}

// UpdateFeedViewBookRoom toggles whether the feedback shows up on the public
// listing. Independent of the lifecycle status; no history entry.
func UpdateFeedViewBookRoom(id, restaurantID string, view types.FeedView) (*models.BookRoom, error) {
	d := db.GetDb()
	var booking models.BookRoom
	err := d.Where("id = ?", id).Where("restaurant_id = ?", restaurantID).First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound(msgBookingNotFound)
	}
	if err != nil {
		return nil, utils.Internal("UpdateFeedViewBookRoom", component, err)
	}
	res := d.
		Model(&models.BookRoom{}).
		Where("id = ?", id).
		Update("feed_view", view)
	if res.Error != nil {
		return nil, utils.Internal("UpdateFeedViewBookRoom", component, res.Error)
	}
	booking.FeedView = view
	return &booking, nil
}

// AddMenuItemsToBookRoom attaches extra menu-item snapshots while the room
// is in use. Every item is re-validated; one missing item aborts the batch.
func AddMenuItemsToBookRoom(id, restaurantID string, items []types.BookRoomMenuItem) (*models.BookRoom, error) {
	const action = "AddMenuItemsToBookRoom"
	d := db.GetDb()
	var booking *models.BookRoom
	err := d.Transaction(func(tx *gorm.DB) error {
		var err error
		booking, err = addSnapshotsInUse(tx, id, restaurantID, func(tx *gorm.DB) error {
			for _, item := range items {
				var menu models.MenuItem
				err := tx.
					Where(&models.MenuItem{ID: item.MenuID, RestaurantID: restaurantID, Status: types.CATALOG_ENABLED}).
					First(&menu).
					Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return utils.NotFound(msgMenuNotFound)
				}
				if err != nil {
					return err
				}
				snap := models.MenuItemSnap{
					ID:           uuid.NewString(),
					BookRoomID:   id,
					RestaurantID: restaurantID,
					Name:         menu.Name,
					Price:        menu.Price,
					Image:        menu.Image,
					Note:         menu.Note,
					Description:  menu.Description,
					Quantity:     item.Quantity,
				}
				if err := tx.Create(&snap).Error; err != nil {
					return err
				}
			}
			return nil
		}, types.HistoryEntry{
			Type:        "Menu items added",
			Description: "The restaurant added menu items to the booking while the room is in use",
		})
		return err
	})
	if err != nil {
		return nil, utils.PassThrough(action, component, err)
	}
	return booking, nil
}

func AddAmenitiesToBookRoom(id, restaurantID string, items []types.BookRoomAmenity) (*models.BookRoom, error) {
	const action = "AddAmenitiesToBookRoom"
	d := db.GetDb()
	var booking *models.BookRoom
	err := d.Transaction(func(tx *gorm.DB) error {
		var err error
		booking, err = addSnapshotsInUse(tx, id, restaurantID, func(tx *gorm.DB) error {
			for _, item := range items {
				var amenity models.Amenity
				err := tx.
					Where(&models.Amenity{ID: item.AmenityID, RestaurantID: restaurantID, Status: types.CATALOG_ENABLED}).
					First(&amenity).
					Error
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return utils.NotFound(msgAmenityNotFound)
				}
				if err != nil {
					return err
				}
				snap := models.AmenitySnap{
					ID:           uuid.NewString(),
					BookRoomID:   id,
					RestaurantID: restaurantID,
					Name:         amenity.Name,
					Price:        amenity.Price,
					Note:         amenity.Note,
					Description:  amenity.Description,
					Quantity:     item.Quantity,
				}
				if err := tx.Create(&snap).Error; err != nil {
					return err
				}
			}
			return nil
		}, types.HistoryEntry{
			Type:        "Amenities added",
			Description: "The restaurant added amenities to the booking while the room is in use",
		})
		return err
	})
	if err != nil {
		return nil, utils.PassThrough(action, component, err)
	}
	return booking, nil
}

// addSnapshotsInUse guards the add-on batch: the booking must be IN_USE, the
// snapshot inserts run first, and the closing history append is a
// conditional write on the same status so a concurrent checkout rolls the
// whole batch back.
func addSnapshotsInUse(tx *gorm.DB, id, restaurantID string, insert func(tx *gorm.DB) error, entry types.HistoryEntry) (*models.BookRoom, error) {
	var booking models.BookRoom
	err := tx.Where("id = ?", id).Where("restaurant_id = ?", restaurantID).First(&booking).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound(msgBookingNotFound)
	}
	if err != nil {
		return nil, err
	}
	if booking.Status != types.BOOKING_IN_USE {
		return nil, utils.InvalidState("the room has not been marked in use")
	}
	if err := insert(tx); err != nil {
		return nil, err
	}
	entry.Time = time.Now()
	history := booking.DetailHistory.Append(entry)
	res := tx.
		Model(&models.BookRoom{}).
		Where("id = ? AND status = ?", id, types.BOOKING_IN_USE).
		Update("detail_history", history)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, utils.InvalidState("the room has not been marked in use")
	}
	booking.DetailHistory = history
	return &booking, nil
}

// GetBookRoom loads one booking with its snapshots, scoped to the tenant.
func GetBookRoom(id, restaurantID string) (*models.BookRoom, error) {
	var booking models.BookRoom
	err := db.GetDb().
		Where("id = ?", id).
		Where("restaurant_id = ?", restaurantID).
		Preload("Amenities").
		Preload("MenuItems").
		First(&booking).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NotFound(msgBookingNotFound)
	}
	if err != nil {
		return nil, utils.Internal("GetBookRoom", component, err)
	}
	return &booking, nil
}
