package common

import (
	"errors"
	"fmt"
	"rbs/src/config"
	"rbs/src/db"
	"rbs/src/models"
	"rbs/src/types"
	"rbs/src/utils"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testRestaurantID = "res_0123456789abcdef012345"

func openTestDb(t interface{ Fatalf(string, ...any) }) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %s", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql db: %s", err)
	}
	// one in-memory database shared by all sessions
	sqlDB.SetMaxOpenConns(1)
	err = gdb.AutoMigrate(
		&models.Restaurant{},
		&models.Room{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.Amenity{},
		&models.BookRoom{},
		&models.AmenitySnap{},
		&models.MenuItemSnap{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("migrate: %s", err)
	}
	return gdb
}

func errorKind(err error) (utils.ErrorKind, bool) {
	var be *utils.BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return 0, false
}

type BookingSuite struct {
	suite.Suite
	db      *gorm.DB
	amenity models.Amenity
	menu    models.MenuItem
}

func TestBookingSuite(t *testing.T) {
	suite.Run(t, new(BookingSuite))
}

func (s *BookingSuite) SetupTest() {
	s.db = openTestDb(s.T())
	db.NewDB(s.db)

	s.Require().NoError(s.db.Create(&models.Restaurant{
		ID:    testRestaurantID,
		Name:  "The Test Kitchen",
		Email: "owner@example.com",
	}).Error)

	s.amenity = models.Amenity{
		ID:           uuid.NewString(),
		RestaurantID: testRestaurantID,
		Name:         "Projector",
		Price:        150_000,
		Status:       types.CATALOG_ENABLED,
	}
	s.Require().NoError(s.db.Create(&s.amenity).Error)

	s.menu = models.MenuItem{
		ID:           uuid.NewString(),
		RestaurantID: testRestaurantID,
		Name:         "Set menu A",
		Price:        1_200_000,
		Status:       types.CATALOG_ENABLED,
	}
	s.Require().NoError(s.db.Create(&s.menu).Error)
}

func (s *BookingSuite) bookingParams(start, end time.Time) *types.CreateBookRoomRequestBody {
	return &types.CreateBookRoomRequestBody{
		RestaurantID: testRestaurantID,
		GuestName:    "Alex Tran",
		Email:        "alex@example.com",
		Phone:        "+84900000001",
		TimeStart:    start.Format(config.TIME_PARSE_FORMAT),
		TimeEnd:      end.Format(config.TIME_PARSE_FORMAT),
		LinkConfirm:  "https://booking.example.com/confirm",
		Amenities:    []types.BookRoomAmenity{{AmenityID: s.amenity.ID, Quantity: 1}},
		MenuItems:    []types.BookRoomMenuItem{{MenuID: s.menu.ID, Quantity: 2}},
	}
}

func (s *BookingSuite) createBooking() *models.BookRoom {
	start := time.Now().Add(24 * time.Hour)
	booking, err := CreateBookRoom("guest-1", s.bookingParams(start, start.Add(3*time.Hour)))
	s.Require().NoError(err)
	return booking
}

// seedBooking plants a row directly at the given status, bypassing the
// lifecycle, so guard tests can start from any point of the graph.
func (s *BookingSuite) seedBooking(status types.BookingStatus) *models.BookRoom {
	start := time.Now().Add(24 * time.Hour)
	booking := models.BookRoom{
		ID:           uuid.NewString(),
		RestaurantID: testRestaurantID,
		GuestID:      "guest-1",
		GuestName:    "Alex Tran",
		Email:        "alex@example.com",
		TimeStart:    start,
		TimeEnd:      start.Add(3 * time.Hour),
		Status:       status,
		FeedView:     types.FEED_VIEW_DISABLE,
		DetailHistory: types.HistoryLog{}.Append(types.HistoryEntry{
			Type: "seed", Time: time.Now(),
		}),
	}
	s.Require().NoError(s.db.Create(&booking).Error)
	return &booking
}

func (s *BookingSuite) reload(id string) *models.BookRoom {
	var booking models.BookRoom
	s.Require().NoError(s.db.Where("id = ?", id).First(&booking).Error)
	return &booking
}

func (s *BookingSuite) TestCreateBookRoom() {
	booking := s.createBooking()

	s.Equal(types.BOOKING_NEW_CREATED, booking.Status)
	s.Len(booking.DetailHistory, 1)
	s.Len(booking.Amenities, 1)
	s.Len(booking.MenuItems, 1)

	var snaps []models.MenuItemSnap
	s.NoError(s.db.Where("book_room_id = ?", booking.ID).Find(&snaps).Error)
	s.Require().Len(snaps, 1)
	s.Equal(s.menu.Price, snaps[0].Price)
	s.Equal(2, snaps[0].Quantity)

	// snapshots survive later catalog edits untouched
	s.NoError(s.db.Model(&models.MenuItem{}).Where("id = ?", s.menu.ID).Update("price", 1).Error)
	var snap models.MenuItemSnap
	s.NoError(s.db.Where("book_room_id = ?", booking.ID).First(&snap).Error)
	s.Equal(s.menu.Price, snap.Price)
}

func (s *BookingSuite) TestCreateBookRoomMissingMenuItemAbortsEverything() {
	start := time.Now().Add(24 * time.Hour)
	params := s.bookingParams(start, start.Add(2*time.Hour))
	params.MenuItems = []types.BookRoomMenuItem{{MenuID: uuid.NewString(), Quantity: 1}}

	_, err := CreateBookRoom("guest-1", params)
	kind, ok := errorKind(err)
	s.Require().True(ok)
	s.Equal(utils.KindNotFound, kind)

	var bookings, amenitySnaps int64
	s.NoError(s.db.Model(&models.BookRoom{}).Count(&bookings).Error)
	s.NoError(s.db.Model(&models.AmenitySnap{}).Count(&amenitySnaps).Error)
	s.Zero(bookings)
	s.Zero(amenitySnaps)
}

func (s *BookingSuite) TestCreateBookRoomDisabledAmenityAborts() {
	s.NoError(s.db.Model(&models.Amenity{}).Where("id = ?", s.amenity.ID).Update("status", types.CATALOG_DISABLED).Error)

	start := time.Now().Add(24 * time.Hour)
	_, err := CreateBookRoom("guest-1", s.bookingParams(start, start.Add(2*time.Hour)))
	kind, ok := errorKind(err)
	s.Require().True(ok)
	s.Equal(utils.KindNotFound, kind)
}

func (s *BookingSuite) TestCreateBookRoomRejectsOverlappingStart() {
	s.createBooking()

	// the new window straddles the existing booking's start time
	start := time.Now().Add(23 * time.Hour)
	_, err := CreateBookRoom("guest-2", s.bookingParams(start, start.Add(3*time.Hour)))
	s.Require().Error(err)
	kind, ok := errorKind(err)
	s.Require().True(ok)
	s.Equal(utils.KindConflict, kind)
}

func (s *BookingSuite) TestCreateBookRoomIgnoresInactiveBookings() {
	first := s.createBooking()
	_, err := GuestCancelBookRoom(first.ID, "guest-1", "changed plans")
	s.Require().NoError(err)

	start := time.Now().Add(23 * time.Hour)
	_, err = CreateBookRoom("guest-2", s.bookingParams(start, start.Add(3*time.Hour)))
	s.NoError(err)
}

func (s *BookingSuite) TestCreateBookRoomInvalidTimes() {
	params := s.bookingParams(time.Now().Add(24*time.Hour), time.Now().Add(26*time.Hour))
	params.TimeStart = "not-a-date"
	_, err := CreateBookRoom("guest-1", params)
	kind, ok := errorKind(err)
	s.Require().True(ok)
	s.Equal(utils.KindValidation, kind)

	start := time.Now().Add(24 * time.Hour)
	params = s.bookingParams(start, start.Add(-time.Hour))
	_, err = CreateBookRoom("guest-1", params)
	kind, ok = errorKind(err)
	s.Require().True(ok)
	s.Equal(utils.KindValidation, kind)
}

func (s *BookingSuite) TestGuestConfirm() {
	booking := s.createBooking()

	confirmed, err := GuestConfirmBookRoom(booking.ID, testRestaurantID)
	s.Require().NoError(err)
	s.Equal(types.BOOKING_WAITING_RESTAURANT, confirmed.Status)
	s.Len(confirmed.DetailHistory, 2)

	// confirming twice trips the guard
	_, err = GuestConfirmBookRoom(booking.ID, testRestaurantID)
	kind, ok := errorKind(err)
	s.Require().True(ok)
	s.Equal(utils.KindInvalidState, kind)
}

func (s *BookingSuite) TestGuestConfirmWrongRestaurant() {
	booking := s.createBooking()
	_, err := GuestConfirmBookRoom(booking.ID, "res_another0000000000000000")
	kind, ok := errorKind(err)
	s.Require().True(ok)
	s.Equal(utils.KindNotFound, kind)
}

func (s *BookingSuite) TestGuestCancelOnlyBeforeConfirm() {
	booking := s.createBooking()
	_, err := GuestConfirmBookRoom(booking.ID, testRestaurantID)
	s.Require().NoError(err)

	_, err = GuestCancelBookRoom(booking.ID, "guest-1", "too late")
	kind, ok := errorKind(err)
	s.Require().True(ok)
	s.Equal(utils.KindInvalidState, kind)
}

func (s *BookingSuite) TestFullLifecycle() {
	booking := s.createBooking()
	id := booking.ID

	steps := []struct {
		apply func() (*models.BookRoom, error)
		want  types.BookingStatus
	}{
		{func() (*models.BookRoom, error) { return GuestConfirmBookRoom(id, testRestaurantID) }, types.BOOKING_WAITING_RESTAURANT},
		{func() (*models.BookRoom, error) { return RestaurantConfirmDepositBookRoom(id, testRestaurantID) }, types.BOOKING_RESTAURANT_CONFIRM_DEPOSIT},
		{func() (*models.BookRoom, error) { return RestaurantConfirmBookRoom(id, testRestaurantID) }, types.BOOKING_RESTAURANT_CONFIRM},
		{func() (*models.BookRoom, error) { return RestaurantCheckInBookRoom(id, testRestaurantID) }, types.BOOKING_GUEST_CHECK_IN},
		{func() (*models.BookRoom, error) { return RestaurantInUseBookRoom(id, testRestaurantID) }, types.BOOKING_IN_USE},
		{func() (*models.BookRoom, error) { return RestaurantCheckOutBookRoom(id, testRestaurantID) }, types.BOOKING_GUEST_CHECK_OUT},
		{func() (*models.BookRoom, error) { return RestaurantConfirmPaymentBookRoom(id, testRestaurantID, 50_000) }, types.BOOKING_RESTAURANT_CONFIRM_PAYMENT},
	}
	for i, step := range steps {
		got, err := step.apply()
		s.Require().NoError(err, "step %d", i)
		s.Equal(step.want, got.Status, "step %d", i)
		s.Len(got.DetailHistory, i+2, "step %d", i)
	}

	final := s.reload(id)
	s.NotNil(final.CheckIn)
	s.NotNil(final.CheckOut)
	s.Require().NotNil(final.PlusPrice)
	s.Equal(int64(50_000), *final.PlusPrice)
}

func (s *BookingSuite) TestSkippingAStepFailsTheGuard() {
	booking := s.createBooking()

	// deposit cannot be confirmed before the guest confirms
	_, err := RestaurantConfirmDepositBookRoom(booking.ID, testRestaurantID)
	kind, ok := errorKind(err)
	s.Require().True(ok)
	s.Equal(utils.KindInvalidState, kind)
	s.Equal(types.BOOKING_NEW_CREATED, s.reload(booking.ID).Status)
}

func (s *BookingSuite) TestNoShowRequiresConfirmedBooking() {
	booking := s.seedBooking(types.BOOKING_RESTAURANT_CONFIRM)
	moved, err := RestaurantNoShowBookRoom(booking.ID, testRestaurantID)
	s.Require().NoError(err)
	s.Equal(types.BOOKING_NO_SHOW, moved.Status)

	other := s.seedBooking(types.BOOKING_IN_USE)
	_, err = RestaurantNoShowBookRoom(other.ID, testRestaurantID)
	kind, ok := errorKind(err)
	s.Require().True(ok)
	s.Equal(utils.KindInvalidState, kind)
}

func (s *BookingSuite) TestOvertimeCheckoutFeedsPaymentConfirm() {
	booking := s.seedBooking(types.BOOKING_IN_USE)
	moved, err := RestaurantCheckOutOvertimeBookRoom(booking.ID, testRestaurantID)
	s.Require().NoError(err)
	s.Equal(types.BOOKING_GUEST_CHECK_OUT_OVERTIME, moved.Status)

	paid, err := RestaurantConfirmPaymentBookRoom(booking.ID, testRestaurantID, 200_000)
	s.Require().NoError(err)
	s.Equal(types.BOOKING_RESTAURANT_CONFIRM_PAYMENT, paid.Status)
}

func (s *BookingSuite) TestRefundGuards() {
	canceled := s.seedBooking(types.BOOKING_CANCEL_GUEST)
	refunded, err := RestaurantRefundDepositBookRoom(canceled.ID, testRestaurantID)
	s.Require().NoError(err)
	s.Equal(types.BOOKING_REFUND_DEPOSIT, refunded.Status)

	// a full refund is not reachable from an exception
	exception := s.seedBooking(types.BOOKING_GUEST_EXCEPTION)
	_, err = RestaurantRefundDepositBookRoom(exception.ID, testRestaurantID)
	kind, ok := errorKind(err)
	s.Require().True(ok)
	s.Equal(utils.KindInvalidState, kind)

	// partial refunds are reachable from an exception
	partial, err := RestaurantRefundOneThirdBookRoom(exception.ID, testRestaurantID)
	s.Require().NoError(err)
	s.Equal(types.BOOKING_REFUND_ONE_THIRD_DEPOSIT, partial.Status)
	s.Equal("RESTAURANT_REFUND_ONE_THIRD", partial.Status.String())

	noShow := s.seedBooking(types.BOOKING_NO_SHOW)
	half, err := RestaurantRefundOneTwoBookRoom(noShow.ID, testRestaurantID)
	s.Require().NoError(err)
	s.Equal("RESTAURANT_REFUND_ONE_TWO_DEPOSITE", half.Status.String())

	resException := s.seedBooking(types.BOOKING_RESTAURANT_EXCEPTION)
	kept, err := RestaurantNoDepositBookRoom(resException.ID, testRestaurantID)
	s.Require().NoError(err)
	s.Equal(types.BOOKING_NO_DEPOSIT, kept.Status)
}

func (s *BookingSuite) TestExceptionHasNoGuard() {
	booking := s.seedBooking(types.BOOKING_IN_USE)
	moved, err := RestaurantExceptionBookRoom(booking.ID, testRestaurantID)
	s.Require().NoError(err)
	s.Equal(types.BOOKING_RESTAURANT_EXCEPTION, moved.Status)

	fresh := s.createBooking()
	moved, err = GuestExceptionBookRoom(fresh.ID, testRestaurantID)
	s.Require().NoError(err)
	s.Equal(types.BOOKING_GUEST_EXCEPTION, moved.Status)
}

func (s *BookingSuite) TestComplaintFlow() {
	booking := s.seedBooking(types.BOOKING_RESTAURANT_CONFIRM_PAYMENT)

	moved, err := GuestComplaintBookRoom(booking.ID, "guest-1")
	s.Require().NoError(err)
	s.Equal(types.BOOKING_GUEST_COMPLAINT, moved.Status)

	done, err := DoneComplaintBookRoom(booking.ID, testRestaurantID)
	s.Require().NoError(err)
	s.Equal(types.BOOKING_DONE_COMPLAINT, done.Status)
}

func (s *BookingSuite) TestComplaintRequiresPaymentConfirmed() {
	booking := s.seedBooking(types.BOOKING_IN_USE)
	_, err := GuestComplaintBookRoom(booking.ID, "guest-1")
	kind, ok := errorKind(err)
	s.Require().True(ok)
	s.Equal(utils.KindInvalidState, kind)
}

func (s *BookingSuite) TestFeedbackAndReply() {
	booking := s.seedBooking(types.BOOKING_RESTAURANT_CONFIRM_PAYMENT)

	// the restaurant cannot reply before the guest writes anything
	_, err := RestaurantFeedbackBookRoom(booking.ID, testRestaurantID, "thanks!")
	kind, ok := errorKind(err)
	s.Require().True(ok)
	s.Equal(utils.KindInvalidState, kind)

	rated, err := GuestFeedbackBookRoom(booking.ID, "guest-1", 5, "great room")
	s.Require().NoError(err)
	s.Equal(types.BOOKING_RESTAURANT_CONFIRM_PAYMENT, rated.Status)

	stored := s.reload(booking.ID)
	s.Require().NotNil(stored.Star)
	s.Equal(5, *stored.Star)
	s.Equal("great room", stored.Feedback)
	s.Len(stored.DetailHistory, 2)

	replied, err := RestaurantFeedbackBookRoom(booking.ID, testRestaurantID, "thanks!")
	s.Require().NoError(err)
	s.Equal("thanks!", s.reload(replied.ID).Reply)
}

func (s *BookingSuite) TestFeedbackRequiresPaymentConfirmed() {
	booking := s.seedBooking(types.BOOKING_IN_USE)
	_, err := GuestFeedbackBookRoom(booking.ID, "guest-1", 4, "nice")
	kind, ok := errorKind(err)
	s.Require().True(ok)
	s.Equal(utils.KindInvalidState, kind)

	_, err = GuestFeedbackBookRoom(booking.ID, "guest-1", 9, "nice")
	kind, ok = errorKind(err)
	s.Require().True(ok)
	s.Equal(utils.KindValidation, kind)
}

func (s *BookingSuite) TestFeedViewToggle() {
	booking := s.seedBooking(types.BOOKING_RESTAURANT_CONFIRM_PAYMENT)
	updated, err := UpdateFeedViewBookRoom(booking.ID, testRestaurantID, types.FEED_VIEW_ACTIVE)
	s.Require().NoError(err)
	s.Equal(types.FEED_VIEW_ACTIVE, updated.FeedView)
	s.Equal(types.FEED_VIEW_ACTIVE, s.reload(booking.ID).FeedView)
}

func (s *BookingSuite) TestAddMenuItemsRequiresInUse() {
	booking := s.seedBooking(types.BOOKING_GUEST_CHECK_IN)
	_, err := AddMenuItemsToBookRoom(booking.ID, testRestaurantID, []types.BookRoomMenuItem{{MenuID: s.menu.ID, Quantity: 1}})
	kind, ok := errorKind(err)
	s.Require().True(ok)
	s.Equal(utils.KindInvalidState, kind)
}

func (s *BookingSuite) TestAddMenuItemsMissingItemAbortsBatch() {
	booking := s.seedBooking(types.BOOKING_IN_USE)
	items := []types.BookRoomMenuItem{
		{MenuID: s.menu.ID, Quantity: 1},
		{MenuID: uuid.NewString(), Quantity: 1},
	}
	_, err := AddMenuItemsToBookRoom(booking.ID, testRestaurantID, items)
	kind, ok := errorKind(err)
	s.Require().True(ok)
	s.Equal(utils.KindNotFound, kind)

	var snaps int64
	s.NoError(s.db.Model(&models.MenuItemSnap{}).Where("book_room_id = ?", booking.ID).Count(&snaps).Error)
	s.Zero(snaps)
}

func (s *BookingSuite) TestAddAmenitiesWhileInUse() {
	booking := s.seedBooking(types.BOOKING_IN_USE)
	updated, err := AddAmenitiesToBookRoom(booking.ID, testRestaurantID, []types.BookRoomAmenity{{AmenityID: s.amenity.ID, Quantity: 3}})
	s.Require().NoError(err)
	s.Len(updated.DetailHistory, 2)

	var snaps []models.AmenitySnap
	s.NoError(s.db.Where("book_room_id = ?", booking.ID).Find(&snaps).Error)
	s.Require().Len(snaps, 1)
	s.Equal(3, snaps[0].Quantity)
	s.Equal(types.BOOKING_IN_USE, s.reload(booking.ID).Status)
}

func (s *BookingSuite) TestGetBookRoomScopedToTenant() {
	booking := s.createBooking()

	got, err := GetBookRoom(booking.ID, testRestaurantID)
	s.Require().NoError(err)
	s.Len(got.Amenities, 1)
	s.Len(got.MenuItems, 1)

	_, err = GetBookRoom(booking.ID, "res_another0000000000000000")
	kind, ok := errorKind(err)
	s.Require().True(ok)
	s.Equal(utils.KindNotFound, kind)
}

func (s *BookingSuite) TestHistoryIsAppendOnly() {
	booking := s.createBooking()
	first := fmt.Sprintf("%s|%s", booking.DetailHistory[0].Type, booking.DetailHistory[0].Description)

	confirmed, err := GuestConfirmBookRoom(booking.ID, testRestaurantID)
	s.Require().NoError(err)
	s.Equal(first, fmt.Sprintf("%s|%s", confirmed.DetailHistory[0].Type, confirmed.DetailHistory[0].Description))
	s.Len(confirmed.DetailHistory, 2)
}
