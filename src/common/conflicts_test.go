package common

import (
	"rbs/src/models"
	"rbs/src/types"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedConflictBooking(t *testing.T, gdb *gorm.DB, restaurantID string, start time.Time, status types.BookingStatus) {
	t.Helper()
	require.NoError(t, gdb.Create(&models.BookRoom{
		ID:           uuid.NewString(),
		RestaurantID: restaurantID,
		GuestID:      "guest-x",
		TimeStart:    start,
		TimeEnd:      start.Add(2 * time.Hour),
		Status:       status,
	}).Error)
}

func TestHasBookingConflict(t *testing.T) {
	gdb := openTestDb(t)
	base := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	seedConflictBooking(t, gdb, "res-a", base, types.BOOKING_NEW_CREATED)

	// a window straddling the existing start conflicts
	got, err := HasBookingConflict(gdb, "res-a", base.Add(-time.Hour), base.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, got)

	// only the start time matters: a window that overlaps the tail of the
	// existing booking but begins after its start does not count
	got, err = HasBookingConflict(gdb, "res-a", base.Add(30*time.Minute), base.Add(3*time.Hour))
	require.NoError(t, err)
	assert.False(t, got)

	// other tenants never collide
	got, err = HasBookingConflict(gdb, "res-b", base.Add(-time.Hour), base.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, got)
}

func TestHasBookingConflictSkipsInactiveStatuses(t *testing.T) {
	gdb := openTestDb(t)
	base := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	for _, status := range types.InactiveBookingStatuses() {
		seedConflictBooking(t, gdb, "res-a", base, status)
	}

	got, err := HasBookingConflict(gdb, "res-a", base.Add(-time.Hour), base.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, got)

	seedConflictBooking(t, gdb, "res-a", base, types.BOOKING_WAITING_RESTAURANT)
	got, err = HasBookingConflict(gdb, "res-a", base.Add(-time.Hour), base.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, got)
}
