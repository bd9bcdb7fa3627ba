package common

import (
	"rbs/src/models"
	"rbs/src/types"
	"time"

	"gorm.io/gorm"
)

// HasBookingConflict reports whether any booking of the restaurant still in
// the live pipeline has its start time inside the proposed window. Bookings
// in an inactive status no longer contend for the room and are skipped.
//
// Matching on the existing booking's start time only (not full interval
// overlap) mirrors the behavior the surrounding system was built against; a
// nested window whose start falls outside an existing booking's window is
// admitted.
func HasBookingConflict(tx *gorm.DB, restaurantID string, start, end time.Time) (bool, error) {
	var count int64
	err := tx.
		Model(&models.BookRoom{}).
		Where("restaurant_id = ?", restaurantID).
		Where("time_start BETWEEN ? AND ?", start, end).
		Where("status NOT IN ?", types.InactiveBookingStatuses()).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
