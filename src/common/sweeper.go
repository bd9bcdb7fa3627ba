package common

import (
	"log"
	"rbs/src/config"
	"rbs/src/db"
	"rbs/src/lib"
	"rbs/src/models"
	"rbs/src/types"
	"time"

	"gorm.io/gorm"
)

// ExpireStaleBookings moves every booking that sat in NEW_CREATED past the
// confirmation timeout to OVERTIME_GUEST. Each row is flipped with a
// conditional write, so a guest confirming in the same instant wins and the
// sweep skips that row.
func ExpireStaleBookings(now time.Time) (int, error) {
	cutoff := now.Add(-config.BOOKING_CONFIRM_TIMEOUT)
	expired := 0
	err := db.GetDb().Transaction(func(tx *gorm.DB) error {
		var stale []models.BookRoom
		err := tx.
			Where("status = ?", types.BOOKING_NEW_CREATED).
			Where("created_at < ?", cutoff).
			Find(&stale).
			Error
		if err != nil {
			return err
		}
		for _, booking := range stale {
			history := booking.DetailHistory.Append(types.HistoryEntry{
				Type:        "Booking expired",
				Description: "The guest did not confirm the booking within 10 minutes",
				Time:        now,
			})
			res := tx.
				Model(&models.BookRoom{}).
				Where("id = ? AND status = ?", booking.ID, types.BOOKING_NEW_CREATED).
				Updates(map[string]any{
					"status":         types.BOOKING_OVERTIME_GUEST,
					"detail_history": history,
				})
			if res.Error != nil {
				return res.Error
			}
			expired += int(res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return expired, nil
}

// StartExpirySweeper schedules the per-minute expiry pass.
func StartExpirySweeper() {
	lib.CreateCronJob(func() {
		count, err := ExpireStaleBookings(time.Now())
		if err != nil {
			log.Printf("[ExpirySweeper] sweep failed: %s\n", err)
			return
		}
		if count > 0 {
			log.Printf("[ExpirySweeper] expired %d unconfirmed bookings\n", count)
		}
	}, config.SWEEP_INTERVAL)
}
