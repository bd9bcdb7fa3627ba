package common

import (
	"log"
	"rbs/src/config"
	"rbs/src/db"
	"rbs/src/lib"
	"rbs/src/models"
	"rbs/src/utils"

	"github.com/tidwall/gjson"
	"gorm.io/gorm"
)

// MergeGuestIdentity repoints every booking owned by the old anonymous
// client id to the new one. Used when a device re-registers and the client
// side reports both ids.
func MergeGuestIdentity(oldID, newID string) (int64, error) {
	if oldID == "" || newID == "" || oldID == newID {
		return 0, utils.Validation("both a previous and a new client id are required")
	}
	var moved int64
	err := db.GetDb().Transaction(func(tx *gorm.DB) error {
		res := tx.
			Model(&models.BookRoom{}).
			Where("guest_id = ?", oldID).
			Update("guest_id", newID)
		if res.Error != nil {
			return res.Error
		}
		moved = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, utils.Internal("MergeGuestIdentity", component, err)
	}
	return moved, nil
}

// GuestSyncConsumer listens for client id rotations coming from the broker.
// Blocks; run it on its own goroutine.
func GuestSyncConsumer() {
	lib.KafkaConsume("rbs-guest-sync", []string{config.TOPIC_GUEST_ID_SYNC}, func(value []byte) {
		payload := gjson.ParseBytes(value)
		oldID := payload.Get("clientIdOld").String()
		newID := payload.Get("clientIdNew").String()
		moved, err := MergeGuestIdentity(oldID, newID)
		if err != nil {
			log.Printf("[GuestSyncConsumer] merge failed: %s\n", err)
			return
		}
		log.Printf("[GuestSyncConsumer] moved %d bookings from %s to %s\n", moved, oldID, newID)
	})
}
