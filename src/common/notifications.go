package common

import (
	"log"
	"rbs/src/config"
	"rbs/src/db"
	"rbs/src/lib"
	"rbs/src/models"
	"rbs/src/types"

	"github.com/google/uuid"
)

// NotifyRestaurant persists a notification row and pushes it onto the
// broker. Runs detached from whatever transition triggered it: a broker or
// database hiccup is logged and never surfaces to the caller.
func NotifyRestaurant(restaurantID, title, content string, metadata types.JSONB) {
	go func() {
		noti := models.Notification{
			ID:           uuid.New(),
			RestaurantID: restaurantID,
			Title:        title,
			Content:      content,
			Type:         "booking",
			Metadata:     &metadata,
			Audience:     "all_account",
		}
		if err := db.GetDb().Create(&noti).Error; err != nil {
			log.Printf("[NotifyRestaurant] failed to persist notification: %s\n", err)
		}
		lib.KafkaProduceMessage("rbs", config.TOPIC_NOTIFICATION, map[string]any{
			"restaurantId":  restaurantID,
			"noti_content":  content,
			"noti_title":    title,
			"noti_type":     "booking",
			"noti_metadata": metadata,
			"sendObject":    "all_account",
		})
	}()
}
