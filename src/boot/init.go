package boot

import (
	"log"
	"rbs/src/common"
	"rbs/src/config"
	"rbs/src/db"
	"rbs/src/lib"
	"rbs/src/models"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
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
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

func InitBroker() {
	go lib.KafkaCreateTopics(
		config.TOPIC_NOTIFICATION,
		config.TOPIC_BOOKING_EMAIL,
		config.TOPIC_GUEST_ID_SYNC,
	)
	go common.BookingEmailConsumer()
	go common.GuestSyncConsumer()
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Fatalf("error scheduler: %s", err.Error())
	}
	common.StartExpirySweeper()
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Printf("scheduler shutdown: %s\n", err)
	}
}
