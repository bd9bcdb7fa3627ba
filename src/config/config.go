package config

import (
	"fmt"
	"os"
	"time"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"

// A guest has this long to confirm a new booking through the email link
// before the sweeper expires it.
const BOOKING_CONFIRM_TIMEOUT = 10 * time.Minute

// Cadence of the expiry sweeper job.
const SWEEP_INTERVAL = 1 * time.Minute

// Broker topics shared with the surrounding services.
const (
	TOPIC_NOTIFICATION  = "NOTIFICATION_ACCOUNT_CREATE"
	TOPIC_BOOKING_EMAIL = "CREATE_BOOKING_ROOM"
	TOPIC_GUEST_ID_SYNC = "SYNC_CLIENT_ID"
)

var API_ENV = os.Getenv("API_ENV")
