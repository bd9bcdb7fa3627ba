package common

import (
	"fmt"
	"log"
	"os"
	"rbs/src/config"
	"rbs/src/lib"
	"rbs/src/models"

	"github.com/tidwall/gjson"
)

// SendBookingConfirmMail publishes the confirmation email for a fresh
// booking. The link carries the booking id and restaurant id so the guest
// side can call the confirm endpoint without any session.
func SendBookingConfirmMail(booking *models.BookRoom, linkConfirm string) {
	link := fmt.Sprintf("%s?bkr_id=%s&restaurant_id=%s", linkConfirm, booking.ID, booking.RestaurantID)
	body := fmt.Sprintf(
		"Hello %s,\n\nyour room booking from %s to %s is waiting for your confirmation. Please confirm within 10 minutes:\n\n%s\n",
		booking.GuestName,
		booking.TimeStart.Format(config.TIME_PARSE_FORMAT),
		booking.TimeEnd.Format(config.TIME_PARSE_FORMAT),
		link,
	)
	lib.KafkaProduceMessage("rbs", config.TOPIC_BOOKING_EMAIL, map[string]any{
		"to":      booking.Email,
		"subject": "Please confirm your room booking",
		"text":    body,
	})
}

// BookingEmailConsumer drains the booking email topic and hands each message
// to the SMTP client. Blocks; run it on its own goroutine.
func BookingEmailConsumer() {
	lib.KafkaConsume("rbs-mailer", []string{config.TOPIC_BOOKING_EMAIL}, func(value []byte) {
		payload := gjson.ParseBytes(value)
		to := payload.Get("to").String()
		if to == "" {
			log.Printf("[BookingEmailConsumer] message without recipient dropped\n")
			return
		}
		input := &lib.SendMailInput{
			From:     os.Getenv("SMTP_USERNAME"),
			FromName: "Room Booking",
			To:       []string{to},
			Subject:  payload.Get("subject").String(),
			Body:     payload.Get("text").String(),
		}
		if err := lib.SendMail(input); err != nil {
			log.Printf("[BookingEmailConsumer] failed to send mail to %s: %s\n", to, err)
		}
	})
}
