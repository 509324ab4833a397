// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into notifications.
package queue

// StatusQueueName is the durable queue carrying booking lifecycle events.
const StatusQueueName = "booking.status"

// BookingStatusEvent is published whenever a booking changes state
// (created, confirmed, cancelled, and so on).  It carries everything the
// notification consumer needs so it never has to query the primary
// database.
type BookingStatusEvent struct {
	BookingID  uint64 `json:"booking_id"`
	UserID     uint64 `json:"user_id"`
	UserEmail  string `json:"user_email"`
	UserName   string `json:"user_name"`
	RoomName   string `json:"room_name"`
	RoomNumber string `json:"room_number"`
	StartsAt   string `json:"starts_at"`
	EndsAt     string `json:"ends_at"`
	Status     string `json:"status"`
	Reason     string `json:"reason,omitempty"`
	OccurredAt string `json:"occurred_at"`
}
