package domain

import "time"

// Booking records a reservation of a meeting room by a user. Bookings are
// not checked for overlap against each other; two bookings may occupy the
// same room and time range.
type Booking struct {
	ID            int64     `json:"id"              db:"id"`
	Name          string    `json:"name"            db:"name"`
	Purpose       string    `json:"purpose"         db:"purpose"`
	UserID        int64     `json:"user_id"         db:"user_id"`
	MeetingRoomID int64     `json:"meeting_room_id" db:"meeting_room_id"`
	StartTime     time.Time `json:"start_time"      db:"start_time"`
	EndTime       time.Time `json:"end_time"        db:"end_time"`
	CreatedAt     time.Time `json:"created_at"      db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"      db:"updated_at"`
}

// BookingDetail is a booking joined with the name of its meeting room,
// returned when a user lists their own bookings.
type BookingDetail struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Purpose         string    `json:"purpose"`
	MeetingRoomName string    `json:"meeting_room_name"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
}
