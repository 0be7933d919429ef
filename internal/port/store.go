package port

import (
	"context"
	"time"

	"github.com/roombook/backend/internal/domain"
)

// UserStore abstracts identity persistence. Lookups return ErrUserNotFound
// for absence; any other error is a store fault.
type UserStore interface {
	CreateUser(ctx context.Context, u *domain.User) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)

	// UpdateRefreshToken overwrites the single refresh-token slot for
	// the user, revoking whatever token was stored before.
	UpdateRefreshToken(ctx context.Context, id int64, token string) error
}

// RoomPatch carries a partial meeting-room update; nil fields keep the
// persisted value.
type RoomPatch struct {
	Name      *string
	OpenTime  *string
	CloseTime *string
}

// RoomStore abstracts meeting-room persistence.
type RoomStore interface {
	CreateRoom(ctx context.Context, r *domain.MeetingRoom) (*domain.MeetingRoom, error)
	GetRoomByID(ctx context.Context, id int64) (*domain.MeetingRoom, error)
	GetRoomByName(ctx context.Context, name string) (*domain.MeetingRoom, error)
	ListRooms(ctx context.Context) ([]domain.MeetingRoom, error)
	UpdateRoom(ctx context.Context, id int64, patch RoomPatch) error
	DeleteRoom(ctx context.Context, id int64) error
}

// BookingPatch carries a partial booking update; nil fields keep the
// persisted value.
type BookingPatch struct {
	Name          *string
	Purpose       *string
	MeetingRoomID *int64
	StartTime     *time.Time
	EndTime       *time.Time
}

// BookingStore abstracts booking persistence. Update and Delete are scoped
// to the owning user and return ErrBookingNotFound when no row matches.
type BookingStore interface {
	CreateBooking(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	GetBookingByIDAndUser(ctx context.Context, id, userID int64) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	ListBookingsByUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error)
	UpdateBooking(ctx context.Context, id, userID int64, patch BookingPatch) error
	DeleteBooking(ctx context.Context, id, userID int64) error
}
