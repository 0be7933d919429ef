package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/roombook/backend/internal/domain"
	"github.com/roombook/backend/internal/port"
)

// BookingService manages bookings on behalf of an authenticated user.
// Bookings are deliberately not checked for overlap.
type BookingService struct {
	bookings port.BookingStore
}

// NewBookingService creates a new booking service.
func NewBookingService(bookings port.BookingStore) *BookingService {
	return &BookingService{bookings: bookings}
}

// CreateBookingInput are the fields for a new booking, created for UserID.
type CreateBookingInput struct {
	Name          string
	Purpose       string
	UserID        int64
	MeetingRoomID int64
	StartTime     time.Time
	EndTime       time.Time
}

// Create persists a booking for the given user.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) error {
	_, err := s.bookings.CreateBooking(ctx, &domain.Booking{
		Name:          in.Name,
		Purpose:       in.Purpose,
		UserID:        in.UserID,
		MeetingRoomID: in.MeetingRoomID,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
	})
	if err != nil {
		return internal("Internal server error", err)
	}

	slog.Info("booking created", "user_id", in.UserID, "meeting_room_id", in.MeetingRoomID)
	return nil
}

// List returns every booking, newest first.
func (s *BookingService) List(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListBookings(ctx)
	if err != nil {
		return nil, internal("Internal server error", err)
	}
	return bookings, nil
}

// ListMine returns the user's own bookings joined with room names.
func (s *BookingService) ListMine(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	bookings, err := s.bookings.ListBookingsByUser(ctx, userID)
	if err != nil {
		return nil, internal("Internal server error", err)
	}
	return bookings, nil
}

// Update applies a partial update to a booking owned by the user.
func (s *BookingService) Update(ctx context.Context, id, userID int64, patch port.BookingPatch) error {
	if err := s.bookings.UpdateBooking(ctx, id, userID, patch); err != nil {
		if errors.Is(err, port.ErrBookingNotFound) {
			return port.ErrBookingNotFound
		}
		return internal("Internal server error", err)
	}

	slog.Info("booking updated", "booking_id", id, "user_id", userID)
	return nil
}

// Delete removes a booking owned by the user.
func (s *BookingService) Delete(ctx context.Context, id, userID int64) error {
	if err := s.bookings.DeleteBooking(ctx, id, userID); err != nil {
		if errors.Is(err, port.ErrBookingNotFound) {
			return port.ErrBookingNotFound
		}
		return internal("Internal server error", err)
	}

	slog.Info("booking deleted", "booking_id", id, "user_id", userID)
	return nil
}
