// Package testfixtures provides in-memory store implementations and clock
// helpers shared by unit tests.
package testfixtures

import (
	"context"
	"sync"
	"time"

	"github.com/roombook/backend/internal/domain"
	"github.com/roombook/backend/internal/port"
)

// FixedClock returns a clock function frozen at t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MemoryUserStore is an in-memory port.UserStore. Setting Err makes every
// operation fail with it, simulating a store fault.
type MemoryUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
	Err    error
}

// NewMemoryUserStore returns an empty in-memory user store.
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{nextID: 1, users: make(map[int64]*domain.User)}
}

func (s *MemoryUserStore) CreateUser(_ context.Context, u *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *u
	stored.ID = s.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.nextID++
	s.users[stored.ID] = &stored
	return &stored, nil
}

func (s *MemoryUserStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, port.ErrUserNotFound
}

func (s *MemoryUserStore) GetUserByID(_ context.Context, id int64) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, port.ErrUserNotFound
	}
	return u, nil
}

func (s *MemoryUserStore) UpdateRefreshToken(_ context.Context, id int64, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	u, ok := s.users[id]
	if !ok {
		return port.ErrUserNotFound
	}
	u.RefreshToken = &token
	u.UpdatedAt = time.Now()
	return nil
}

// MemoryRoomStore is an in-memory port.RoomStore.
type MemoryRoomStore struct {
	mu     sync.Mutex
	nextID int64
	rooms  map[int64]*domain.MeetingRoom
	Err    error
}

// NewMemoryRoomStore returns an empty in-memory room store.
func NewMemoryRoomStore() *MemoryRoomStore {
	return &MemoryRoomStore{nextID: 1, rooms: make(map[int64]*domain.MeetingRoom)}
}

func (s *MemoryRoomStore) CreateRoom(_ context.Context, r *domain.MeetingRoom) (*domain.MeetingRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *r
	stored.ID = s.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.nextID++
	s.rooms[stored.ID] = &stored
	return &stored, nil
}

func (s *MemoryRoomStore) GetRoomByID(_ context.Context, id int64) (*domain.MeetingRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	r, ok := s.rooms[id]
	if !ok {
		return nil, port.ErrRoomNotFound
	}
	return r, nil
}

func (s *MemoryRoomStore) GetRoomByName(_ context.Context, name string) (*domain.MeetingRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, r := range s.rooms {
		if r.Name == name {
			return r, nil
		}
	}
	return nil, port.ErrRoomNotFound
}

func (s *MemoryRoomStore) ListRooms(_ context.Context) ([]domain.MeetingRoom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	rooms := make([]domain.MeetingRoom, 0, len(s.rooms))
	// Newest first: ids are assigned sequentially.
	for id := s.nextID - 1; id >= 1; id-- {
		if r, ok := s.rooms[id]; ok {
			rooms = append(rooms, *r)
		}
	}
	return rooms, nil
}

func (s *MemoryRoomStore) UpdateRoom(_ context.Context, id int64, patch port.RoomPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	r, ok := s.rooms[id]
	if !ok {
		return port.ErrRoomNotFound
	}
	if patch.Name != nil {
		r.Name = *patch.Name
	}
	if patch.OpenTime != nil {
		r.OpenTime = *patch.OpenTime
	}
	if patch.CloseTime != nil {
		r.CloseTime = *patch.CloseTime
	}
	r.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryRoomStore) DeleteRoom(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.rooms[id]; !ok {
		return port.ErrRoomNotFound
	}
	delete(s.rooms, id)
	return nil
}

// MemoryBookingStore is an in-memory port.BookingStore. Room names for
// ListBookingsByUser are resolved against Rooms when set.
type MemoryBookingStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*domain.Booking
	Rooms    *MemoryRoomStore
	Err      error
}

// NewMemoryBookingStore returns an empty in-memory booking store.
func NewMemoryBookingStore(rooms *MemoryRoomStore) *MemoryBookingStore {
	return &MemoryBookingStore{nextID: 1, bookings: make(map[int64]*domain.Booking), Rooms: rooms}
}

func (s *MemoryBookingStore) CreateBooking(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *b
	stored.ID = s.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.nextID++
	s.bookings[stored.ID] = &stored
	return &stored, nil
}

func (s *MemoryBookingStore) GetBookingByIDAndUser(_ context.Context, id, userID int64) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	b, ok := s.bookings[id]
	if !ok || b.UserID != userID {
		return nil, port.ErrBookingNotFound
	}
	return b, nil
}

func (s *MemoryBookingStore) ListBookings(_ context.Context) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	bookings := make([]domain.Booking, 0, len(s.bookings))
	for id := s.nextID - 1; id >= 1; id-- {
		if b, ok := s.bookings[id]; ok {
			bookings = append(bookings, *b)
		}
	}
	return bookings, nil
}

func (s *MemoryBookingStore) ListBookingsByUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var details []domain.BookingDetail
	for id := s.nextID - 1; id >= 1; id-- {
		b, ok := s.bookings[id]
		if !ok || b.UserID != userID {
			continue
		}
		roomName := ""
		if s.Rooms != nil {
			if r, ok := s.Rooms.rooms[b.MeetingRoomID]; ok {
				roomName = r.Name
			}
		}
		details = append(details, domain.BookingDetail{
			ID:              b.ID,
			Name:            b.Name,
			Purpose:         b.Purpose,
			MeetingRoomName: roomName,
			StartTime:       b.StartTime,
			EndTime:         b.EndTime,
		})
	}
	return details, nil
}

func (s *MemoryBookingStore) UpdateBooking(_ context.Context, id, userID int64, patch port.BookingPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	b, ok := s.bookings[id]
	if !ok || b.UserID != userID {
		return port.ErrBookingNotFound
	}
	if patch.Name != nil {
		b.Name = *patch.Name
	}
	if patch.Purpose != nil {
		b.Purpose = *patch.Purpose
	}
	if patch.MeetingRoomID != nil {
		b.MeetingRoomID = *patch.MeetingRoomID
	}
	if patch.StartTime != nil {
		b.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		b.EndTime = *patch.EndTime
	}
	b.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryBookingStore) DeleteBooking(_ context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	b, ok := s.bookings[id]
	if !ok || b.UserID != userID {
		return port.ErrBookingNotFound
	}
	delete(s.bookings, id)
	return nil
}
