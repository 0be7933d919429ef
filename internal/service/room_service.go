package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/roombook/backend/internal/domain"
	"github.com/roombook/backend/internal/port"
	"github.com/roombook/backend/internal/validate"
)

// RoomService manages meeting rooms and enforces the operating-hours
// invariant: the effective open time must fall strictly before the
// effective close time, at creation and after every partial update.
type RoomService struct {
	rooms port.RoomStore
}

// NewRoomService creates a new room service.
func NewRoomService(rooms port.RoomStore) *RoomService {
	return &RoomService{rooms: rooms}
}

// CreateRoomInput are the fields for a new meeting room. Both times are
// well-formed "HH:mm" strings; format validation happens at the handler.
type CreateRoomInput struct {
	Name                string
	OpenTime            string
	CloseTime           string
	SlotIntervalMinutes int
}

func scheduleWindowError() validate.FieldErrors {
	fe := validate.FieldErrors{}
	fe.Add("open_time", "open_time must be lower than close_time")
	return fe
}

// Create validates the schedule window and persists the room.
func (s *RoomService) Create(ctx context.Context, in CreateRoomInput) error {
	if domain.MinutesOfDay(in.OpenTime) >= domain.MinutesOfDay(in.CloseTime) {
		return scheduleWindowError()
	}

	_, err := s.rooms.CreateRoom(ctx, &domain.MeetingRoom{
		Name:                in.Name,
		OpenTime:            in.OpenTime,
		CloseTime:           in.CloseTime,
		SlotIntervalMinutes: in.SlotIntervalMinutes,
	})
	if err != nil {
		return internal("Internal server error", err)
	}

	slog.Info("meeting room created", "name", in.Name)
	return nil
}

// List returns all meeting rooms, newest first.
func (s *RoomService) List(ctx context.Context) ([]domain.MeetingRoom, error) {
	rooms, err := s.rooms.ListRooms(ctx)
	if err != nil {
		return nil, internal("Internal server error", err)
	}
	return rooms, nil
}

// Update merges the patch over the persisted open/close times, validates
// the resulting window, and persists the change. The window is always
// evaluated on the merged pair, even when only one side changes.
func (s *RoomService) Update(ctx context.Context, id int64, patch port.RoomPatch) error {
	existing, err := s.rooms.GetRoomByID(ctx, id)
	if errors.Is(err, port.ErrRoomNotFound) {
		return port.ErrRoomNotFound
	}
	if err != nil {
		return internal("Internal server error", err)
	}

	open := existing.OpenTime
	if patch.OpenTime != nil {
		open = *patch.OpenTime
	}
	close := existing.CloseTime
	if patch.CloseTime != nil {
		close = *patch.CloseTime
	}
	if domain.MinutesOfDay(open) >= domain.MinutesOfDay(close) {
		return scheduleWindowError()
	}

	if err := s.rooms.UpdateRoom(ctx, id, patch); err != nil {
		return internal("Internal server error", err)
	}

	slog.Info("meeting room updated", "room_id", id)
	return nil
}

// Delete removes the room.
func (s *RoomService) Delete(ctx context.Context, id int64) error {
	if err := s.rooms.DeleteRoom(ctx, id); err != nil {
		if errors.Is(err, port.ErrRoomNotFound) {
			return port.ErrRoomNotFound
		}
		return internal("Internal server error", err)
	}

	slog.Info("meeting room deleted", "room_id", id)
	return nil
}
