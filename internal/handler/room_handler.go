package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/roombook/backend/internal/domain"
	"github.com/roombook/backend/internal/port"
	"github.com/roombook/backend/internal/service"
	"github.com/roombook/backend/internal/validate"
)

// RoomHandler handles meeting-room CRUD. Listing requires authentication;
// create, update, and delete additionally require the ADMIN role.
type RoomHandler struct {
	rooms     *service.RoomService
	roomStore port.RoomStore
}

// NewRoomHandler creates a new room handler. The room store is consulted
// during validation for name uniqueness and id existence.
func NewRoomHandler(rooms *service.RoomService, roomStore port.RoomStore) *RoomHandler {
	return &RoomHandler{rooms: rooms, roomStore: roomStore}
}

// Register sets up the meeting-room routes.
func (h *RoomHandler) Register(app *fiber.App, requireAuth, requireAdmin fiber.Handler) {
	rooms := app.Group("/meeting-room", requireAuth)
	rooms.Get("/", h.List)

	admin := app.Group("/meeting-room", requireAuth, requireAdmin)
	admin.Post("/", h.Create)
	admin.Put("/:id", h.Update)
	admin.Delete("/:id", h.Delete)
}

type createRoomRequest struct {
	Name                string `json:"name"`
	OpenTime            string `json:"open_time"`
	CloseTime           string `json:"close_time"`
	SlotIntervalMinutes *int   `json:"slot_interval_minutes"`
}

// Create validates and persists a new meeting room.
func (h *RoomHandler) Create(c fiber.Ctx) error {
	var req createRoomRequest
	if err := c.Bind().JSON(&req); err != nil {
		return failBind(c)
	}

	fe := validate.FieldErrors{}

	switch {
	case req.Name == "":
		fe.Add("name", "name is required")
	case len(req.Name) < 2:
		fe.Add("name", "name must be at least 2 characters long")
	default:
		_, err := h.roomStore.GetRoomByName(c.Context(), req.Name)
		switch {
		case err == nil:
			fe.Add("name", "Meeting room name already exists")
		case !errors.Is(err, port.ErrRoomNotFound):
			return fail(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}

	switch {
	case req.OpenTime == "":
		fe.Add("open_time", "open_time is required")
	case !domain.ValidClock(req.OpenTime):
		fe.Add("open_time", "open_time must be in HH:mm format")
	}

	switch {
	case req.CloseTime == "":
		fe.Add("close_time", "close_time is required")
	case !domain.ValidClock(req.CloseTime):
		fe.Add("close_time", "close_time must be in HH:mm format")
	}

	switch {
	case req.SlotIntervalMinutes == nil:
		fe.Add("slot_interval_minutes", "slot_interval_minutes is required")
	case *req.SlotIntervalMinutes < 5:
		fe.Add("slot_interval_minutes", "slot_interval_minutes must be at least 5 minutes")
	}

	if fe.HasErrors() {
		return failFields(c, fe)
	}

	err := h.rooms.Create(c.Context(), service.CreateRoomInput{
		Name:                req.Name,
		OpenTime:            req.OpenTime,
		CloseTime:           req.CloseTime,
		SlotIntervalMinutes: *req.SlotIntervalMinutes,
	})
	if err != nil {
		return failServiceErr(c, err)
	}

	return success(c, fiber.StatusCreated, "Meeting room created successfully")
}

type roomSummary struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// List returns every meeting room as {id, name}, newest first.
func (h *RoomHandler) List(c fiber.Ctx) error {
	rooms, err := h.rooms.List(c.Context())
	if err != nil {
		return failServiceErr(c, err)
	}

	summaries := make([]roomSummary, 0, len(rooms))
	for _, r := range rooms {
		summaries = append(summaries, roomSummary{ID: r.ID, Name: r.Name})
	}
	return successData(c, summaries)
}

type updateRoomRequest struct {
	Name                string `json:"name"`
	OpenTime            *string `json:"open_time"`
	CloseTime           *string `json:"close_time"`
	SlotIntervalMinutes *int    `json:"slot_interval_minutes"`
}

// roomIDParam validates the :id parameter and confirms the room exists.
func (h *RoomHandler) roomIDParam(c fiber.Ctx) (int64, validate.FieldErrors, error) {
	fe := validate.FieldErrors{}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		fe.Add("id", "Meeting room ID must be a positive integer")
		return 0, fe, nil
	}

	_, err = h.roomStore.GetRoomByID(c.Context(), id)
	if errors.Is(err, port.ErrRoomNotFound) {
		fe.Add("id", "Meeting room not found")
		return 0, fe, nil
	}
	if err != nil {
		return 0, nil, err
	}
	return id, fe, nil
}

// Update validates a partial update, merges it over the persisted room,
// and persists it.
func (h *RoomHandler) Update(c fiber.Ctx) error {
	id, fe, err := h.roomIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if fe.HasErrors() {
		return failFields(c, fe)
	}

	var req updateRoomRequest
	if err := c.Bind().JSON(&req); err != nil {
		return failBind(c)
	}

	if req.Name != "" {
		if len(req.Name) < 2 {
			fe.Add("name", "name must be at least 2 characters long")
		} else {
			existing, err := h.roomStore.GetRoomByName(c.Context(), req.Name)
			switch {
			case err == nil && existing.ID != id:
				fe.Add("name", "Meeting room name already exists")
			case err != nil && !errors.Is(err, port.ErrRoomNotFound):
				return fail(c, fiber.StatusInternalServerError, "Internal server error")
			}
		}
	}
	if req.OpenTime != nil && !domain.ValidClock(*req.OpenTime) {
		fe.Add("open_time", "open_time must be in HH:mm format")
	}
	if req.CloseTime != nil && !domain.ValidClock(*req.CloseTime) {
		fe.Add("close_time", "close_time must be in HH:mm format")
	}
	if req.SlotIntervalMinutes != nil && *req.SlotIntervalMinutes < 5 {
		fe.Add("slot_interval_minutes", "slot_interval_minutes must be at least 5 minutes")
	}
	if fe.HasErrors() {
		return failFields(c, fe)
	}

	patch := port.RoomPatch{OpenTime: req.OpenTime, CloseTime: req.CloseTime}
	if req.Name != "" {
		patch.Name = &req.Name
	}

	if err := h.rooms.Update(c.Context(), id, patch); err != nil {
		if errors.Is(err, port.ErrRoomNotFound) {
			fe.Add("id", "Meeting room not found")
			return failFields(c, fe)
		}
		return failServiceErr(c, err)
	}

	return success(c, fiber.StatusOK, "Meeting room updated successfully")
}

// Delete removes a meeting room.
func (h *RoomHandler) Delete(c fiber.Ctx) error {
	id, fe, err := h.roomIDParam(c)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if fe.HasErrors() {
		return failFields(c, fe)
	}

	if err := h.rooms.Delete(c.Context(), id); err != nil {
		if errors.Is(err, port.ErrRoomNotFound) {
			fe.Add("id", "Meeting room not found")
			return failFields(c, fe)
		}
		return failServiceErr(c, err)
	}

	return success(c, fiber.StatusOK, "Meeting room deleted successfully")
}
