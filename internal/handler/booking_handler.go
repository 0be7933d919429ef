package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/roombook/backend/internal/middleware"
	"github.com/roombook/backend/internal/port"
	"github.com/roombook/backend/internal/service"
	"github.com/roombook/backend/internal/validate"
)

// BookingHandler handles booking CRUD for authenticated users. Updates and
// deletes are scoped to the booking's owner.
type BookingHandler struct {
	bookings     *service.BookingService
	roomStore    port.RoomStore
	bookingStore port.BookingStore
}

// NewBookingHandler creates a new booking handler. The stores are
// consulted during validation for referential checks.
func NewBookingHandler(bookings *service.BookingService, roomStore port.RoomStore, bookingStore port.BookingStore) *BookingHandler {
	return &BookingHandler{bookings: bookings, roomStore: roomStore, bookingStore: bookingStore}
}

// Register sets up the booking routes.
func (h *BookingHandler) Register(app *fiber.App, requireAuth fiber.Handler) {
	bookings := app.Group("/booking", requireAuth)
	bookings.Post("/", h.Create)
	bookings.Get("/", h.List)
	bookings.Put("/:id", h.Update)
	bookings.Delete("/:id", h.Delete)

	user := app.Group("/user", requireAuth)
	user.Get("/booking", h.ListMine)
}

type createBookingRequest struct {
	Name          string `json:"name"`
	MeetingRoomID *int64 `json:"meeting_room_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Purpose       string `json:"purpose"`
}

// parseISOTime accepts RFC 3339 timestamps and date-only values the way
// an ISO 8601 validator does.
func parseISOTime(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Create validates and persists a booking for the current user.
func (h *BookingHandler) Create(c fiber.Ctx) error {
	user := middleware.AuthUser(c)
	if user == nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req createBookingRequest
	if err := c.Bind().JSON(&req); err != nil {
		return failBind(c)
	}

	fe := validate.FieldErrors{}

	if req.Name == "" {
		fe.Add("name", "name is required")
	}

	switch {
	case req.MeetingRoomID == nil:
		fe.Add("meeting_room_id", "meeting_room_id is required")
	case *req.MeetingRoomID < 1:
		fe.Add("meeting_room_id", "meeting_room_id must be a valid integer")
	default:
		_, err := h.roomStore.GetRoomByID(c.Context(), *req.MeetingRoomID)
		switch {
		case errors.Is(err, port.ErrRoomNotFound):
			fe.Add("meeting_room_id", "Meeting room not found")
		case err != nil:
			return fail(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}

	var startTime, endTime time.Time
	var startOK, endOK bool
	switch {
	case req.StartTime == "":
		fe.Add("start_time", "start_time is required")
	default:
		startTime, startOK = parseISOTime(req.StartTime)
		if !startOK {
			fe.Add("start_time", "start_time must be a valid ISO 8601 date")
		}
	}
	switch {
	case req.EndTime == "":
		fe.Add("end_time", "end_time is required")
	default:
		endTime, endOK = parseISOTime(req.EndTime)
		if !endOK {
			fe.Add("end_time", "end_time must be a valid ISO 8601 date")
		}
	}
	if startOK && endOK && !endTime.After(startTime) {
		fe.Add("end_time", "end_time must be greater than start_time")
	}

	switch {
	case req.Purpose == "":
		fe.Add("purpose", "purpose is required")
	case len(req.Purpose) < 3:
		fe.Add("purpose", "purpose must be at least 3 characters long")
	}

	if fe.HasErrors() {
		return failFields(c, fe)
	}

	err := h.bookings.Create(c.Context(), service.CreateBookingInput{
		Name:          req.Name,
		Purpose:       req.Purpose,
		UserID:        user.ID,
		MeetingRoomID: *req.MeetingRoomID,
		StartTime:     startTime,
		EndTime:       endTime,
	})
	if err != nil {
		return failServiceErr(c, err)
	}

	return success(c, fiber.StatusOK, "Booking created successfully")
}

type bookingSummary struct {
	ID            int64     `json:"id"`
	MeetingRoomID int64     `json:"meeting_room_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
}

// List returns every booking, newest first.
func (h *BookingHandler) List(c fiber.Ctx) error {
	bookings, err := h.bookings.List(c.Context())
	if err != nil {
		return failServiceErr(c, err)
	}

	summaries := make([]bookingSummary, 0, len(bookings))
	for _, b := range bookings {
		summaries = append(summaries, bookingSummary{
			ID:            b.ID,
			MeetingRoomID: b.MeetingRoomID,
			StartTime:     b.StartTime,
			EndTime:       b.EndTime,
		})
	}
	return successData(c, summaries)
}

// ListMine returns the current user's bookings with room names.
func (h *BookingHandler) ListMine(c fiber.Ctx) error {
	user := middleware.AuthUser(c)
	if user == nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	bookings, err := h.bookings.ListMine(c.Context(), user.ID)
	if err != nil {
		return failServiceErr(c, err)
	}
	return successData(c, bookings)
}

type updateBookingRequest struct {
	Name          *string `json:"name"`
	MeetingRoomID *int64  `json:"meeting_room_id"`
	StartTime     *string `json:"start_time"`
	EndTime       *string `json:"end_time"`
	Purpose       *string `json:"purpose"`
}

// bookingIDParam validates the :id parameter and confirms the booking
// exists and belongs to the current user.
func (h *BookingHandler) bookingIDParam(c fiber.Ctx, userID int64) (int64, validate.FieldErrors, error) {
	fe := validate.FieldErrors{}
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		fe.Add("id", "Booking ID must be a positive integer")
		return 0, fe, nil
	}

	_, err = h.bookingStore.GetBookingByIDAndUser(c.Context(), id, userID)
	if errors.Is(err, port.ErrBookingNotFound) {
		fe.Add("id", "Booking not found")
		return 0, fe, nil
	}
	if err != nil {
		return 0, nil, err
	}
	return id, fe, nil
}

// Update applies a partial update to one of the current user's bookings.
func (h *BookingHandler) Update(c fiber.Ctx) error {
	user := middleware.AuthUser(c)
	if user == nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	id, fe, err := h.bookingIDParam(c, user.ID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if fe.HasErrors() {
		return failFields(c, fe)
	}

	var req updateBookingRequest
	if err := c.Bind().JSON(&req); err != nil {
		return failBind(c)
	}

	if req.MeetingRoomID != nil {
		switch {
		case *req.MeetingRoomID < 1:
			fe.Add("meeting_room_id", "meeting_room_id must be a positive integer")
		default:
			_, err := h.roomStore.GetRoomByID(c.Context(), *req.MeetingRoomID)
			switch {
			case errors.Is(err, port.ErrRoomNotFound):
				fe.Add("meeting_room_id", "Meeting room not found")
			case err != nil:
				return fail(c, fiber.StatusInternalServerError, "Internal server error")
			}
		}
	}

	patch := port.BookingPatch{Name: req.Name, Purpose: req.Purpose, MeetingRoomID: req.MeetingRoomID}
	var startTime time.Time
	var startOK bool
	if req.StartTime != nil {
		startTime, startOK = parseISOTime(*req.StartTime)
		if !startOK {
			fe.Add("start_time", "start_time must be a valid ISO 8601 date")
		} else {
			patch.StartTime = &startTime
		}
	}
	if req.EndTime != nil {
		endTime, ok := parseISOTime(*req.EndTime)
		if !ok {
			fe.Add("end_time", "end_time must be a valid ISO 8601 date")
		} else {
			if startOK && !endTime.After(startTime) {
				fe.Add("end_time", "end_time must be greater than start_time")
			}
			patch.EndTime = &endTime
		}
	}
	if req.Purpose != nil && len(*req.Purpose) < 3 {
		fe.Add("purpose", "purpose must be at least 3 characters long")
	}
	if fe.HasErrors() {
		return failFields(c, fe)
	}

	if err := h.bookings.Update(c.Context(), id, user.ID, patch); err != nil {
		if errors.Is(err, port.ErrBookingNotFound) {
			fe.Add("id", "Booking not found")
			return failFields(c, fe)
		}
		return failServiceErr(c, err)
	}

	return success(c, fiber.StatusOK, "Booking updated successfully")
}

// Delete removes one of the current user's bookings.
func (h *BookingHandler) Delete(c fiber.Ctx) error {
	user := middleware.AuthUser(c)
	if user == nil {
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	id, fe, err := h.bookingIDParam(c, user.ID)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Internal server error")
	}
	if fe.HasErrors() {
		return failFields(c, fe)
	}

	if err := h.bookings.Delete(c.Context(), id, user.ID); err != nil {
		if errors.Is(err, port.ErrBookingNotFound) {
			fe.Add("id", "Booking not found")
			return failFields(c, fe)
		}
		return failServiceErr(c, err)
	}

	return success(c, fiber.StatusOK, "Booking deleted successfully")
}
