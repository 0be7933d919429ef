package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roombook/backend/internal/domain"
	"github.com/roombook/backend/internal/port"
)

// PostgresStore handles all relational database operations. It implements
// port.UserStore, port.RoomStore, and port.BookingStore.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection and returns a store instance.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// --- Users ---

// CreateUser inserts a new user record.
func (s *PostgresStore) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	query := `INSERT INTO users (first_name, last_name, email, password, role)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id, first_name, last_name, email, password, role, refresh_token, created_at, updated_at`

	row := s.db.QueryRowContext(ctx, query, u.FirstName, u.LastName, u.Email, u.PasswordHash, u.Role)
	user, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email. Returns port.ErrUserNotFound
// when no row matches.
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT id, first_name, last_name, email, password, role, refresh_token, created_at, updated_at
	          FROM users WHERE email = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return user, nil
}

// GetUserByID retrieves a user by ID. Returns port.ErrUserNotFound when no
// row matches.
func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT id, first_name, last_name, email, password, role, refresh_token, created_at, updated_at
	          FROM users WHERE id = $1`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// UpdateRefreshToken overwrites the user's refresh-token slot.
func (s *PostgresStore) UpdateRefreshToken(ctx context.Context, id int64, token string) error {
	query := `UPDATE users SET refresh_token = $2, updated_at = NOW() WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id, token)
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}
	if affected == 0 {
		return port.ErrUserNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	var refreshToken sql.NullString
	err := row.Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email,
		&user.PasswordHash, &user.Role, &refreshToken,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if refreshToken.Valid {
		user.RefreshToken = &refreshToken.String
	}
	return &user, nil
}

// --- Meeting rooms ---

// CreateRoom inserts a new meeting room.
func (s *PostgresStore) CreateRoom(ctx context.Context, r *domain.MeetingRoom) (*domain.MeetingRoom, error) {
	query := `INSERT INTO meeting_rooms (name, open_time, close_time, slot_interval_minutes)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, name, open_time, close_time, slot_interval_minutes, created_at, updated_at`

	var room domain.MeetingRoom
	err := s.db.QueryRowContext(ctx, query, r.Name, r.OpenTime, r.CloseTime, r.SlotIntervalMinutes).Scan(
		&room.ID, &room.Name, &room.OpenTime, &room.CloseTime,
		&room.SlotIntervalMinutes, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}
	return &room, nil
}

// GetRoomByID retrieves a meeting room by ID.
func (s *PostgresStore) GetRoomByID(ctx context.Context, id int64) (*domain.MeetingRoom, error) {
	query := `SELECT id, name, open_time, close_time, slot_interval_minutes, created_at, updated_at
	          FROM meeting_rooms WHERE id = $1`
	return s.getRoom(ctx, query, id)
}

// GetRoomByName retrieves a meeting room by its unique name.
func (s *PostgresStore) GetRoomByName(ctx context.Context, name string) (*domain.MeetingRoom, error) {
	query := `SELECT id, name, open_time, close_time, slot_interval_minutes, created_at, updated_at
	          FROM meeting_rooms WHERE name = $1`
	return s.getRoom(ctx, query, name)
}

func (s *PostgresStore) getRoom(ctx context.Context, query string, arg any) (*domain.MeetingRoom, error) {
	var room domain.MeetingRoom
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&room.ID, &room.Name, &room.OpenTime, &room.CloseTime,
		&room.SlotIntervalMinutes, &room.CreatedAt, &room.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}
	return &room, nil
}

// ListRooms returns all meeting rooms, newest first.
func (s *PostgresStore) ListRooms(ctx context.Context) ([]domain.MeetingRoom, error) {
	query := `SELECT id, name, open_time, close_time, slot_interval_minutes, created_at, updated_at
	          FROM meeting_rooms ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []domain.MeetingRoom
	for rows.Next() {
		var r domain.MeetingRoom
		if err := rows.Scan(
			&r.ID, &r.Name, &r.OpenTime, &r.CloseTime,
			&r.SlotIntervalMinutes, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan room: %w", err)
		}
		rooms = append(rooms, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

// UpdateRoom applies a partial update; nil patch fields keep the stored
// value.
func (s *PostgresStore) UpdateRoom(ctx context.Context, id int64, patch port.RoomPatch) error {
	query := `UPDATE meeting_rooms SET
	            name = COALESCE($2, name),
	            open_time = COALESCE($3, open_time),
	            close_time = COALESCE($4, close_time),
	            updated_at = NOW()
	          WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id, patch.Name, patch.OpenTime, patch.CloseTime)
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update room: %w", err)
	}
	if affected == 0 {
		return port.ErrRoomNotFound
	}
	return nil
}

// DeleteRoom removes a meeting room.
func (s *PostgresStore) DeleteRoom(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM meeting_rooms WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete room: %w", err)
	}
	if affected == 0 {
		return port.ErrRoomNotFound
	}
	return nil
}

// --- Bookings ---

// CreateBooking inserts a new booking.
func (s *PostgresStore) CreateBooking(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	query := `INSERT INTO bookings (name, purpose, user_id, meeting_room_id, start_time, end_time)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, name, purpose, user_id, meeting_room_id, start_time, end_time, created_at, updated_at`

	var booking domain.Booking
	err := s.db.QueryRowContext(ctx, query,
		b.Name, b.Purpose, b.UserID, b.MeetingRoomID, b.StartTime, b.EndTime,
	).Scan(
		&booking.ID, &booking.Name, &booking.Purpose, &booking.UserID,
		&booking.MeetingRoomID, &booking.StartTime, &booking.EndTime,
		&booking.CreatedAt, &booking.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return &booking, nil
}

// GetBookingByIDAndUser retrieves a booking scoped to its owner.
func (s *PostgresStore) GetBookingByIDAndUser(ctx context.Context, id, userID int64) (*domain.Booking, error) {
	query := `SELECT id, name, purpose, user_id, meeting_room_id, start_time, end_time, created_at, updated_at
	          FROM bookings WHERE id = $1 AND user_id = $2`

	var b domain.Booking
	err := s.db.QueryRowContext(ctx, query, id, userID).Scan(
		&b.ID, &b.Name, &b.Purpose, &b.UserID,
		&b.MeetingRoomID, &b.StartTime, &b.EndTime,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

// ListBookings returns every booking, newest first.
func (s *PostgresStore) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	query := `SELECT id, name, purpose, user_id, meeting_room_id, start_time, end_time, created_at, updated_at
	          FROM bookings ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Purpose, &b.UserID,
			&b.MeetingRoomID, &b.StartTime, &b.EndTime,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// ListBookingsByUser returns a user's bookings joined with room names,
// newest first.
func (s *PostgresStore) ListBookingsByUser(ctx context.Context, userID int64) ([]domain.BookingDetail, error) {
	query := `SELECT b.id, b.name, b.purpose, m.name, b.start_time, b.end_time
	          FROM bookings b
	          JOIN meeting_rooms m ON m.id = b.meeting_room_id
	          WHERE b.user_id = $1
	          ORDER BY b.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list user bookings: %w", err)
	}
	defer rows.Close()

	var bookings []domain.BookingDetail
	for rows.Next() {
		var b domain.BookingDetail
		if err := rows.Scan(
			&b.ID, &b.Name, &b.Purpose, &b.MeetingRoomName,
			&b.StartTime, &b.EndTime,
		); err != nil {
			return nil, fmt.Errorf("scan user booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list user bookings: %w", err)
	}
	return bookings, nil
}

// UpdateBooking applies a partial update to a booking owned by userID.
func (s *PostgresStore) UpdateBooking(ctx context.Context, id, userID int64, patch port.BookingPatch) error {
	query := `UPDATE bookings SET
	            name = COALESCE($3, name),
	            purpose = COALESCE($4, purpose),
	            meeting_room_id = COALESCE($5, meeting_room_id),
	            start_time = COALESCE($6, start_time),
	            end_time = COALESCE($7, end_time),
	            updated_at = NOW()
	          WHERE id = $1 AND user_id = $2`

	res, err := s.db.ExecContext(ctx, query, id, userID,
		patch.Name, patch.Purpose, patch.MeetingRoomID, patch.StartTime, patch.EndTime)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	if affected == 0 {
		return port.ErrBookingNotFound
	}
	return nil
}

// DeleteBooking removes a booking owned by userID.
func (s *PostgresStore) DeleteBooking(ctx context.Context, id, userID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if affected == 0 {
		return port.ErrBookingNotFound
	}
	return nil
}
