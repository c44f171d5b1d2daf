package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"roomly/internal/models"
)

// SQLiteStore persists rooms and bookings in a SQLite database. Amenities
// are stored as a JSON text column. Insertion order is rowid order.
type SQLiteStore struct {
	db     *sql.DB
	logger *zerolog.Logger
}

func NewSQLiteStore(path string, logger *zerolog.Logger) (*SQLiteStore, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("create tables: %w", err)
	}

	logger.Info().Str("path", path).Msg("sqlite store initialized")
	return &SQLiteStore{db: db, logger: logger}, nil
}

func createTables(db *sql.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS rooms (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL,
            seats INTEGER NOT NULL,
            amenities TEXT NOT NULL DEFAULT '[]',
            price_per_hour REAL NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS bookings (
            id TEXT PRIMARY KEY,
            customer_name TEXT NOT NULL,
            date TEXT NOT NULL,
            start_time TEXT NOT NULL,
            end_time TEXT NOT NULL,
            room_id TEXT NOT NULL
        )`,

		`CREATE INDEX IF NOT EXISTS idx_bookings_room_id ON bookings(room_id)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_customer_name ON bookings(customer_name)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_date ON bookings(date)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("exec %q: %w", query, err)
		}
	}
	return nil
}

func (s *SQLiteStore) CreateRoom(ctx context.Context, room *models.Room) error {
	room.ID = uuid.NewString()

	amenities, err := json.Marshal(room.Amenities)
	if err != nil {
		return fmt.Errorf("marshal amenities: %w", err)
	}

	query := `INSERT INTO rooms (id, name, seats, amenities, price_per_hour) VALUES (?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query, room.ID, room.Name, room.Seats, string(amenities), room.PricePerHour); err != nil {
		return fmt.Errorf("insert room: %w", err)
	}
	return nil
}

func (s *SQLiteStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (id, customer_name, date, start_time, end_time, room_id)
              VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		booking.ID,
		booking.CustomerName,
		booking.Date,
		booking.StartTime,
		booking.EndTime,
		booking.RoomID,
	)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListRooms(ctx context.Context) ([]*models.Room, error) {
	query := `SELECT id, name, seats, amenities, price_per_hour FROM rooms ORDER BY rowid`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	var rooms []*models.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (s *SQLiteStore) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	query := `SELECT id, customer_name, date, start_time, end_time, room_id FROM bookings ORDER BY rowid`
	return s.queryBookings(ctx, query)
}

func (s *SQLiteStore) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	query := `SELECT id, name, seats, amenities, price_per_hour FROM rooms WHERE id = ?`

	var room models.Room
	var amenities string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&room.ID, &room.Name, &room.Seats, &amenities, &room.PricePerHour,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	if err := json.Unmarshal([]byte(amenities), &room.Amenities); err != nil {
		return nil, fmt.Errorf("unmarshal amenities: %w", err)
	}
	return &room, nil
}

func (s *SQLiteStore) BookingsByRoom(ctx context.Context, roomID string) ([]*models.Booking, error) {
	query := `SELECT id, customer_name, date, start_time, end_time, room_id
              FROM bookings WHERE room_id = ? ORDER BY rowid`
	return s.queryBookings(ctx, query, roomID)
}

func (s *SQLiteStore) BookingsByCustomer(ctx context.Context, customerName string) ([]*models.Booking, error) {
	query := `SELECT id, customer_name, date, start_time, end_time, room_id
              FROM bookings WHERE customer_name = ? ORDER BY rowid`
	return s.queryBookings(ctx, query, customerName)
}

func (s *SQLiteStore) queryBookings(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b := &models.Booking{}
		err := rows.Scan(&b.ID, &b.CustomerName, &b.Date, &b.StartTime, &b.EndTime, &b.RoomID)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanRoom(rows *sql.Rows) (*models.Room, error) {
	room := &models.Room{}
	var amenities string
	if err := rows.Scan(&room.ID, &room.Name, &room.Seats, &amenities, &room.PricePerHour); err != nil {
		return nil, fmt.Errorf("scan room: %w", err)
	}
	if err := json.Unmarshal([]byte(amenities), &room.Amenities); err != nil {
		return nil, fmt.Errorf("unmarshal amenities: %w", err)
	}
	return room, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
