package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"roomly/internal/models"
)

// MemoryStore keeps rooms and bookings in process memory for the lifetime
// of the process. It is the default backend and the reference for store
// semantics: insertion order on every list, no partial reads.
type MemoryStore struct {
	mu       sync.RWMutex
	rooms    []*models.Room
	bookings []*models.Booking
	byRoomID map[string]*models.Room
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byRoomID: make(map[string]*models.Room),
	}
}

func (s *MemoryStore) CreateRoom(ctx context.Context, room *models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	room.ID = uuid.NewString()
	s.rooms = append(s.rooms, room)
	s.byRoomID[room.ID] = room
	return nil
}

func (s *MemoryStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bookings = append(s.bookings, booking)
	return nil
}

func (s *MemoryStore) ListRooms(ctx context.Context) ([]*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]*models.Room, len(s.rooms))
	copy(rooms, s.rooms)
	return rooms, nil
}

func (s *MemoryStore) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]*models.Booking, len(s.bookings))
	copy(bookings, s.bookings)
	return bookings, nil
}

func (s *MemoryStore) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.byRoomID[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (s *MemoryStore) BookingsByRoom(ctx context.Context, roomID string) ([]*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var bookings []*models.Booking
	for _, b := range s.bookings {
		if b.RoomID == roomID {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (s *MemoryStore) BookingsByCustomer(ctx context.Context, customerName string) ([]*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var bookings []*models.Booking
	for _, b := range s.bookings {
		if b.CustomerName == customerName {
			bookings = append(bookings, b)
		}
	}
	return bookings, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
