package domain

import (
	"context"

	"roomly/internal/models"
)

// Store is the entity store for rooms and bookings. Implementations keep
// insertion order for all list operations and must not let readers observe
// a partially inserted record. CreateRoom assigns the room id; booking ids
// are assigned by the caller before CreateBooking.
type Store interface {
	CreateRoom(ctx context.Context, room *models.Room) error
	CreateBooking(ctx context.Context, booking *models.Booking) error
	ListRooms(ctx context.Context) ([]*models.Room, error)
	ListBookings(ctx context.Context) ([]*models.Booking, error)
	GetRoom(ctx context.Context, id string) (*models.Room, error)
	BookingsByRoom(ctx context.Context, roomID string) ([]*models.Booking, error)
	BookingsByCustomer(ctx context.Context, customerName string) ([]*models.Booking, error)
	Close() error
}

// EventPublisher emits domain events to in-process subscribers.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}
