package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"roomly/internal/models"
)

// Key layout: entities live as JSON under room:<id> / booking:<id>;
// the rooms, bookings, room_bookings:<roomID> and customer_bookings:<name>
// lists hold ids in insertion order.
type RedisStore struct {
	client *redis.Client
}

// RedisOptions mirrors the config knobs the client needs.
type RedisOptions struct {
	Address  string
	Password string
	DB       int
	PoolSize int
}

func NewRedisClient(opts RedisOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: opts.PoolSize,
	})
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Ping verifies the connection before the store is put into service.
func (s *RedisStore) Ping(ctx context.Context) error {
	if _, err := s.client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

func (s *RedisStore) CreateRoom(ctx context.Context, room *models.Room) error {
	room.ID = uuid.NewString()

	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("marshal room: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, roomKey(room.ID), data, 0)
	pipe.RPush(ctx, "rooms", room.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store room: %w", err)
	}
	return nil
}

func (s *RedisStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	data, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("marshal booking: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, bookingKey(booking.ID), data, 0)
	pipe.RPush(ctx, "bookings", booking.ID)
	pipe.RPush(ctx, roomBookingsKey(booking.RoomID), booking.ID)
	pipe.RPush(ctx, customerBookingsKey(booking.CustomerName), booking.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store booking: %w", err)
	}
	return nil
}

func (s *RedisStore) ListRooms(ctx context.Context) ([]*models.Room, error) {
	ids, err := s.client.LRange(ctx, "rooms", 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list room ids: %w", err)
	}

	var rooms []*models.Room
	for _, id := range ids {
		room, err := s.getRoom(ctx, id)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (s *RedisStore) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	return s.bookingsFromList(ctx, "bookings")
}

func (s *RedisStore) GetRoom(ctx context.Context, id string) (*models.Room, error) {
	return s.getRoom(ctx, id)
}

func (s *RedisStore) BookingsByRoom(ctx context.Context, roomID string) ([]*models.Booking, error) {
	return s.bookingsFromList(ctx, roomBookingsKey(roomID))
}

func (s *RedisStore) BookingsByCustomer(ctx context.Context, customerName string) ([]*models.Booking, error) {
	return s.bookingsFromList(ctx, customerBookingsKey(customerName))
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) getRoom(ctx context.Context, id string) (*models.Room, error) {
	val, err := s.client.Get(ctx, roomKey(id)).Result()
	if err == redis.Nil {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get room: %w", err)
	}

	var room models.Room
	if err := json.Unmarshal([]byte(val), &room); err != nil {
		return nil, fmt.Errorf("unmarshal room: %w", err)
	}
	return &room, nil
}

func (s *RedisStore) bookingsFromList(ctx context.Context, listKey string) ([]*models.Booking, error) {
	ids, err := s.client.LRange(ctx, listKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list booking ids: %w", err)
	}

	var bookings []*models.Booking
	for _, id := range ids {
		val, err := s.client.Get(ctx, bookingKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("get booking %s: %w", id, err)
		}

		var b models.Booking
		if err := json.Unmarshal([]byte(val), &b); err != nil {
			return nil, fmt.Errorf("unmarshal booking: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, nil
}

func roomKey(id string) string             { return "room:" + id }
func bookingKey(id string) string          { return "booking:" + id }
func roomBookingsKey(roomID string) string { return "room_bookings:" + roomID }
func customerBookingsKey(name string) string {
	return "customer_bookings:" + name
}
