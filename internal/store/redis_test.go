package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/internal/models"
)

func setupRedis(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStore(client)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Ping(context.Background()))
	return s
}

func TestRedisStoreRoomRoundTrip(t *testing.T) {
	s := setupRedis(t)
	ctx := context.Background()

	room := &models.Room{
		Name:         "Focus Booth",
		Seats:        2,
		Amenities:    []string{"screen"},
		PricePerHour: 12,
	}
	require.NoError(t, s.CreateRoom(ctx, room))
	require.NotEmpty(t, room.ID)

	got, err := s.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, room.Name, got.Name)
	assert.Equal(t, room.Amenities, got.Amenities)

	_, err = s.GetRoom(ctx, "missing")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestRedisStoreInsertionOrder(t *testing.T) {
	s := setupRedis(t)
	ctx := context.Background()

	for _, name := range []string{"One", "Two", "Three"} {
		require.NoError(t, s.CreateRoom(ctx, &models.Room{Name: name}))
	}

	rooms, err := s.ListRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 3)
	assert.Equal(t, "One", rooms[0].Name)
	assert.Equal(t, "Three", rooms[2].Name)
}

func TestRedisStoreBookingIndexes(t *testing.T) {
	s := setupRedis(t)
	ctx := context.Background()

	bookings := []*models.Booking{
		{ID: "b1", CustomerName: "Alice", Date: "2024-01-01", StartTime: "09:00", EndTime: "10:00", RoomID: "r1"},
		{ID: "b2", CustomerName: "Bob", Date: "2024-01-01", StartTime: "10:00", EndTime: "11:00", RoomID: "r1"},
		{ID: "b3", CustomerName: "Alice", Date: "2024-01-02", StartTime: "09:00", EndTime: "10:00", RoomID: "r2"},
	}
	for _, b := range bookings {
		require.NoError(t, s.CreateBooking(ctx, b))
	}

	all, err := s.ListBookings(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)

	byRoom, err := s.BookingsByRoom(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, byRoom, 2)
	assert.Equal(t, "b1", byRoom[0].ID)

	byCustomer, err := s.BookingsByCustomer(ctx, "Alice")
	require.NoError(t, err)
	require.Len(t, byCustomer, 2)
	assert.Equal(t, "b3", byCustomer[1].ID)

	empty, err := s.BookingsByRoom(ctx, "r9")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
