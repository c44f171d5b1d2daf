package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/internal/models"
)

func TestMemoryStoreRooms(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first := &models.Room{Name: "First", Seats: 4, Amenities: []string{"tv"}, PricePerHour: 10}
	second := &models.Room{Name: "Second", Seats: 8, PricePerHour: 20}

	require.NoError(t, s.CreateRoom(ctx, first))
	require.NoError(t, s.CreateRoom(ctx, second))
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	rooms, err := s.ListRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "First", rooms[0].Name)
	assert.Equal(t, "Second", rooms[1].Name)

	got, err := s.GetRoom(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.Name, got.Name)

	_, err = s.GetRoom(ctx, "missing")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestMemoryStoreBookingFilters(t *testing.T) {
	s := NewMemoryStore()
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
	assert.Equal(t, "b1", all[0].ID)
	assert.Equal(t, "b3", all[2].ID)

	byRoom, err := s.BookingsByRoom(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, byRoom, 2)
	assert.Equal(t, "b1", byRoom[0].ID)
	assert.Equal(t, "b2", byRoom[1].ID)

	byCustomer, err := s.BookingsByCustomer(ctx, "Alice")
	require.NoError(t, err)
	require.Len(t, byCustomer, 2)
	assert.Equal(t, "b1", byCustomer[0].ID)
	assert.Equal(t, "b3", byCustomer[1].ID)

	none, err := s.BookingsByCustomer(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, none, "customer match is exact, case included")
}
