package booking

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/internal/events"
	"roomly/internal/models"
	"roomly/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	logger := zerolog.New(io.Discard)
	return NewService(store.NewMemoryStore(), events.NewEventBus(), &logger)
}

func createTestRoom(t *testing.T, svc *Service, name string) *models.Room {
	t.Helper()
	room, err := svc.CreateRoom(context.Background(), RoomRequest{
		Name:         name,
		Seats:        4,
		Amenities:    []string{"whiteboard"},
		PricePerHour: 25,
	})
	require.NoError(t, err)
	require.NotEmpty(t, room.ID)
	return room
}

func TestBookRoomScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	room := createTestRoom(t, svc, "Room A")

	// Alice books 09:00-10:00.
	first, err := svc.BookRoom(ctx, Request{
		CustomerName: "Alice", Date: "2024-01-01",
		StartTime: "09:00", EndTime: "10:00", RoomID: room.ID,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	// Bob overlaps 09:30-10:30 and is rejected.
	_, err = svc.BookRoom(ctx, Request{
		CustomerName: "Bob", Date: "2024-01-01",
		StartTime: "09:30", EndTime: "10:30", RoomID: room.ID,
	})
	assert.ErrorIs(t, err, ErrRoomConflict)

	// Bob takes the back-to-back slot 10:00-11:00.
	second, err := svc.BookRoom(ctx, Request{
		CustomerName: "Bob", Date: "2024-01-01",
		StartTime: "10:00", EndTime: "11:00", RoomID: room.ID,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestBookRoomDifferentDateAndRoom(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	roomA := createTestRoom(t, svc, "Room A")
	roomB := createTestRoom(t, svc, "Room B")

	_, err := svc.BookRoom(ctx, Request{
		CustomerName: "Alice", Date: "2024-01-01",
		StartTime: "09:00", EndTime: "10:00", RoomID: roomA.ID,
	})
	require.NoError(t, err)

	// Same times, next day.
	_, err = svc.BookRoom(ctx, Request{
		CustomerName: "Bob", Date: "2024-01-02",
		StartTime: "09:00", EndTime: "10:00", RoomID: roomA.ID,
	})
	assert.NoError(t, err)

	// Same times, other room.
	_, err = svc.BookRoom(ctx, Request{
		CustomerName: "Bob", Date: "2024-01-01",
		StartTime: "09:00", EndTime: "10:00", RoomID: roomB.ID,
	})
	assert.NoError(t, err)
}

func TestBookRoomConcurrentSameSlot(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	room := createTestRoom(t, svc, "Contended")

	const attempts = 32
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.BookRoom(ctx, Request{
				CustomerName: "Racer", Date: "2024-01-01",
				StartTime: "09:00", EndTime: "10:00", RoomID: room.ID,
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrRoomConflict)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one concurrent request may win the slot")
}

func TestRoomsWithStatus(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	booked := createTestRoom(t, svc, "Booked")
	createTestRoom(t, svc, "Empty")

	_, err := svc.BookRoom(ctx, Request{
		CustomerName: "Alice", Date: "2024-01-01",
		StartTime: "09:00", EndTime: "10:00", RoomID: booked.ID,
	})
	require.NoError(t, err)

	statuses, err := svc.RoomsWithStatus(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.Equal(t, "Booked", statuses[0].RoomName)
	assert.True(t, statuses[0].BookedStatus)
	require.Len(t, statuses[0].Bookings, 1)
	assert.Equal(t, "Alice", statuses[0].Bookings[0].CustomerName)
	assert.Equal(t, "09:00", statuses[0].Bookings[0].StartTime)

	assert.Equal(t, "Empty", statuses[1].RoomName)
	assert.False(t, statuses[1].BookedStatus)
	assert.Empty(t, statuses[1].Bookings)
}

func TestRoomRefs(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	roomA := createTestRoom(t, svc, "Room A")
	roomB := createTestRoom(t, svc, "Room B")

	refs, err := svc.RoomRefs(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, roomA.ID, refs[0].ID)
	assert.Equal(t, "Room A", refs[0].RoomName)
	assert.Equal(t, roomB.ID, refs[1].ID)
}

func TestCustomersWithBookingsDanglingRoom(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	room := createTestRoom(t, svc, "Room A")

	_, err := svc.BookRoom(ctx, Request{
		CustomerName: "Alice", Date: "2024-01-01",
		StartTime: "09:00", EndTime: "10:00", RoomID: room.ID,
	})
	require.NoError(t, err)

	// Booking against a room id that was never created.
	_, err = svc.BookRoom(ctx, Request{
		CustomerName: "Ghost", Date: "2024-01-01",
		StartTime: "09:00", EndTime: "10:00", RoomID: "no-such-room",
	})
	require.NoError(t, err)

	customers, err := svc.CustomersWithBookings(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 2)

	assert.Equal(t, "Alice", customers[0].CustomerName)
	assert.Equal(t, "Room A", customers[0].RoomName)

	assert.Equal(t, "Ghost", customers[1].CustomerName)
	assert.Equal(t, models.RoomNotFoundName, customers[1].RoomName)
}

func TestCustomerBookings(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	room := createTestRoom(t, svc, "Room A")

	for _, slot := range []struct{ date, start, end, customer string }{
		{"2024-01-01", "09:00", "10:00", "Alice"},
		{"2024-01-02", "09:00", "10:00", "Alice"},
		{"2024-01-03", "09:00", "10:00", "Bob"},
	} {
		_, err := svc.BookRoom(ctx, Request{
			CustomerName: slot.customer, Date: slot.date,
			StartTime: slot.start, EndTime: slot.end, RoomID: room.ID,
		})
		require.NoError(t, err)
	}

	alice, err := svc.CustomerBookings(ctx, "Alice")
	require.NoError(t, err)
	require.Len(t, alice, 2)
	for _, b := range alice {
		assert.Equal(t, "Alice", b.CustomerName)
	}

	missing, err := svc.CustomerBookings(ctx, "Nobody")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestReadsAreIdempotent(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	room := createTestRoom(t, svc, "Room A")
	_, err := svc.BookRoom(ctx, Request{
		CustomerName: "Alice", Date: "2024-01-01",
		StartTime: "09:00", EndTime: "10:00", RoomID: room.ID,
	})
	require.NoError(t, err)

	first, err := svc.RoomsWithStatus(ctx)
	require.NoError(t, err)
	second, err := svc.RoomsWithStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	customersFirst, err := svc.CustomersWithBookings(ctx)
	require.NoError(t, err)
	customersSecond, err := svc.CustomersWithBookings(ctx)
	require.NoError(t, err)
	assert.Equal(t, customersFirst, customersSecond)
}

func TestConflictLeavesNoState(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	room := createTestRoom(t, svc, "Room A")
	_, err := svc.BookRoom(ctx, Request{
		CustomerName: "Alice", Date: "2024-01-01",
		StartTime: "09:00", EndTime: "10:00", RoomID: room.ID,
	})
	require.NoError(t, err)

	_, err = svc.BookRoom(ctx, Request{
		CustomerName: "Bob", Date: "2024-01-01",
		StartTime: "09:00", EndTime: "10:00", RoomID: room.ID,
	})
	require.ErrorIs(t, err, ErrRoomConflict)

	rooms, bookings, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, rooms, 1)
	assert.Len(t, bookings, 1, "rejected booking must not be stored")
	assert.Equal(t, "Alice", bookings[0].CustomerName)
}
