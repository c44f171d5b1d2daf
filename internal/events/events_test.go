package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishJSONNotifiesSubscribers(t *testing.T) {
	bus := NewEventBus()

	var received []*Event
	bus.Subscribe(EventBookingCreated, func(e *Event) error {
		received = append(received, e)
		return nil
	})

	payload := BookingEventPayload{
		BookingID:    "b1",
		CustomerName: "Alice",
		RoomID:       "r1",
		Date:         "2024-01-01",
		StartTime:    "09:00",
		EndTime:      "10:00",
	}
	require.NoError(t, bus.PublishJSON(EventBookingCreated, payload))

	require.Len(t, received, 1)
	assert.Equal(t, EventBookingCreated, received[0].Type)
	assert.False(t, received[0].CreatedAt.IsZero())

	var got BookingEventPayload
	require.NoError(t, json.Unmarshal(received[0].Payload, &got))
	assert.Equal(t, payload, got)
}

func TestPublishOnlyMatchingType(t *testing.T) {
	bus := NewEventBus()

	roomEvents := 0
	bookingEvents := 0
	bus.Subscribe(EventRoomCreated, func(e *Event) error {
		roomEvents++
		return nil
	})
	bus.Subscribe(EventBookingCreated, func(e *Event) error {
		bookingEvents++
		return nil
	})

	require.NoError(t, bus.PublishJSON(EventRoomCreated, RoomEventPayload{RoomID: "r1", Name: "A"}))

	assert.Equal(t, 1, roomEvents)
	assert.Equal(t, 0, bookingEvents)
}

func TestPublishJSONOnNilBus(t *testing.T) {
	var bus *EventBus
	assert.NoError(t, bus.PublishJSON(EventRoomCreated, RoomEventPayload{}))
}

func TestMultipleSubscribers(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	handler := func(e *Event) error {
		calls++
		return nil
	}
	bus.Subscribe(EventBookingCreated, handler)
	bus.Subscribe(EventBookingCreated, handler)

	require.NoError(t, bus.PublishJSON(EventBookingCreated, BookingEventPayload{BookingID: "b1"}))
	assert.Equal(t, 2, calls)
}
