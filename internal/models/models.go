package models

// Room is a bookable meeting room. Rooms are created once and never
// updated or deleted.
type Room struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Seats        int      `json:"seats"`
	Amenities    []string `json:"amenities"`
	PricePerHour float64  `json:"pricePerHour"`
}

// Booking reserves a room for a time slot on a single day. Date and the
// time bounds are opaque strings: dates compare by equality only, times by
// lexicographic order ("09:00" < "10:30"). RoomID is a weak reference; a
// booking may point at a room that was never created.
type Booking struct {
	ID           string `json:"id"`
	CustomerName string `json:"customerName"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	RoomID       string `json:"roomId"`
}

// Slot is the booking projection embedded in room listings.
type Slot struct {
	CustomerName string `json:"customerName"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}

// RoomStatus is one row of the list-rooms view. BookedStatus is true when
// at least one booking references the room, past or future.
type RoomStatus struct {
	RoomName     string  `json:"roomName"`
	BookedStatus bool    `json:"bookedStatus"`
	Bookings     []*Slot `json:"bookings"`
}

// RoomRef is the compact id/name pair returned by list-rooms-with-id.
type RoomRef struct {
	ID       string `json:"id"`
	RoomName string `json:"roomName"`
}

// CustomerBooking is one row of the list-customers view, one entry per
// booking. RoomName carries the RoomNotFoundName sentinel when the booking
// references a room that does not exist.
type CustomerBooking struct {
	CustomerName string `json:"customerName"`
	RoomName     string `json:"roomName"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}

// RoomNotFoundName is the literal room name reported for dangling room
// references. Existing consumers match on this exact string.
const RoomNotFoundName = "Room not found"
