package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"roomly/internal/domain"
	"roomly/internal/events"
	"roomly/internal/metrics"
	"roomly/internal/models"
	"roomly/internal/store"
)

// ErrRoomConflict is returned when the requested slot overlaps an existing
// booking for the same room and date.
var ErrRoomConflict = errors.New("room already booked at this time")

// RoomRequest carries the attributes of a room to create.
type RoomRequest struct {
	Name         string
	Seats        int
	Amenities    []string
	PricePerHour float64
}

// Request carries a booking candidate. All fields are opaque strings; the
// service does not interpret dates or times beyond comparison.
type Request struct {
	CustomerName string
	Date         string
	StartTime    string
	EndTime      string
	RoomID       string
}

// Service orchestrates room creation, booking requests and read views on
// top of an entity store.
type Service struct {
	store  domain.Store
	events domain.EventPublisher
	logger *zerolog.Logger

	// mu serializes the read-check-insert sequence of BookRoom so two
	// concurrent requests for the same slot cannot both pass the
	// conflict check.
	mu sync.Mutex
}

func NewService(st domain.Store, bus domain.EventPublisher, logger *zerolog.Logger) *Service {
	return &Service{
		store:  st,
		events: bus,
		logger: logger,
	}
}

// CreateRoom stores a new room. Seats and price are taken as given; there
// are no range checks. The store assigns the id.
func (s *Service) CreateRoom(ctx context.Context, req RoomRequest) (*models.Room, error) {
	room := &models.Room{
		Name:         req.Name,
		Seats:        req.Seats,
		Amenities:    req.Amenities,
		PricePerHour: req.PricePerHour,
	}

	if err := s.store.CreateRoom(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	metrics.IncRoomCreated()
	s.publishRoomCreated(room)
	s.logger.Info().Str("room_id", room.ID).Str("name", room.Name).Msg("room created")

	return room, nil
}

// BookRoom runs the booking request end to end: fetch existing bookings
// for the room, check for an overlap, persist on success. The whole
// sequence holds the service mutex; at most one booking request is in
// flight at a time, so the conflict check and the insert are atomic with
// respect to each other.
func (s *Service) BookRoom(ctx context.Context, req Request) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.store.BookingsByRoom(ctx, req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("load bookings for room: %w", err)
	}

	candidate := &models.Booking{
		CustomerName: req.CustomerName,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		RoomID:       req.RoomID,
	}

	if HasConflict(candidate, existing) {
		metrics.IncBookingConflict()
		s.logger.Info().
			Str("room_id", req.RoomID).
			Str("date", req.Date).
			Str("start", req.StartTime).
			Str("end", req.EndTime).
			Msg("booking rejected, slot taken")
		return nil, ErrRoomConflict
	}

	candidate.ID = uuid.NewString()
	if err := s.store.CreateBooking(ctx, candidate); err != nil {
		return nil, fmt.Errorf("store booking: %w", err)
	}

	metrics.IncBookingCreated()
	s.publishBookingCreated(candidate)
	s.logger.Info().
		Str("booking_id", candidate.ID).
		Str("room_id", candidate.RoomID).
		Str("customer", candidate.CustomerName).
		Msg("booking created")

	return candidate, nil
}

// RoomsWithStatus builds the list-rooms view: every room with a booked
// flag and its booking slots. Any booking counts toward bookedStatus,
// regardless of date.
func (s *Service) RoomsWithStatus(ctx context.Context) ([]*models.RoomStatus, error) {
	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	statuses := make([]*models.RoomStatus, 0, len(rooms))
	for _, room := range rooms {
		bookings, err := s.store.BookingsByRoom(ctx, room.ID)
		if err != nil {
			return nil, fmt.Errorf("bookings for room %s: %w", room.ID, err)
		}

		slots := make([]*models.Slot, 0, len(bookings))
		for _, b := range bookings {
			slots = append(slots, &models.Slot{
				CustomerName: b.CustomerName,
				Date:         b.Date,
				StartTime:    b.StartTime,
				EndTime:      b.EndTime,
			})
		}

		statuses = append(statuses, &models.RoomStatus{
			RoomName:     room.Name,
			BookedStatus: len(bookings) > 0,
			Bookings:     slots,
		})
	}
	return statuses, nil
}

// RoomRefs returns the id/name pair for every room, insertion order.
func (s *Service) RoomRefs(ctx context.Context) ([]*models.RoomRef, error) {
	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	refs := make([]*models.RoomRef, 0, len(rooms))
	for _, room := range rooms {
		refs = append(refs, &models.RoomRef{ID: room.ID, RoomName: room.Name})
	}
	return refs, nil
}

// CustomersWithBookings returns one entry per booking with the room name
// resolved. A dangling room reference yields the "Room not found" name
// instead of an error.
func (s *Service) CustomersWithBookings(ctx context.Context) ([]*models.CustomerBooking, error) {
	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	out := make([]*models.CustomerBooking, 0, len(bookings))
	for _, b := range bookings {
		roomName := models.RoomNotFoundName
		room, err := s.store.GetRoom(ctx, b.RoomID)
		switch {
		case err == nil:
			roomName = room.Name
		case errors.Is(err, store.ErrRoomNotFound):
			// keep the sentinel name
		default:
			return nil, fmt.Errorf("resolve room %s: %w", b.RoomID, err)
		}

		out = append(out, &models.CustomerBooking{
			CustomerName: b.CustomerName,
			RoomName:     roomName,
			Date:         b.Date,
			StartTime:    b.StartTime,
			EndTime:      b.EndTime,
		})
	}
	return out, nil
}

// CustomerBookings returns the bookings made under the exact customer
// name. The endpoint built on top of it is called customer-booking-count,
// but existing consumers expect the records, not a number, so the list
// shape stays.
func (s *Service) CustomerBookings(ctx context.Context, customerName string) ([]*models.Booking, error) {
	bookings, err := s.store.BookingsByCustomer(ctx, customerName)
	if err != nil {
		return nil, fmt.Errorf("bookings for customer: %w", err)
	}
	return bookings, nil
}

// Snapshot returns all rooms and all bookings in insertion order, for
// export consumers.
func (s *Service) Snapshot(ctx context.Context) ([]*models.Room, []*models.Booking, error) {
	rooms, err := s.store.ListRooms(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list rooms: %w", err)
	}
	bookings, err := s.store.ListBookings(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list bookings: %w", err)
	}
	return rooms, bookings, nil
}

func (s *Service) publishRoomCreated(room *models.Room) {
	if s.events == nil {
		return
	}
	err := s.events.PublishJSON(events.EventRoomCreated, events.RoomEventPayload{
		RoomID:       room.ID,
		Name:         room.Name,
		Seats:        room.Seats,
		PricePerHour: room.PricePerHour,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("publish room_created event")
	}
}

func (s *Service) publishBookingCreated(b *models.Booking) {
	if s.events == nil {
		return
	}
	err := s.events.PublishJSON(events.EventBookingCreated, events.BookingEventPayload{
		BookingID:    b.ID,
		CustomerName: b.CustomerName,
		RoomID:       b.RoomID,
		Date:         b.Date,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("publish booking_created event")
	}
}
