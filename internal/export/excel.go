package export

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"roomly/internal/models"
)

const (
	roomsSheet    = "Rooms"
	bookingsSheet = "Bookings"
)

// Workbook renders rooms and bookings into an xlsx file with one sheet per
// entity. Booking rows resolve the room name through the supplied rooms;
// dangling references show the usual "Room not found" name.
func Workbook(rooms []*models.Room, bookings []*models.Booking) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeRoomsSheet(f, rooms); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeBookingsSheet(f, rooms, bookings); err != nil {
		f.Close()
		return nil, err
	}

	// The default sheet is replaced by the two entity sheets.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		f.Close()
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	return f, nil
}

func writeRoomsSheet(f *excelize.File, rooms []*models.Room) error {
	index, err := f.NewSheet(roomsSheet)
	if err != nil {
		return fmt.Errorf("create rooms sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"ID", "Name", "Seats", "Amenities", "Price per hour"}
	if err := writeRow(f, roomsSheet, 1, headers); err != nil {
		return err
	}

	for i, room := range rooms {
		row := []any{room.ID, room.Name, room.Seats, joinAmenities(room.Amenities), room.PricePerHour}
		if err := writeRowAny(f, roomsSheet, i+2, row); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(roomsSheet, "A", "A", 38)
	_ = f.SetColWidth(roomsSheet, "B", "E", 20)
	return styleHeader(f, roomsSheet, len(headers))
}

func writeBookingsSheet(f *excelize.File, rooms []*models.Room, bookings []*models.Booking) error {
	if _, err := f.NewSheet(bookingsSheet); err != nil {
		return fmt.Errorf("create bookings sheet: %w", err)
	}

	roomNames := make(map[string]string, len(rooms))
	for _, room := range rooms {
		roomNames[room.ID] = room.Name
	}

	headers := []string{"ID", "Customer", "Room", "Date", "Start", "End"}
	if err := writeRow(f, bookingsSheet, 1, headers); err != nil {
		return err
	}

	for i, b := range bookings {
		roomName, ok := roomNames[b.RoomID]
		if !ok {
			roomName = models.RoomNotFoundName
		}
		row := []any{b.ID, b.CustomerName, roomName, b.Date, b.StartTime, b.EndTime}
		if err := writeRowAny(f, bookingsSheet, i+2, row); err != nil {
			return err
		}
	}

	_ = f.SetColWidth(bookingsSheet, "A", "A", 38)
	_ = f.SetColWidth(bookingsSheet, "B", "F", 18)
	return styleHeader(f, bookingsSheet, len(headers))
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return writeRowAny(f, sheet, row, cells)
}

func writeRowAny(f *excelize.File, sheet string, row int, values []any) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, columns int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	last, err := excelize.CoordinatesToCellName(columns, 1)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func joinAmenities(amenities []string) string {
	return strings.Join(amenities, ", ")
}
