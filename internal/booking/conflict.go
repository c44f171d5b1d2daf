package booking

import "roomly/internal/models"

// Overlaps reports whether two half-open [start, end) ranges intersect.
// Times compare lexicographically, so "09:00" < "10:30" behaves as
// expected for zero-padded HH:MM values. Touching ranges (one ends exactly
// when the other starts) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// HasConflict reports whether the candidate collides with any existing
// booking: same room, same date (exact equality), overlapping times.
// Bookings on other dates or rooms never conflict. Time bounds are taken
// as-is; an inverted range can never overlap anything.
func HasConflict(candidate *models.Booking, existing []*models.Booking) bool {
	for _, b := range existing {
		if b.RoomID != candidate.RoomID || b.Date != candidate.Date {
			continue
		}
		if Overlaps(candidate.StartTime, candidate.EndTime, b.StartTime, b.EndTime) {
			return true
		}
	}
	return false
}
