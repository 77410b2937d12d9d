package slots

import (
	"padang/internal/remote"
	"padang/internal/session"
	"padang/internal/venues"
)

// Classify assigns every slot of the venue exactly one status. Booked wins
// over selected so a stale selection never shows as holdable.
func Classify(venue venues.Venue, index remote.BookedSlotIndex, selection *session.Reservation) []SlotView {
	out := make([]SlotView, 0, len(venue.Slots))
	for _, slot := range venue.Slots {
		status := SlotStatusAvailable
		switch {
		case index.Contains(venue.Name, slot):
			status = SlotStatusBooked
		case selection != nil && selection.Venue == venue.Name && selection.Slot == slot:
			status = SlotStatusSelected
		}
		out = append(out, SlotView{ID: slot, Status: status, Selectable: status.Selectable()})
	}
	return out
}

func statusOf(views []SlotView, slot string) SlotStatus {
	for _, v := range views {
		if v.ID == slot {
			return v.Status
		}
	}
	return ""
}
