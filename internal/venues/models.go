package venues

import "errors"

// Venue is a bookable physical location
type Venue struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Page  string   `json:"page"`
	Slots []string `json:"slots"`
}

// HasSlot reports whether slotID belongs to the venue
func (v Venue) HasSlot(slotID string) bool {
	for _, s := range v.Slots {
		if s == slotID {
			return true
		}
	}
	return false
}

// VenueResponse is the list entry served to clients
type VenueResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Page      string `json:"page"`
	SlotCount int    `json:"slot_count"`
}

func (v Venue) ToResponse() VenueResponse {
	return VenueResponse{
		ID:        v.ID,
		Name:      v.Name,
		Page:      v.Page,
		SlotCount: len(v.Slots),
	}
}

var (
	ErrVenueNotFound = errors.New("venue not found")
	ErrSlotNotFound  = errors.New("slot not found")
)
