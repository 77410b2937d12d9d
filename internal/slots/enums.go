package slots

// SlotStatus is the classification of one slot at one venue
type SlotStatus string

const (
	SlotStatusBooked    SlotStatus = "booked"
	SlotStatusSelected  SlotStatus = "selected"
	SlotStatusAvailable SlotStatus = "available"
)

// Selectable reports whether clicking the slot changes the selection
func (s SlotStatus) Selectable() bool {
	return s != SlotStatusBooked
}
