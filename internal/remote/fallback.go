package remote

import (
	"context"

	"padang/internal/notifications"
)

const (
	TeamsUnavailableMessage       = "Failed to load teams. Please try again later."
	BookedSlotsUnavailableMessage = "Failed to load booked slots. Please try again later."
)

// TeamsOrEmpty fetches the teams, substituting an empty list and raising a
// warning when the remote store cannot be read. ok is false in that case.
func TeamsOrEmpty(ctx context.Context, c Client) (teams []TeamRegistration, ok bool) {
	teams, err := c.ListTeams(ctx)
	if err != nil {
		notifications.Warn(ctx, TeamsUnavailableMessage)
		return []TeamRegistration{}, false
	}
	return teams, true
}

// BookedSlotsOrEmpty fetches the booked-slot index with the same degraded behaviour
func BookedSlotsOrEmpty(ctx context.Context, c Client) (index BookedSlotIndex, ok bool) {
	index, err := c.BookedSlots(ctx)
	if err != nil {
		notifications.Warn(ctx, BookedSlotsUnavailableMessage)
		return BookedSlotIndex{}, false
	}
	if index == nil {
		index = BookedSlotIndex{}
	}
	return index, true
}
