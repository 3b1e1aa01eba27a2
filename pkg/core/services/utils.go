package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jakechorley/basurapp/pkg/core/model"
	"github.com/jakechorley/basurapp/pkg/db"
)

// now is swapped out in tests
var now = time.Now

// startOfDay returns 00:00 of t's calendar day in loc
func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// ResolveScheduledAt combines a calendar date and a time slot into the slot's start
// time on that date in loc
func ResolveScheduledAt(date time.Time, slot model.TimeSlot, loc *time.Location) (time.Time, error) {
	hour, ok := slot.StartHour()
	if !ok {
		return time.Time{}, fmt.Errorf("%w: unknown time slot %q", ErrInvalidRequest, slot)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, loc), nil
}

// ensureFutureDate rejects dates on or before today in loc
func ensureFutureDate(date time.Time, loc *time.Location) error {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	if !day.After(startOfDay(now(), loc)) {
		return fmt.Errorf("%w: %s", ErrDateNotInFuture, day.Format("2006-01-02"))
	}
	return nil
}

// loadPickup fetches a pickup, mapping a missing record to ErrPickupNotFound
func loadPickup(ctx context.Context, store db.PickupStore, id string) (*model.Pickup, error) {
	pickup, err := store.GetPickup(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pickup: %w", err)
	}
	if pickup == nil {
		return nil, fmt.Errorf("%w: %s", ErrPickupNotFound, id)
	}
	return pickup, nil
}

// sortByScheduledAt orders pickups chronologically, ties broken by id
func sortByScheduledAt(pickups []model.Pickup) {
	sort.SliceStable(pickups, func(i, j int) bool {
		if !pickups[i].ScheduledAt.Equal(pickups[j].ScheduledAt) {
			return pickups[i].ScheduledAt.Before(pickups[j].ScheduledAt)
		}
		return pickups[i].ID < pickups[j].ID
	})
}
