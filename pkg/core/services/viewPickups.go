package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/basurapp/pkg/core/model"
	"github.com/jakechorley/basurapp/pkg/core/points"
	"github.com/jakechorley/basurapp/pkg/db"
)

// PickupFilter narrows a pickup listing. Zero fields match everything.
type PickupFilter struct {
	Requester       string
	Kind            model.Kind
	Locality        string
	Status          model.Status
	From            time.Time // inclusive
	To              time.Time // exclusive
	IncludeArchived bool
}

func (f PickupFilter) matches(p model.Pickup) bool {
	if p.Archived && !f.IncludeArchived {
		return false
	}
	if f.Requester != "" && p.RequestedBy != f.Requester {
		return false
	}
	if f.Kind != "" && p.Kind != f.Kind {
		return false
	}
	if f.Locality != "" && p.Locality != f.Locality {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if !f.From.IsZero() && p.ScheduledAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !p.ScheduledAt.Before(f.To) {
		return false
	}
	return true
}

// ListPickups returns the pickups matching filter in chronological order
func ListPickups(ctx context.Context, store db.PickupStore, logger *zap.Logger, filter PickupFilter) ([]model.Pickup, error) {
	logger.Debug("Fetching pickups")
	all, err := store.GetPickups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pickups: %w", err)
	}

	matched := make([]model.Pickup, 0)
	for _, p := range all {
		if filter.matches(p) {
			matched = append(matched, p)
		}
	}
	sortByScheduledAt(matched)

	logger.Debug("Filtered pickups", zap.Int("total", len(all)), zap.Int("matched", len(matched)))
	return matched, nil
}

// ListCollectorPickups returns the active pickups assigned to a collector.
// Pending pickups are left out since they have not been assigned yet.
func ListCollectorPickups(ctx context.Context, store db.PickupStore, logger *zap.Logger, staffUsername string) ([]model.Pickup, error) {
	target := points.NormalizeUsername(staffUsername)
	if target == "" {
		return nil, fmt.Errorf("%w: collector username is required", ErrInvalidRequest)
	}

	all, err := store.GetPickups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pickups: %w", err)
	}

	assigned := make([]model.Pickup, 0)
	for _, p := range all {
		if p.Archived || p.Status == model.StatusPending {
			continue
		}
		if points.NormalizeUsername(p.StaffUsername) != target {
			continue
		}
		assigned = append(assigned, p)
	}
	sortByScheduledAt(assigned)

	logger.Debug("Collector pickups", zap.String("collector", target), zap.Int("count", len(assigned)))
	return assigned, nil
}
