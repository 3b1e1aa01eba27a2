package db

import (
	"context"

	"github.com/jakechorley/basurapp/pkg/core/model"
	"github.com/jakechorley/basurapp/pkg/core/policy"
)

// PickupStore defines the interface for pickup database operations
type PickupStore interface {
	GetPickups(ctx context.Context) ([]model.Pickup, error)
	// GetPickup returns nil and no error when the pickup does not exist
	GetPickup(ctx context.Context, id string) (*model.Pickup, error)
	InsertPickup(ctx context.Context, pickup *model.Pickup) error
	UpdatePickup(ctx context.Context, pickup *model.Pickup) error
}

// PolicyStore defines the interface for policy snapshot operations
type PolicyStore interface {
	// GetPolicy returns the most recently saved snapshot, or nil when none has been saved
	GetPolicy(ctx context.Context) (*policy.Snapshot, error)
	SavePolicy(ctx context.Context, snapshot policy.Snapshot) error
}

// Database defines the interface for all database operations.
// Both the SQLite-backed db.DB and postgres.DB implement this interface.
type Database interface {
	PickupStore
	PolicyStore
}
