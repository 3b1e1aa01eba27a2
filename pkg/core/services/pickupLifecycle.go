package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/basurapp/pkg/core/model"
	"github.com/jakechorley/basurapp/pkg/db"
)

// Collector identifies the staff member handling a pickup
type Collector struct {
	Name     string
	Username string
}

// AssignPickup confirms a pending or confirmed pickup and assigns it to a collector
func AssignPickup(ctx context.Context, store db.PickupStore, logger *zap.Logger, id string, collector Collector) (*model.Pickup, error) {
	username := strings.TrimSpace(collector.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: collector username is required", ErrInvalidRequest)
	}

	logger.Info("Assigning pickup", zap.String("pickup_id", id), zap.String("collector", username))

	pickup, err := loadActivePickup(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if pickup.Status != model.StatusPending && pickup.Status != model.StatusConfirmed {
		return nil, fmt.Errorf("%w: cannot assign a %s pickup", ErrInvalidTransition, pickup.Status)
	}

	name := strings.TrimSpace(collector.Name)
	if name == "" {
		name = username
	}

	pickup.Status = model.StatusConfirmed
	pickup.Staff = name
	pickup.StaffUsername = username

	if err := store.UpdatePickup(ctx, pickup); err != nil {
		return nil, fmt.Errorf("failed to update pickup: %w", err)
	}

	logger.Info("Pickup assigned", zap.String("pickup_id", id), zap.String("staff", pickup.Staff))
	return pickup, nil
}

// RejectPickup marks a pending or confirmed pickup as rejected
func RejectPickup(ctx context.Context, store db.PickupStore, logger *zap.Logger, id string) (*model.Pickup, error) {
	logger.Info("Rejecting pickup", zap.String("pickup_id", id))

	pickup, err := loadActivePickup(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if pickup.Status != model.StatusPending && pickup.Status != model.StatusConfirmed {
		return nil, fmt.Errorf("%w: cannot reject a %s pickup", ErrInvalidTransition, pickup.Status)
	}

	pickup.Status = model.StatusRejected
	if err := store.UpdatePickup(ctx, pickup); err != nil {
		return nil, fmt.Errorf("failed to update pickup: %w", err)
	}

	logger.Info("Pickup rejected", zap.String("pickup_id", id))
	return pickup, nil
}

// Completion is what a collector records when a pickup is done
type Completion struct {
	CompletedAt time.Time
	WeightKg    *float64
}

// CompletePickup records a confirmed pickup as collected.
//
// The completion time may not lie in the future and replaces the scheduled time.
// Inorganic pickups need a weight above zero; weights given for other kinds are
// dropped.
func CompletePickup(ctx context.Context, store db.PickupStore, logger *zap.Logger, id string, completion Completion) (*model.Pickup, error) {
	logger.Info("Completing pickup", zap.String("pickup_id", id))

	if completion.CompletedAt.IsZero() {
		return nil, fmt.Errorf("%w: completion time is required", ErrInvalidRequest)
	}
	if completion.CompletedAt.After(now()) {
		return nil, ErrCompletionInFuture
	}

	pickup, err := loadActivePickup(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if pickup.Status != model.StatusConfirmed && pickup.Status != model.StatusCompleted {
		return nil, fmt.Errorf("%w: cannot complete a %s pickup", ErrInvalidTransition, pickup.Status)
	}

	var weight *float64
	if pickup.Kind == model.KindInorganic {
		if completion.WeightKg == nil {
			return nil, ErrInvalidWeight
		}
		w := *completion.WeightKg
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return nil, ErrInvalidWeight
		}
		weight = &w
	}

	pickup.Status = model.StatusCompleted
	pickup.ScheduledAt = completion.CompletedAt
	pickup.CollectedWeightKg = weight

	if err := store.UpdatePickup(ctx, pickup); err != nil {
		return nil, fmt.Errorf("failed to update pickup: %w", err)
	}

	fields := []zap.Field{zap.String("pickup_id", id), zap.Time("completed_at", pickup.ScheduledAt)}
	if weight != nil {
		fields = append(fields, zap.Float64("weight_kg", *weight))
	}
	logger.Info("Pickup completed", fields...)

	return pickup, nil
}

// ArchivePickup hides a pickup from every listing, limit and points total.
// The record itself is kept.
func ArchivePickup(ctx context.Context, store db.PickupStore, logger *zap.Logger, id string) (*model.Pickup, error) {
	logger.Info("Archiving pickup", zap.String("pickup_id", id))

	pickup, err := loadActivePickup(ctx, store, id)
	if err != nil {
		return nil, err
	}

	pickup.Archived = true
	if err := store.UpdatePickup(ctx, pickup); err != nil {
		return nil, fmt.Errorf("failed to update pickup: %w", err)
	}

	logger.Info("Pickup archived", zap.String("pickup_id", id))
	return pickup, nil
}

func loadActivePickup(ctx context.Context, store db.PickupStore, id string) (*model.Pickup, error) {
	pickup, err := loadPickup(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if pickup.Archived {
		return nil, fmt.Errorf("%w: %s", ErrPickupArchived, id)
	}
	return pickup, nil
}
