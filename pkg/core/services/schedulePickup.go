package services

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/basurapp/pkg/core/eligibility"
	"github.com/jakechorley/basurapp/pkg/core/model"
	"github.com/jakechorley/basurapp/pkg/core/policy"
	"github.com/jakechorley/basurapp/pkg/db"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// PickupRequest describes a pickup a citizen wants booked or moved
type PickupRequest struct {
	Kind     model.Kind     `validate:"required"`
	Locality string         `validate:"required"`
	Address  string         `validate:"required"`
	Date     time.Time      `validate:"required"`
	TimeSlot model.TimeSlot `validate:"required"`
}

func (r PickupRequest) check() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if !r.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidRequest, r.Kind)
	}
	if !model.IsLocality(r.Locality) {
		return fmt.Errorf("%w: unknown locality %q", ErrInvalidRequest, r.Locality)
	}
	return nil
}

// candidate validates the request and resolves it to a concrete time in loc
func (r PickupRequest) candidate(loc *time.Location) (eligibility.Candidate, error) {
	if err := r.check(); err != nil {
		return eligibility.Candidate{}, err
	}
	if err := ensureFutureDate(r.Date, loc); err != nil {
		return eligibility.Candidate{}, err
	}
	scheduledAt, err := ResolveScheduledAt(r.Date, r.TimeSlot, loc)
	if err != nil {
		return eligibility.Candidate{}, err
	}
	return eligibility.Candidate{Kind: r.Kind, Locality: r.Locality, ScheduledAt: scheduledAt}, nil
}

// CheckPickup runs the eligibility rules for a request without booking anything.
// excludePickupID names a pickup being edited, or "" for a new one.
func CheckPickup(
	ctx context.Context,
	store db.PickupStore,
	logger *zap.Logger,
	rules policy.FrequencyRules,
	loc *time.Location,
	requester string,
	req PickupRequest,
	excludePickupID string,
) (eligibility.Result, error) {
	if requester == "" {
		return eligibility.Result{}, fmt.Errorf("%w: requester is required", ErrInvalidRequest)
	}

	candidate, err := req.candidate(loc)
	if err != nil {
		return eligibility.Result{}, err
	}

	logger.Debug("Fetching existing pickups")
	existing, err := store.GetPickups(ctx)
	if err != nil {
		return eligibility.Result{}, fmt.Errorf("failed to fetch pickups: %w", err)
	}

	result := eligibility.Validate(candidate, existing, requester, rules, excludePickupID)
	logger.Debug("Eligibility checked",
		zap.String("requester", requester),
		zap.String("kind", string(candidate.Kind)),
		zap.String("locality", candidate.Locality),
		zap.Time("scheduled_at", candidate.ScheduledAt),
		zap.Bool("valid", result.Valid),
		zap.String("rule", result.Rule))

	return result, nil
}

// SchedulePickup books a new pending pickup for requester once the eligibility
// rules allow it
func SchedulePickup(
	ctx context.Context,
	store db.PickupStore,
	logger *zap.Logger,
	rules policy.FrequencyRules,
	loc *time.Location,
	requester string,
	req PickupRequest,
) (*model.Pickup, error) {
	logger.Info("Scheduling pickup",
		zap.String("requester", requester),
		zap.String("kind", string(req.Kind)),
		zap.String("locality", req.Locality))

	result, err := CheckPickup(ctx, store, logger, rules, loc, requester, req, "")
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		logger.Info("Pickup refused", zap.String("rule", result.Rule), zap.String("reason", result.Reason))
		return nil, &EligibilityError{Result: result}
	}

	scheduledAt, err := ResolveScheduledAt(req.Date, req.TimeSlot, loc)
	if err != nil {
		return nil, err
	}

	pickup := &model.Pickup{
		ID:          uuid.New().String(),
		ScheduledAt: scheduledAt,
		Kind:        req.Kind,
		Locality:    req.Locality,
		Address:     req.Address,
		TimeSlot:    req.TimeSlot,
		RequestedBy: requester,
		Status:      model.StatusPending,
	}

	if err := store.InsertPickup(ctx, pickup); err != nil {
		return nil, fmt.Errorf("failed to insert pickup: %w", err)
	}

	logger.Info("Pickup scheduled",
		zap.String("pickup_id", pickup.ID),
		zap.Time("scheduled_at", pickup.ScheduledAt))

	return pickup, nil
}

// EditPickup moves or changes an existing pickup. The rules are checked again
// with the pickup excluded from its own week, on behalf of its original requester.
func EditPickup(
	ctx context.Context,
	store db.PickupStore,
	logger *zap.Logger,
	rules policy.FrequencyRules,
	loc *time.Location,
	id string,
	req PickupRequest,
) (*model.Pickup, error) {
	logger.Info("Editing pickup", zap.String("pickup_id", id))

	pickup, err := loadPickup(ctx, store, id)
	if err != nil {
		return nil, err
	}
	if pickup.Archived {
		return nil, fmt.Errorf("%w: %s", ErrPickupArchived, id)
	}
	if pickup.Status != model.StatusPending && pickup.Status != model.StatusConfirmed {
		return nil, fmt.Errorf("%w: cannot edit a %s pickup", ErrInvalidTransition, pickup.Status)
	}

	result, err := CheckPickup(ctx, store, logger, rules, loc, pickup.RequestedBy, req, pickup.ID)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		logger.Info("Edit refused", zap.String("rule", result.Rule), zap.String("reason", result.Reason))
		return nil, &EligibilityError{Result: result}
	}

	scheduledAt, err := ResolveScheduledAt(req.Date, req.TimeSlot, loc)
	if err != nil {
		return nil, err
	}

	pickup.ScheduledAt = scheduledAt
	pickup.Kind = req.Kind
	pickup.Locality = req.Locality
	pickup.Address = req.Address
	pickup.TimeSlot = req.TimeSlot
	if pickup.Kind != model.KindInorganic {
		pickup.CollectedWeightKg = nil
	}

	if err := store.UpdatePickup(ctx, pickup); err != nil {
		return nil, fmt.Errorf("failed to update pickup: %w", err)
	}

	logger.Info("Pickup edited", zap.String("pickup_id", pickup.ID), zap.Time("scheduled_at", pickup.ScheduledAt))
	return pickup, nil
}
