package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/basurapp/pkg/core/model"
	"github.com/jakechorley/basurapp/pkg/core/policy"
	"github.com/jakechorley/basurapp/pkg/db"
)

// LoadPolicy seeds a holder from the latest stored snapshot, or from fallback when
// nothing has been stored yet
func LoadPolicy(ctx context.Context, store db.PolicyStore, logger *zap.Logger, fallback policy.Snapshot) (*policy.Holder, error) {
	stored, err := store.GetPolicy(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch policy: %w", err)
	}

	if stored == nil {
		if err := policy.Validate(fallback); err != nil {
			return nil, err
		}
		logger.Debug("No stored policy, using configured defaults")
		return policy.NewHolder(fallback), nil
	}

	if err := policy.Validate(*stored); err != nil {
		return nil, fmt.Errorf("stored policy is invalid: %w", err)
	}
	logger.Debug("Loaded stored policy")
	return policy.NewHolder(*stored), nil
}

// UpdatePolicy applies change to a copy of the current policy, validates and
// persists it, and only then installs it. On any failure the current policy is
// left untouched.
func UpdatePolicy(
	ctx context.Context,
	holder *policy.Holder,
	store db.PolicyStore,
	logger *zap.Logger,
	change func(*policy.Snapshot),
) (policy.Snapshot, error) {
	return holder.Update(func(next policy.Snapshot) (policy.Snapshot, error) {
		change(&next)

		if err := policy.Validate(next); err != nil {
			return next, err
		}
		if err := store.SavePolicy(ctx, next); err != nil {
			return next, fmt.Errorf("failed to save policy: %w", err)
		}

		logger.Info("Policy updated")
		return next, nil
	})
}

// SetBasePoints changes the base points awarded for a kind
func SetBasePoints(ctx context.Context, holder *policy.Holder, store db.PolicyStore, logger *zap.Logger, kind model.Kind, base int) (policy.Snapshot, error) {
	logger.Info("Setting base points", zap.String("kind", string(kind)), zap.Int("points", base))
	return UpdatePolicy(ctx, holder, store, logger, func(s *policy.Snapshot) {
		if s.PointsFormula.BasePoints == nil {
			s.PointsFormula.BasePoints = make(map[model.Kind]int)
		}
		s.PointsFormula.BasePoints[kind] = base
	})
}

// SetWeightMultiplier changes the points awarded per collected inorganic kilogram
func SetWeightMultiplier(ctx context.Context, holder *policy.Holder, store db.PolicyStore, logger *zap.Logger, multiplier float64) (policy.Snapshot, error) {
	logger.Info("Setting weight multiplier", zap.Float64("multiplier", multiplier))
	return UpdatePolicy(ctx, holder, store, logger, func(s *policy.Snapshot) {
		s.PointsFormula.InorganicWeightMultiplier = multiplier
	})
}

// SetOrganicDay assigns the organic collection weekday (Sunday = 0) for a locality
// or the "default" key. A nil weekday removes the assignment.
func SetOrganicDay(ctx context.Context, holder *policy.Holder, store db.PolicyStore, logger *zap.Logger, locality string, weekday *int) (policy.Snapshot, error) {
	logger.Info("Setting organic weekday", zap.String("locality", locality), zap.Intp("weekday", weekday))
	return UpdatePolicy(ctx, holder, store, logger, func(s *policy.Snapshot) {
		days := s.FrequencyRules.Organic.WeekdayByLocality
		if weekday == nil {
			delete(days, locality)
			return
		}
		if days == nil {
			days = make(map[string]int)
			s.FrequencyRules.Organic.WeekdayByLocality = days
		}
		days[locality] = *weekday
	})
}

// SetInorganicLimits changes the weekly cap and minimum spacing for inorganic pickups
func SetInorganicLimits(ctx context.Context, holder *policy.Holder, store db.PolicyStore, logger *zap.Logger, maxPerWeek int, minHoursBetween float64) (policy.Snapshot, error) {
	logger.Info("Setting inorganic limits", zap.Int("max_per_week", maxPerWeek), zap.Float64("min_hours_between", minHoursBetween))
	return UpdatePolicy(ctx, holder, store, logger, func(s *policy.Snapshot) {
		s.FrequencyRules.Inorganic.MaxPerWeek = maxPerWeek
		s.FrequencyRules.Inorganic.MinHoursBetween = minHoursBetween
	})
}

// SetHazardousLimits changes how many hazardous pickups one requester may book per week
func SetHazardousLimits(ctx context.Context, holder *policy.Holder, store db.PolicyStore, logger *zap.Logger, maxPerWeekPerUser int) (policy.Snapshot, error) {
	logger.Info("Setting hazardous limits", zap.Int("max_per_week_per_user", maxPerWeekPerUser))
	return UpdatePolicy(ctx, holder, store, logger, func(s *policy.Snapshot) {
		s.FrequencyRules.Hazardous.MaxPerWeekPerUser = maxPerWeekPerUser
	})
}

// SetHazardousCapacity changes the weekly hazardous capacity of a locality or the
// "default" key. A nil capacity removes the entry.
func SetHazardousCapacity(ctx context.Context, holder *policy.Holder, store db.PolicyStore, logger *zap.Logger, locality string, capacity *int) (policy.Snapshot, error) {
	logger.Info("Setting hazardous capacity", zap.String("locality", locality), zap.Intp("capacity", capacity))
	return UpdatePolicy(ctx, holder, store, logger, func(s *policy.Snapshot) {
		capacities := s.FrequencyRules.Hazardous.CapacityByLocality
		if capacity == nil {
			delete(capacities, locality)
			return
		}
		if capacities == nil {
			capacities = make(map[string]int)
			s.FrequencyRules.Hazardous.CapacityByLocality = capacities
		}
		capacities[locality] = *capacity
	})
}
