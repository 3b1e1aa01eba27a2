package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/basurapp/pkg/core/points"
	"github.com/jakechorley/basurapp/pkg/core/policy"
	"github.com/jakechorley/basurapp/pkg/db"
)

// StandingsPublisher writes a leaderboard somewhere people can read it
type StandingsPublisher interface {
	PublishStandings(ctx context.Context, title string, standings []points.Standing) error
}

// RequesterPoints totals the points a citizen has earned
func RequesterPoints(ctx context.Context, store db.PickupStore, logger *zap.Logger, formula policy.PointsFormula, requester string) (int, error) {
	pickups, err := store.GetPickups(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch pickups: %w", err)
	}

	total := points.TotalPointsFor(pickups, requester, formula)
	logger.Debug("Requester points", zap.String("requester", requester), zap.Int("points", total))
	return total, nil
}

// CollectorPoints totals the points of the pickups a collector has completed
func CollectorPoints(ctx context.Context, store db.PickupStore, logger *zap.Logger, formula policy.PointsFormula, staffUsername string) (int, error) {
	pickups, err := store.GetPickups(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch pickups: %w", err)
	}

	total := points.CollectorPointsFor(pickups, staffUsername, formula)
	logger.Debug("Collector points", zap.String("collector", staffUsername), zap.Int("points", total))
	return total, nil
}

// Leaderboard ranks every requester by points, highest first
func Leaderboard(ctx context.Context, store db.PickupStore, logger *zap.Logger, formula policy.PointsFormula) ([]points.Standing, error) {
	pickups, err := store.GetPickups(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pickups: %w", err)
	}

	standings := points.Leaderboard(pickups, formula)
	logger.Debug("Built leaderboard", zap.Int("requesters", len(standings)))
	return standings, nil
}

// ReportTitle names the published report after the day it was generated
func ReportTitle(at time.Time) string {
	return "Points " + at.Format("2006-01-02")
}

// PublishPointsReport builds the leaderboard and hands it to publisher under
// today's report title
func PublishPointsReport(
	ctx context.Context,
	store db.PickupStore,
	publisher StandingsPublisher,
	logger *zap.Logger,
	formula policy.PointsFormula,
	loc *time.Location,
) (string, []points.Standing, error) {
	standings, err := Leaderboard(ctx, store, logger, formula)
	if err != nil {
		return "", nil, err
	}

	title := ReportTitle(now().In(loc))
	logger.Info("Publishing points report", zap.String("title", title), zap.Int("rows", len(standings)))

	if err := publisher.PublishStandings(ctx, title, standings); err != nil {
		return "", nil, fmt.Errorf("failed to publish points report: %w", err)
	}

	logger.Info("Points report published", zap.String("title", title))
	return title, standings, nil
}
