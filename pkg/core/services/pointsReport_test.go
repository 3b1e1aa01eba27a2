package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/basurapp/pkg/core/model"
	"github.com/jakechorley/basurapp/pkg/core/points"
	"github.com/jakechorley/basurapp/pkg/core/policy"
)

type mockPublisher struct {
	title     string
	standings []points.Standing
	err       error
}

func (m *mockPublisher) PublishStandings(ctx context.Context, title string, standings []points.Standing) error {
	if m.err != nil {
		return m.err
	}
	m.title = title
	m.standings = standings
	return nil
}

func pointsStore() *mockStore {
	return &mockStore{
		pickups: []model.Pickup{
			{ID: "1", Kind: model.KindInorganic, RequestedBy: "ana", Status: model.StatusCompleted, StaffUsername: "carlos", CollectedWeightKg: weightKg(10)},
			{ID: "2", Kind: model.KindOrganic, RequestedBy: "ana", Status: model.StatusRejected},
			{ID: "3", Kind: model.KindOrganic, RequestedBy: "luis", Status: model.StatusPending},
			{ID: "4", Kind: model.KindHazardous, RequestedBy: "luis", Status: model.StatusCompleted, StaffUsername: "Carlos", Archived: true},
		},
	}
}

func TestRequesterPoints(t *testing.T) {
	store := pointsStore()
	formula := policy.DefaultPointsFormula()

	total, err := RequesterPoints(context.Background(), store, zap.NewNop(), formula, "ana")
	require.NoError(t, err)
	assert.Equal(t, 100, total)

	total, err = RequesterPoints(context.Background(), store, zap.NewNop(), formula, "luis")
	require.NoError(t, err)
	assert.Equal(t, 50, total)
}

func TestCollectorPoints(t *testing.T) {
	total, err := CollectorPoints(context.Background(), pointsStore(), zap.NewNop(), policy.DefaultPointsFormula(), "CARLOS")
	require.NoError(t, err)
	assert.Equal(t, 100, total)
}

func TestLeaderboard_StoreError(t *testing.T) {
	_, err := Leaderboard(context.Background(), &mockStore{getErr: errors.New("boom")}, zap.NewNop(), policy.DefaultPointsFormula())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch pickups")
}

func TestPublishPointsReport(t *testing.T) {
	loc := bogota(t)
	// Still the 18th in Bogotá although already the 19th in UTC
	freezeNow(t, time.Date(2026, time.October, 19, 3, 0, 0, 0, time.UTC))

	publisher := &mockPublisher{}
	title, standings, err := PublishPointsReport(context.Background(), pointsStore(), publisher, zap.NewNop(), policy.DefaultPointsFormula(), loc)
	require.NoError(t, err)

	assert.Equal(t, "Points 2026-10-18", title)
	assert.Equal(t, title, publisher.title)
	assert.Equal(t, []points.Standing{
		{Requester: "ana", Points: 100, Pickups: 1},
		{Requester: "luis", Points: 50, Pickups: 1},
	}, standings)
	assert.Equal(t, standings, publisher.standings)
}

func TestPublishPointsReport_PublisherError(t *testing.T) {
	loc := bogota(t)
	publisher := &mockPublisher{err: errors.New("quota exceeded")}

	_, _, err := PublishPointsReport(context.Background(), pointsStore(), publisher, zap.NewNop(), policy.DefaultPointsFormula(), loc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish points report")
}
