package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jakechorley/basurapp/pkg/core/model"
	"github.com/jakechorley/basurapp/pkg/core/policy"
)

// mockStore implements a test double for db.Database
type mockStore struct {
	pickups   []model.Pickup
	policies  []policy.Snapshot
	inserted  []*model.Pickup
	updated   []*model.Pickup
	getErr    error
	insertErr error
	updateErr error
	saveErr   error
}

func (m *mockStore) GetPickups(ctx context.Context) ([]model.Pickup, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	out := make([]model.Pickup, len(m.pickups))
	copy(out, m.pickups)
	return out, nil
}

func (m *mockStore) GetPickup(ctx context.Context, id string) (*model.Pickup, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, p := range m.pickups {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, nil
}

func (m *mockStore) InsertPickup(ctx context.Context, pickup *model.Pickup) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, pickup)
	m.pickups = append(m.pickups, *pickup)
	return nil
}

func (m *mockStore) UpdatePickup(ctx context.Context, pickup *model.Pickup) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i := range m.pickups {
		if m.pickups[i].ID == pickup.ID {
			m.pickups[i] = *pickup
			m.updated = append(m.updated, pickup)
			return nil
		}
	}
	return errors.New("no such pickup")
}

func (m *mockStore) GetPolicy(ctx context.Context) (*policy.Snapshot, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if len(m.policies) == 0 {
		return nil, nil
	}
	latest := m.policies[len(m.policies)-1]
	return &latest, nil
}

func (m *mockStore) SavePolicy(ctx context.Context, snapshot policy.Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.policies = append(m.policies, snapshot.Clone())
	return nil
}

func bogota(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	return loc
}

// freezeNow pins the service clock for the duration of a test
func freezeNow(t *testing.T, at time.Time) {
	t.Helper()
	previous := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = previous })
}

// day returns midnight of an October 2026 date in loc. The 19th is a Monday.
func day(loc *time.Location, d int) time.Time {
	return time.Date(2026, time.October, d, 0, 0, 0, 0, loc)
}

func weightKg(kg float64) *float64 {
	return &kg
}
