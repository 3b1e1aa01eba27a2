package policy

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/basurapp/pkg/core/model"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		values   map[string]int
		key      string
		expected int
		found    bool
	}{
		{"locality entry", map[string]int{"Kennedy": 4, DefaultKey: 1}, "Kennedy", 4, true},
		{"falls back to default", map[string]int{"Kennedy": 4, DefaultKey: 1}, "Suba", 1, true},
		{"zero entry is still an entry", map[string]int{"Suba": 0, DefaultKey: 3}, "Suba", 0, true},
		{"nothing configured", map[string]int{"Kennedy": 4}, "Suba", 0, false},
		{"nil map", nil, "Suba", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.values, tt.key)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveOr_Floor(t *testing.T) {
	assert.Equal(t, 1, ResolveOr(map[string]int{"Kennedy": 2}, "Suba", HazardousCapacityFloor))
	assert.Equal(t, 2, ResolveOr(map[string]int{"Kennedy": 2}, "Kennedy", HazardousCapacityFloor))
	assert.Equal(t, 5, ResolveOr(map[string]int{DefaultKey: 5}, "Suba", HazardousCapacityFloor))
}

func TestDefaultSnapshot_IsValid(t *testing.T) {
	s := DefaultSnapshot()
	require.NoError(t, Validate(s))

	assert.Equal(t, 50, s.PointsFormula.BasePoints[model.KindOrganic])
	assert.Equal(t, 40, s.PointsFormula.BasePoints[model.KindInorganic])
	assert.Equal(t, 120, s.PointsFormula.BasePoints[model.KindHazardous])
	assert.Equal(t, 6.0, s.PointsFormula.InorganicWeightMultiplier)
	assert.Equal(t, 4, s.FrequencyRules.Organic.WeekdayByLocality["Kennedy"])
	assert.Equal(t, 2, s.FrequencyRules.Hazardous.CapacityByLocality["Kennedy"])
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"negative base points", func(s *Snapshot) { s.PointsFormula.BasePoints[model.KindOrganic] = -1 }},
		{"negative multiplier", func(s *Snapshot) { s.PointsFormula.InorganicWeightMultiplier = -0.5 }},
		{"unknown kind", func(s *Snapshot) { s.PointsFormula.BasePoints["electronic"] = 10 }},
		{"weekday above 6", func(s *Snapshot) { s.FrequencyRules.Organic.WeekdayByLocality["Suba"] = 7 }},
		{"negative weekday", func(s *Snapshot) { s.FrequencyRules.Organic.WeekdayByLocality["Suba"] = -1 }},
		{"negative weekly cap", func(s *Snapshot) { s.FrequencyRules.Inorganic.MaxPerWeek = -1 }},
		{"negative spacing", func(s *Snapshot) { s.FrequencyRules.Inorganic.MinHoursBetween = -2 }},
		{"negative capacity", func(s *Snapshot) { s.FrequencyRules.Hazardous.CapacityByLocality["Kennedy"] = -1 }},
		{"unknown locality", func(s *Snapshot) { s.FrequencyRules.Hazardous.CapacityByLocality["Gotham"] = 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSnapshot()
			tt.mutate(&s)
			err := Validate(s)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "policy validation failed")
		})
	}
}

func TestValidate_DefaultKeyAllowed(t *testing.T) {
	s := DefaultSnapshot()
	s.FrequencyRules.Organic.WeekdayByLocality[DefaultKey] = 6
	s.FrequencyRules.Hazardous.CapacityByLocality[DefaultKey] = 3
	assert.NoError(t, Validate(s))
}

func TestClone_IsDeep(t *testing.T) {
	original := DefaultSnapshot()
	copied := original.Clone()

	copied.PointsFormula.BasePoints[model.KindOrganic] = 999
	copied.FrequencyRules.Organic.WeekdayByLocality["Suba"] = 0
	copied.FrequencyRules.Hazardous.CapacityByLocality["Kennedy"] = 99

	assert.Equal(t, 50, original.PointsFormula.BasePoints[model.KindOrganic])
	assert.Equal(t, 3, original.FrequencyRules.Organic.WeekdayByLocality["Suba"])
	assert.Equal(t, 2, original.FrequencyRules.Hazardous.CapacityByLocality["Kennedy"])
}

func TestHolder_UpdateReplacesSnapshot(t *testing.T) {
	h := NewHolder(DefaultSnapshot())
	before := h.Current()

	after, err := h.UpdatePointsFormula(func(f PointsFormula) PointsFormula {
		f.BasePoints[model.KindOrganic] = 75
		f.InorganicWeightMultiplier = 8
		return f
	})
	require.NoError(t, err)

	assert.Equal(t, 75, after.PointsFormula.BasePoints[model.KindOrganic])
	assert.Equal(t, 75, h.Current().PointsFormula.BasePoints[model.KindOrganic])
	assert.Equal(t, 8.0, h.Current().PointsFormula.InorganicWeightMultiplier)

	// The snapshot handed out before the update is untouched
	assert.Equal(t, 50, before.PointsFormula.BasePoints[model.KindOrganic])
	assert.Equal(t, 6.0, before.PointsFormula.InorganicWeightMultiplier)
}

func TestHolder_InvalidUpdateKeepsPrevious(t *testing.T) {
	h := NewHolder(DefaultSnapshot())

	_, err := h.UpdateFrequencyRules(func(r FrequencyRules) FrequencyRules {
		r.Organic.WeekdayByLocality["Suba"] = 9
		return r
	})
	require.Error(t, err)
	assert.Equal(t, 3, h.Current().FrequencyRules.Organic.WeekdayByLocality["Suba"])
}

func TestHolder_AbortedUpdateKeepsPrevious(t *testing.T) {
	h := NewHolder(DefaultSnapshot())
	persistErr := errors.New("store unavailable")

	_, err := h.Update(func(s Snapshot) (Snapshot, error) {
		s.FrequencyRules.Inorganic.MaxPerWeek = 5
		return s, persistErr
	})
	assert.ErrorIs(t, err, persistErr)
	assert.Equal(t, 2, h.Current().FrequencyRules.Inorganic.MaxPerWeek)
}

func TestHolder_ConcurrentReadersSeeCompleteSnapshots(t *testing.T) {
	seed := DefaultSnapshot()
	seed.FrequencyRules.Inorganic.MaxPerWeek = 4
	seed.PointsFormula.BasePoints[model.KindInorganic] = 40
	h := NewHolder(seed)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				s := h.Current()
				// Both fields are always changed together by the writer below
				assert.Equal(t, s.FrequencyRules.Inorganic.MaxPerWeek*10, s.PointsFormula.BasePoints[model.KindInorganic])
			}
		}()
	}

	for n := 1; n <= 50; n++ {
		n := n
		_, err := h.Update(func(s Snapshot) (Snapshot, error) {
			s.FrequencyRules.Inorganic.MaxPerWeek = n
			s.PointsFormula.BasePoints[model.KindInorganic] = n * 10
			return s, nil
		})
		require.NoError(t, err)
	}

	wg.Wait()
}
