package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jakechorley/basurapp/pkg/core/model"
	"github.com/jakechorley/basurapp/pkg/core/policy"
)

func inorganic(id, requester string, when time.Time) model.Pickup {
	return model.Pickup{
		ID:          id,
		Kind:        model.KindInorganic,
		Locality:    "Suba",
		RequestedBy: requester,
		Status:      model.StatusPending,
		ScheduledAt: when,
	}
}

func hazardous(id, requester, locality string, when time.Time) model.Pickup {
	return model.Pickup{
		ID:          id,
		Kind:        model.KindHazardous,
		Locality:    locality,
		RequestedBy: requester,
		Status:      model.StatusPending,
		ScheduledAt: when,
	}
}

func TestCriteriaFor_Order(t *testing.T) {
	criteria := CriteriaFor(policy.DefaultFrequencyRules())

	names := make([]string, 0, len(criteria))
	for _, c := range criteria {
		names = append(names, c.Name())
	}

	assert.Equal(t, []string{
		"OrganicWeekday",
		"InorganicWeeklyCap",
		"InorganicSpacing",
		"HazardousUserCap",
		"HazardousLocalityCapacity",
	}, names)
}

func TestValidate_OrganicWeekdayGate(t *testing.T) {
	rules := policy.FrequencyRules{
		Organic: policy.OrganicRules{WeekdayByLocality: map[string]int{"Kennedy": 4}},
	}

	// Existing pickups never affect the organic gate
	existing := []model.Pickup{
		{ID: "x", Kind: model.KindOrganic, Locality: "Kennedy", RequestedBy: "ana", ScheduledAt: at(22, 8, 0)},
	}

	for day := 19; day <= 25; day++ {
		candidate := Candidate{Kind: model.KindOrganic, Locality: "Kennedy", ScheduledAt: at(day, 8, 0)}
		result := Validate(candidate, existing, "ana", rules, "")

		if candidate.ScheduledAt.Weekday() == time.Thursday {
			assert.True(t, result.Valid, "day %d", day)
			continue
		}
		assert.False(t, result.Valid, "day %d", day)
		assert.Equal(t, "OrganicWeekday", result.Rule)
		assert.Contains(t, result.Reason, "Kennedy")
		assert.Contains(t, result.Reason, "Thursday")
	}
}

func TestValidate_OrganicUnconfiguredLocalityAllowed(t *testing.T) {
	rules := policy.FrequencyRules{
		Organic: policy.OrganicRules{WeekdayByLocality: map[string]int{"Kennedy": 4}},
	}
	candidate := Candidate{Kind: model.KindOrganic, Locality: "Usme", ScheduledAt: at(20, 8, 0)}

	assert.True(t, Validate(candidate, nil, "ana", rules, "").Valid)
}

func TestValidate_OrganicDefaultWeekday(t *testing.T) {
	rules := policy.FrequencyRules{
		Organic: policy.OrganicRules{WeekdayByLocality: map[string]int{"Kennedy": 4, "default": 1}},
	}

	monday := Candidate{Kind: model.KindOrganic, Locality: "Usme", ScheduledAt: at(19, 8, 0)}
	tuesday := Candidate{Kind: model.KindOrganic, Locality: "Usme", ScheduledAt: at(20, 8, 0)}

	assert.True(t, Validate(monday, nil, "ana", rules, "").Valid)

	result := Validate(tuesday, nil, "ana", rules, "")
	assert.False(t, result.Valid)
	assert.Contains(t, result.Reason, "Monday")
}

func TestValidate_InorganicWeeklyCap(t *testing.T) {
	rules := policy.DefaultFrequencyRules()
	existing := []model.Pickup{
		inorganic("p1", "ana", at(19, 8, 0)),
		inorganic("p2", "ana", at(21, 8, 0)),
	}
	candidate := Candidate{Kind: model.KindInorganic, Locality: "Suba", ScheduledAt: at(24, 8, 0)}

	result := Validate(candidate, existing, "ana", rules, "")
	assert.False(t, result.Valid)
	assert.Equal(t, "InorganicWeeklyCap", result.Rule)
	assert.Contains(t, result.Reason, "2")

	// Archiving one of the two frees a slot
	existing[1].Archived = true
	result = Validate(candidate, existing, "ana", rules, "")
	assert.True(t, result.Valid)
}

func TestValidate_InorganicCapIsPerRequester(t *testing.T) {
	rules := policy.DefaultFrequencyRules()
	existing := []model.Pickup{
		inorganic("p1", "ana", at(19, 8, 0)),
		inorganic("p2", "ana", at(21, 8, 0)),
	}
	candidate := Candidate{Kind: model.KindInorganic, Locality: "Suba", ScheduledAt: at(24, 8, 0)}

	assert.True(t, Validate(candidate, existing, "luis", rules, "").Valid)
}

func TestValidate_InorganicCapResetsNextWeek(t *testing.T) {
	rules := policy.DefaultFrequencyRules()
	existing := []model.Pickup{
		inorganic("p1", "ana", at(23, 8, 0)),
		inorganic("p2", "ana", at(25, 8, 0)),
	}

	// Monday 08:00 is more than 24h after Sunday 08:00 and in a new week
	candidate := Candidate{Kind: model.KindInorganic, Locality: "Suba", ScheduledAt: at(26, 8, 0)}

	assert.True(t, Validate(candidate, existing, "ana", rules, "").Valid)
}

func TestValidate_InorganicSpacingBoundary(t *testing.T) {
	rules := policy.FrequencyRules{
		Inorganic: policy.InorganicRules{MaxPerWeek: 5, MinHoursBetween: 24},
	}
	existing := []model.Pickup{inorganic("p1", "ana", at(20, 8, 0))}

	tests := []struct {
		name  string
		when  time.Time
		valid bool
	}{
		{"23h59m after", at(21, 7, 59), false},
		{"exactly 24h after", at(21, 8, 0), true},
		{"23h59m before", at(19, 8, 1), false},
		{"exactly 24h before", at(19, 8, 0), true},
		{"same time", at(20, 8, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := Candidate{Kind: model.KindInorganic, Locality: "Suba", ScheduledAt: tt.when}
			result := Validate(candidate, existing, "ana", rules, "")

			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				assert.Equal(t, "InorganicSpacing", result.Rule)
				assert.Contains(t, result.Reason, "24 hours")
			}
		})
	}
}

func TestValidate_InorganicSpacingIgnoresOtherWeeks(t *testing.T) {
	rules := policy.FrequencyRules{
		Inorganic: policy.InorganicRules{MaxPerWeek: 5, MinHoursBetween: 24},
	}
	// Sunday evening and Monday morning are only 12h apart but in different weeks
	existing := []model.Pickup{inorganic("p1", "ana", at(25, 20, 0))}
	candidate := Candidate{Kind: model.KindInorganic, Locality: "Suba", ScheduledAt: at(26, 8, 0)}

	assert.True(t, Validate(candidate, existing, "ana", rules, "").Valid)
}

func TestValidate_CapCheckedBeforeSpacing(t *testing.T) {
	rules := policy.FrequencyRules{
		Inorganic: policy.InorganicRules{MaxPerWeek: 1, MinHoursBetween: 24},
	}
	existing := []model.Pickup{inorganic("p1", "ana", at(20, 8, 0))}
	candidate := Candidate{Kind: model.KindInorganic, Locality: "Suba", ScheduledAt: at(20, 12, 0)}

	result := Validate(candidate, existing, "ana", rules, "")
	assert.Equal(t, "InorganicWeeklyCap", result.Rule)
}

func TestValidate_HazardousUserCap(t *testing.T) {
	rules := policy.DefaultFrequencyRules()
	existing := []model.Pickup{hazardous("h1", "ana", "Kennedy", at(20, 8, 0))}

	// Different locality with spare capacity, still the same requester
	candidate := Candidate{Kind: model.KindHazardous, Locality: "Suba", ScheduledAt: at(23, 8, 0)}
	result := Validate(candidate, existing, "ana", rules, "")

	assert.False(t, result.Valid)
	assert.Equal(t, "HazardousUserCap", result.Rule)
	assert.Contains(t, result.Reason, "one hazardous")
}

func TestValidate_HazardousLocalityCapacity(t *testing.T) {
	rules := policy.FrequencyRules{
		Hazardous: policy.HazardousRules{
			MaxPerWeekPerUser:  1,
			CapacityByLocality: map[string]int{"Kennedy": 2},
		},
	}

	var existing []model.Pickup

	first := Candidate{Kind: model.KindHazardous, Locality: "Kennedy", ScheduledAt: at(20, 8, 0)}
	assert.True(t, Validate(first, existing, "ana", rules, "").Valid)
	existing = append(existing, hazardous("h1", "ana", "Kennedy", first.ScheduledAt))

	second := Candidate{Kind: model.KindHazardous, Locality: "Kennedy", ScheduledAt: at(21, 8, 0)}
	assert.True(t, Validate(second, existing, "luis", rules, "").Valid)
	existing = append(existing, hazardous("h2", "luis", "Kennedy", second.ScheduledAt))

	third := Candidate{Kind: model.KindHazardous, Locality: "Kennedy", ScheduledAt: at(22, 8, 0)}
	result := Validate(third, existing, "marta", rules, "")
	assert.False(t, result.Valid)
	assert.Equal(t, "HazardousLocalityCapacity", result.Rule)
	assert.Contains(t, result.Reason, "Kennedy")

	// Other localities fall back to the floor of one and are unaffected by Kennedy
	elsewhere := Candidate{Kind: model.KindHazardous, Locality: "Bosa", ScheduledAt: at(22, 8, 0)}
	assert.True(t, Validate(elsewhere, existing, "marta", rules, "").Valid)
}

func TestValidate_HazardousCapacityFallbacks(t *testing.T) {
	existing := []model.Pickup{
		hazardous("h1", "ana", "Bosa", at(20, 8, 0)),
		hazardous("h2", "luis", "Bosa", at(21, 8, 0)),
	}
	candidate := Candidate{Kind: model.KindHazardous, Locality: "Bosa", ScheduledAt: at(22, 8, 0)}

	withDefault := policy.FrequencyRules{
		Hazardous: policy.HazardousRules{MaxPerWeekPerUser: 1, CapacityByLocality: map[string]int{"default": 3}},
	}
	assert.True(t, Validate(candidate, existing, "marta", withDefault, "").Valid)

	withoutDefault := policy.FrequencyRules{
		Hazardous: policy.HazardousRules{MaxPerWeekPerUser: 1},
	}
	result := Validate(candidate, existing[:1], "marta", withoutDefault, "")
	assert.False(t, result.Valid)
	assert.Equal(t, "HazardousLocalityCapacity", result.Rule)
}

func TestValidate_SelfExclusionOnEdit(t *testing.T) {
	rules := policy.DefaultFrequencyRules()
	existing := []model.Pickup{
		inorganic("p1", "ana", at(20, 8, 0)),
		inorganic("p2", "ana", at(22, 8, 0)),
		hazardous("h1", "ana", "Suba", at(20, 12, 0)),
	}

	// Moving p1 by four hours would clash with its own old time if it were counted
	moved := Candidate{Kind: model.KindInorganic, Locality: "Suba", ScheduledAt: at(20, 12, 0)}
	assert.True(t, Validate(moved, existing, "ana", rules, "p1").Valid)
	assert.False(t, Validate(moved, existing, "ana", rules, "").Valid)

	// Same for the hazardous per-user cap and the Suba capacity of one
	rescheduled := Candidate{Kind: model.KindHazardous, Locality: "Suba", ScheduledAt: at(21, 16, 0)}
	assert.True(t, Validate(rescheduled, existing, "ana", rules, "h1").Valid)
}

func TestValidate_UnknownKindAllowed(t *testing.T) {
	candidate := Candidate{Kind: model.Kind("electronic"), Locality: "Suba", ScheduledAt: at(20, 8, 0)}
	result := Validate(candidate, nil, "ana", policy.FrequencyRules{}, "")

	assert.True(t, result.Valid)
	assert.Empty(t, result.Rule)
	assert.Empty(t, result.Reason)
}

func TestValidate_Idempotent(t *testing.T) {
	rules := policy.DefaultFrequencyRules()
	existing := []model.Pickup{
		inorganic("p1", "ana", at(20, 8, 0)),
		hazardous("h1", "luis", "Kennedy", at(21, 8, 0)),
	}
	snapshot := append([]model.Pickup(nil), existing...)

	candidates := []Candidate{
		{Kind: model.KindInorganic, Locality: "Suba", ScheduledAt: at(20, 16, 0)},
		{Kind: model.KindHazardous, Locality: "Kennedy", ScheduledAt: at(22, 8, 0)},
		{Kind: model.KindOrganic, Locality: "Suba", ScheduledAt: at(21, 8, 0)},
	}

	for _, candidate := range candidates {
		first := Validate(candidate, existing, "ana", rules, "")
		second := Validate(candidate, existing, "ana", rules, "")
		assert.Equal(t, first, second)
	}
	assert.Equal(t, snapshot, existing)
}

type alwaysDeny struct{}

func (alwaysDeny) Name() string     { return "AlwaysDeny" }
func (alwaysDeny) Kind() model.Kind { return model.KindOrganic }
func (alwaysDeny) Check(*WeekState, Candidate) (string, bool) {
	return "closed", true
}

func TestValidateWithCriteria_OnlyMatchingKind(t *testing.T) {
	criteria := []Criterion{alwaysDeny{}}

	organic := Candidate{Kind: model.KindOrganic, Locality: "Suba", ScheduledAt: at(20, 8, 0)}
	assert.Equal(t, Deny("AlwaysDeny", "closed"), ValidateWithCriteria(organic, nil, "ana", criteria, ""))

	other := Candidate{Kind: model.KindInorganic, Locality: "Suba", ScheduledAt: at(20, 8, 0)}
	assert.Equal(t, Allow(), ValidateWithCriteria(other, nil, "ana", criteria, ""))
}

func TestWeekdayName(t *testing.T) {
	assert.Equal(t, "Sunday", WeekdayName(0))
	assert.Equal(t, "Thursday", WeekdayName(4))
	assert.Equal(t, "Saturday", WeekdayName(-1))
	assert.Equal(t, "Monday", WeekdayName(8))
}
