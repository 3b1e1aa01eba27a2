package policy

import (
	"github.com/jakechorley/basurapp/pkg/core/model"
)

// DefaultKey is the map key consulted when a locality has no entry of its own
const DefaultKey = "default"

// HazardousCapacityFloor is the per-locality weekly capacity used when neither the
// locality nor the default key is configured
const HazardousCapacityFloor = 1

// PointsFormula converts a pickup into a gamification score
type PointsFormula struct {
	BasePoints                map[model.Kind]int `yaml:"basePoints" json:"basePoints" validate:"dive,gte=0"`
	InorganicWeightMultiplier float64            `yaml:"inorganicWeightMultiplier" json:"inorganicWeightMultiplier" validate:"gte=0"`
}

// OrganicRules pins organic pickups to a single weekday per locality (Sunday = 0)
type OrganicRules struct {
	WeekdayByLocality map[string]int `yaml:"weekdayByLocality" json:"weekdayByLocality" validate:"dive,min=0,max=6"`
}

// InorganicRules bounds how often one requester can book inorganic pickups
type InorganicRules struct {
	MaxPerWeek      int     `yaml:"maxPerWeek" json:"maxPerWeek" validate:"gte=0"`
	MinHoursBetween float64 `yaml:"minHoursBetween" json:"minHoursBetween" validate:"gte=0"`
}

// HazardousRules bounds hazardous pickups per requester and per locality
type HazardousRules struct {
	MaxPerWeekPerUser  int            `yaml:"maxPerWeekPerUser" json:"maxPerWeekPerUser" validate:"gte=0"`
	CapacityByLocality map[string]int `yaml:"capacityByLocality" json:"capacityByLocality" validate:"dive,gte=0"`
}

// FrequencyRules bounds how often and where pickups of each kind may occur
type FrequencyRules struct {
	Organic   OrganicRules   `yaml:"organic" json:"organic"`
	Inorganic InorganicRules `yaml:"inorganic" json:"inorganic"`
	Hazardous HazardousRules `yaml:"hazardous" json:"hazardous"`
}

// Snapshot is a complete, immutable policy configuration.
// Snapshots are never mutated once published; updates build a new one.
type Snapshot struct {
	PointsFormula  PointsFormula  `yaml:"pointsFormula" json:"pointsFormula"`
	FrequencyRules FrequencyRules `yaml:"frequencyRules" json:"frequencyRules"`
}

// DefaultPointsFormula returns the formula a fresh installation starts with
func DefaultPointsFormula() PointsFormula {
	return PointsFormula{
		BasePoints: map[model.Kind]int{
			model.KindOrganic:   50,
			model.KindInorganic: 40,
			model.KindHazardous: 120,
		},
		InorganicWeightMultiplier: 6,
	}
}

// DefaultFrequencyRules returns the scheduling rules a fresh installation starts with
func DefaultFrequencyRules() FrequencyRules {
	return FrequencyRules{
		Organic: OrganicRules{
			WeekdayByLocality: map[string]int{
				"Suba":      3, // Wednesday
				"Chapinero": 2, // Tuesday
				"Kennedy":   4, // Thursday
				"Engativá":  1, // Monday
				"Fontibón":  5, // Friday
			},
		},
		Inorganic: InorganicRules{
			MaxPerWeek:      2,
			MinHoursBetween: 24,
		},
		Hazardous: HazardousRules{
			MaxPerWeekPerUser: 1,
			CapacityByLocality: map[string]int{
				"Kennedy":   2,
				"Chapinero": 1,
				"Suba":      1,
				"Engativá":  1,
				"Fontibón":  1,
			},
		},
	}
}

// DefaultSnapshot returns the built-in policy
func DefaultSnapshot() Snapshot {
	return Snapshot{
		PointsFormula:  DefaultPointsFormula(),
		FrequencyRules: DefaultFrequencyRules(),
	}
}

// Clone returns a deep copy of the formula
func (f PointsFormula) Clone() PointsFormula {
	return PointsFormula{
		BasePoints:                cloneMap(f.BasePoints),
		InorganicWeightMultiplier: f.InorganicWeightMultiplier,
	}
}

// Clone returns a deep copy of the rules
func (r FrequencyRules) Clone() FrequencyRules {
	return FrequencyRules{
		Organic: OrganicRules{
			WeekdayByLocality: cloneMap(r.Organic.WeekdayByLocality),
		},
		Inorganic: r.Inorganic,
		Hazardous: HazardousRules{
			MaxPerWeekPerUser:  r.Hazardous.MaxPerWeekPerUser,
			CapacityByLocality: cloneMap(r.Hazardous.CapacityByLocality),
		},
	}
}

// Clone returns a deep copy of the snapshot
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		PointsFormula:  s.PointsFormula.Clone(),
		FrequencyRules: s.FrequencyRules.Clone(),
	}
}

// Resolve looks key up in values, falling back to the DefaultKey entry.
// The second return value is false when neither is present.
func Resolve[V any](values map[string]V, key string) (V, bool) {
	if v, ok := values[key]; ok {
		return v, true
	}
	if v, ok := values[DefaultKey]; ok {
		return v, true
	}
	var zero V
	return zero, false
}

// ResolveOr is Resolve with a hard floor returned when nothing is configured
func ResolveOr[V any](values map[string]V, key string, floor V) V {
	if v, ok := Resolve(values, key); ok {
		return v
	}
	return floor
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
