package eligibility

import (
	"fmt"

	"github.com/jakechorley/basurapp/pkg/core/model"
	"github.com/jakechorley/basurapp/pkg/core/policy"
)

// HazardousUserCapCriterion limits hazardous pickups per requester per week, in any locality
type HazardousUserCapCriterion struct {
	maxPerWeekPerUser int
}

// NewHazardousUserCapCriterion creates the criterion from the hazardous rules
func NewHazardousUserCapCriterion(rules policy.HazardousRules) *HazardousUserCapCriterion {
	return &HazardousUserCapCriterion{maxPerWeekPerUser: rules.MaxPerWeekPerUser}
}

func (c *HazardousUserCapCriterion) Name() string {
	return "HazardousUserCap"
}

func (c *HazardousUserCapCriterion) Kind() model.Kind {
	return model.KindHazardous
}

func (c *HazardousUserCapCriterion) Check(state *WeekState, candidate Candidate) (string, bool) {
	if len(state.RequesterSameKind) < c.maxPerWeekPerUser {
		return "", false
	}
	if c.maxPerWeekPerUser == 1 {
		return "You can only book one hazardous waste pickup per week.", true
	}
	return fmt.Sprintf("You can only book %d hazardous waste pickups per week.", c.maxPerWeekPerUser), true
}

// HazardousLocalityCapacityCriterion caps hazardous pickups per locality per week,
// counted across all requesters.
//
// Capacity is CapacityByLocality[locality], then the "default" key, then a floor of 1
// so an incomplete configuration never allows unbounded bookings.
type HazardousLocalityCapacityCriterion struct {
	capacityByLocality map[string]int
}

// NewHazardousLocalityCapacityCriterion creates the criterion from the hazardous rules
func NewHazardousLocalityCapacityCriterion(rules policy.HazardousRules) *HazardousLocalityCapacityCriterion {
	return &HazardousLocalityCapacityCriterion{capacityByLocality: rules.CapacityByLocality}
}

func (c *HazardousLocalityCapacityCriterion) Name() string {
	return "HazardousLocalityCapacity"
}

func (c *HazardousLocalityCapacityCriterion) Kind() model.Kind {
	return model.KindHazardous
}

func (c *HazardousLocalityCapacityCriterion) Check(state *WeekState, candidate Candidate) (string, bool) {
	capacity := policy.ResolveOr(c.capacityByLocality, candidate.Locality, policy.HazardousCapacityFloor)

	booked := 0
	for _, pickup := range state.SameWeek {
		if pickup.Kind == model.KindHazardous && pickup.Locality == candidate.Locality {
			booked++
		}
	}

	if booked < capacity {
		return "", false
	}
	return fmt.Sprintf("Hazardous waste slots in %s are full for this week.", candidate.Locality), true
}
