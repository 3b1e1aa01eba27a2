package eligibility

import (
	"github.com/jakechorley/basurapp/pkg/core/model"
	"github.com/jakechorley/basurapp/pkg/core/policy"
)

// CriteriaFor builds the scheduling criteria for a rules snapshot, in evaluation order.
// Within a kind the first criterion to object decides the denial reason.
func CriteriaFor(rules policy.FrequencyRules) []Criterion {
	return []Criterion{
		NewOrganicWeekdayCriterion(rules.Organic),
		NewInorganicWeeklyCapCriterion(rules.Inorganic),
		NewInorganicSpacingCriterion(rules.Inorganic),
		NewHazardousUserCapCriterion(rules.Hazardous),
		NewHazardousLocalityCapacityCriterion(rules.Hazardous),
	}
}

// Validate decides whether requester may book candidate given the pickups already known.
//
// existing is the full pickup collection; archived pickups are ignored and, when
// editing, excludePickupID names the pickup being edited so it does not count
// against itself. Pass "" when creating a new pickup. Kinds without criteria are
// always allowed.
//
// Validate is deterministic and has no side effects. It never fails: every
// outcome, including a denial, is reported through the Result.
func Validate(
	candidate Candidate,
	existing []model.Pickup,
	requester string,
	rules policy.FrequencyRules,
	excludePickupID string,
) Result {
	return ValidateWithCriteria(candidate, existing, requester, CriteriaFor(rules), excludePickupID)
}

// ValidateWithCriteria is Validate with an explicit criteria list
func ValidateWithCriteria(
	candidate Candidate,
	existing []model.Pickup,
	requester string,
	criteria []Criterion,
	excludePickupID string,
) Result {
	state := NewWeekState(candidate, existing, requester, excludePickupID)

	for _, criterion := range criteria {
		if criterion.Kind() != candidate.Kind {
			continue
		}
		if reason, denied := criterion.Check(state, candidate); denied {
			return Deny(criterion.Name(), reason)
		}
	}

	return Allow()
}
