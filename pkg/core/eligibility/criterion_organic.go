package eligibility

import (
	"fmt"
	"time"

	"github.com/jakechorley/basurapp/pkg/core/model"
	"github.com/jakechorley/basurapp/pkg/core/policy"
)

// OrganicWeekdayCriterion pins organic pickups to the weekday assigned to their locality.
//
// The weekday comes from WeekdayByLocality[locality], falling back to the "default"
// key. Localities with neither are unconstrained.
type OrganicWeekdayCriterion struct {
	weekdayByLocality map[string]int
}

// NewOrganicWeekdayCriterion creates the criterion from the organic rules
func NewOrganicWeekdayCriterion(rules policy.OrganicRules) *OrganicWeekdayCriterion {
	return &OrganicWeekdayCriterion{weekdayByLocality: rules.WeekdayByLocality}
}

func (c *OrganicWeekdayCriterion) Name() string {
	return "OrganicWeekday"
}

func (c *OrganicWeekdayCriterion) Kind() model.Kind {
	return model.KindOrganic
}

func (c *OrganicWeekdayCriterion) Check(state *WeekState, candidate Candidate) (string, bool) {
	assigned, ok := policy.Resolve(c.weekdayByLocality, candidate.Locality)
	if !ok {
		return "", false
	}

	if int(candidate.ScheduledAt.Weekday()) == assigned {
		return "", false
	}

	return fmt.Sprintf("Organic pickups in %s are only scheduled on %ss.",
		candidate.Locality, WeekdayName(assigned)), true
}

// WeekdayName returns the English name of a Sunday-based weekday index.
// Out-of-range indexes wrap around the week.
func WeekdayName(index int) string {
	return time.Weekday(((index % 7) + 7) % 7).String()
}
