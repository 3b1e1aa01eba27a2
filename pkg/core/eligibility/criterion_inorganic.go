package eligibility

import (
	"fmt"
	"math"

	"github.com/jakechorley/basurapp/pkg/core/model"
	"github.com/jakechorley/basurapp/pkg/core/policy"
)

// InorganicWeeklyCapCriterion limits how many inorganic pickups one requester can hold per week
type InorganicWeeklyCapCriterion struct {
	maxPerWeek int
}

// NewInorganicWeeklyCapCriterion creates the criterion from the inorganic rules
func NewInorganicWeeklyCapCriterion(rules policy.InorganicRules) *InorganicWeeklyCapCriterion {
	return &InorganicWeeklyCapCriterion{maxPerWeek: rules.MaxPerWeek}
}

func (c *InorganicWeeklyCapCriterion) Name() string {
	return "InorganicWeeklyCap"
}

func (c *InorganicWeeklyCapCriterion) Kind() model.Kind {
	return model.KindInorganic
}

func (c *InorganicWeeklyCapCriterion) Check(state *WeekState, candidate Candidate) (string, bool) {
	if len(state.RequesterSameKind) < c.maxPerWeek {
		return "", false
	}
	return fmt.Sprintf("You can only book %d inorganic pickups per week.", c.maxPerWeek), true
}

// InorganicSpacingCriterion keeps a requester's inorganic pickups at least
// MinHoursBetween hours apart. The gap is measured in absolute time, so a clash is
// caught whether the candidate lands before or after the existing pickup. A gap of
// exactly MinHoursBetween is allowed.
type InorganicSpacingCriterion struct {
	minHoursBetween float64
}

// NewInorganicSpacingCriterion creates the criterion from the inorganic rules
func NewInorganicSpacingCriterion(rules policy.InorganicRules) *InorganicSpacingCriterion {
	return &InorganicSpacingCriterion{minHoursBetween: rules.MinHoursBetween}
}

func (c *InorganicSpacingCriterion) Name() string {
	return "InorganicSpacing"
}

func (c *InorganicSpacingCriterion) Kind() model.Kind {
	return model.KindInorganic
}

func (c *InorganicSpacingCriterion) Check(state *WeekState, candidate Candidate) (string, bool) {
	for _, pickup := range state.RequesterSameKind {
		gap := math.Abs(pickup.ScheduledAt.Sub(candidate.ScheduledAt).Hours())
		if gap < c.minHoursBetween {
			return fmt.Sprintf("Inorganic pickups must be at least %s hours apart.",
				formatHours(c.minHoursBetween)), true
		}
	}
	return "", false
}

func formatHours(hours float64) string {
	if hours == math.Trunc(hours) {
		return fmt.Sprintf("%d", int64(hours))
	}
	return fmt.Sprintf("%.1f", hours)
}
