package eligibility

import (
	"time"

	"github.com/jakechorley/basurapp/pkg/core/model"
)

// StartOfWeek returns Monday 00:00 of the calendar week containing t, in t's location
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	// Monday-start week: Monday -> 0 ... Sunday -> 6
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// WeekWindow is the half-open interval [Start, End) of one calendar week
type WeekWindow struct {
	Start time.Time
	End   time.Time
}

// WeekContaining returns the Monday-start week window containing t
func WeekContaining(t time.Time) WeekWindow {
	start := StartOfWeek(t)
	return WeekWindow{Start: start, End: start.AddDate(0, 0, 7)}
}

// Contains reports whether t falls inside the window
func (w WeekWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// WeekState is the slice of existing pickups a candidate is judged against
type WeekState struct {
	Window WeekWindow

	// SameWeek holds every active pickup in the candidate's week, all requesters and kinds
	SameWeek []model.Pickup

	// RequesterSameKind holds the requester's own pickups of the candidate's kind this week
	RequesterSameKind []model.Pickup
}

// NewWeekState filters existing down to the pickups that matter for candidate.
// Archived pickups and the pickup identified by excludePickupID are dropped first,
// so an edited pickup never conflicts with its own earlier state.
func NewWeekState(candidate Candidate, existing []model.Pickup, requester, excludePickupID string) *WeekState {
	state := &WeekState{Window: WeekContaining(candidate.ScheduledAt)}

	for _, pickup := range existing {
		if pickup.Archived {
			continue
		}
		if excludePickupID != "" && pickup.ID == excludePickupID {
			continue
		}
		if !state.Window.Contains(pickup.ScheduledAt) {
			continue
		}

		state.SameWeek = append(state.SameWeek, pickup)
		if pickup.Kind == candidate.Kind && pickup.RequestedBy == requester {
			state.RequesterSameKind = append(state.RequesterSameKind, pickup)
		}
	}

	return state
}
