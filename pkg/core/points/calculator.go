package points

import (
	"math"
	"sort"
	"strings"

	"github.com/jakechorley/basurapp/pkg/core/model"
	"github.com/jakechorley/basurapp/pkg/core/policy"
)

// PointsFor scores a single pickup.
//
// Inorganic pickups earn their base plus collected weight times the weight
// multiplier; other kinds earn their base. Kinds missing from the formula earn a
// base of 0. The result is rounded half away from zero, never negative, and
// saturates at math.MaxInt. A NaN weight counts as 0 kg.
func PointsFor(pickup model.Pickup, formula policy.PointsFormula) int {
	raw := float64(formula.BasePoints[pickup.Kind])
	if pickup.Kind == model.KindInorganic {
		weight, _ := pickup.Weight()
		if extra := weight * formula.InorganicWeightMultiplier; !math.IsNaN(extra) {
			raw += extra
		}
	}

	raw = math.Round(raw)
	switch {
	case raw <= 0:
		return 0
	case raw >= float64(math.MaxInt):
		return math.MaxInt
	}
	return int(raw)
}

// Counts reports whether a pickup contributes to its requester's total.
// Pending and confirmed pickups count as well as completed ones.
func Counts(pickup model.Pickup) bool {
	return !pickup.Archived && pickup.Status != model.StatusRejected
}

// TotalPointsFor sums the points requester has earned across pickups
func TotalPointsFor(pickups []model.Pickup, requester string, formula policy.PointsFormula) int {
	total := 0
	for _, pickup := range pickups {
		if pickup.RequestedBy != requester || !Counts(pickup) {
			continue
		}
		total += PointsFor(pickup, formula)
	}
	return total
}

// CollectorPointsFor sums the points of completed pickups handled by a collector.
// Staff usernames are compared trimmed and case-insensitively.
func CollectorPointsFor(pickups []model.Pickup, staffUsername string, formula policy.PointsFormula) int {
	target := NormalizeUsername(staffUsername)
	if target == "" {
		return 0
	}

	total := 0
	for _, pickup := range pickups {
		if pickup.Archived || pickup.Status != model.StatusCompleted {
			continue
		}
		if NormalizeUsername(pickup.StaffUsername) != target {
			continue
		}
		total += PointsFor(pickup, formula)
	}
	return total
}

// NormalizeUsername trims and lowercases a staff username for comparison
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

// Standing is one requester's position on the leaderboard
type Standing struct {
	Requester string
	Points    int
	Pickups   int
}

// Leaderboard ranks every requester with at least one counted pickup.
// Ties on points are broken alphabetically by requester.
func Leaderboard(pickups []model.Pickup, formula policy.PointsFormula) []Standing {
	byRequester := make(map[string]*Standing)
	for _, pickup := range pickups {
		if !Counts(pickup) {
			continue
		}
		standing, ok := byRequester[pickup.RequestedBy]
		if !ok {
			standing = &Standing{Requester: pickup.RequestedBy}
			byRequester[pickup.RequestedBy] = standing
		}
		standing.Points += PointsFor(pickup, formula)
		standing.Pickups++
	}

	standings := make([]Standing, 0, len(byRequester))
	for _, standing := range byRequester {
		standings = append(standings, *standing)
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		return standings[i].Requester < standings[j].Requester
	})

	return standings
}
