package eligibility

import (
	"time"

	"github.com/jakechorley/basurapp/pkg/core/model"
)

// Candidate is a proposed pickup, already resolved to a concrete date and time
type Candidate struct {
	Kind        model.Kind
	Locality    string
	ScheduledAt time.Time
}

// Result is the outcome of validating a candidate.
// Rule and Reason are only set when Valid is false.
type Result struct {
	Valid  bool
	Rule   string
	Reason string
}

// Allow is the result returned when no rule objects to a candidate
func Allow() Result {
	return Result{Valid: true}
}

// Deny builds a denial attributed to the named rule
func Deny(rule, reason string) Result {
	return Result{Valid: false, Rule: rule, Reason: reason}
}

// Criterion is a single scheduling rule.
//
// A criterion only ever judges candidates of its own Kind. Check returns a denial
// reason and true when the candidate breaks the rule, or "" and false otherwise.
// Criteria are pure: they read the week state and never modify it.
type Criterion interface {
	// Name identifies the rule in denial results and logs
	Name() string

	// Kind is the waste kind this rule applies to
	Kind() model.Kind

	// Check evaluates the candidate against the pickups already booked this week
	Check(state *WeekState, candidate Candidate) (string, bool)
}
