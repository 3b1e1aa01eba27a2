package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/basurapp/pkg/core/policy"
)

var rruleWeekdays = []rrule.Weekday{rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA}

// OrganicDates lists the next count dates, after today in loc, on which organic
// pickups can be booked in locality. It fails when the locality has no
// assigned weekday since every future date would then be allowed.
func OrganicDates(rules policy.FrequencyRules, locality string, loc *time.Location, count int) ([]time.Time, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidRequest, count)
	}

	weekday, ok := policy.Resolve(rules.Organic.WeekdayByLocality, locality)
	if !ok {
		return nil, fmt.Errorf("no organic weekday configured for %s", locality)
	}
	if weekday < 0 || weekday > 6 {
		return nil, fmt.Errorf("invalid organic weekday %d for %s", weekday, locality)
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Dtstart:   startOfDay(now(), loc).AddDate(0, 0, 1),
		Byweekday: []rrule.Weekday{rruleWeekdays[weekday]},
		Count:     count,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build organic schedule: %w", err)
	}

	return rule.All(), nil
}
