package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jakechorley/basurapp/pkg/core/model"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// noneValue clears an optional policy entry
const noneValue = "none"

func parseKind(value string) (model.Kind, error) {
	kind := model.Kind(strings.ToLower(strings.TrimSpace(value)))
	if !kind.IsValid() {
		return "", fmt.Errorf("unknown kind %q (expected organic, inorganic or hazardous)", value)
	}
	return kind, nil
}

func parseStatus(value string) (model.Status, error) {
	status := model.Status(strings.ToLower(strings.TrimSpace(value)))
	if !status.IsValid() {
		return "", fmt.Errorf("unknown status %q", value)
	}
	return status, nil
}

// parseDate reads a yyyy-mm-dd calendar date in loc
func parseDate(value string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected yyyy-mm-dd): %w", value, err)
	}
	return date, nil
}

// parseMoment accepts RFC 3339, "yyyy-mm-dd hh:mm" or "yyyy-mm-ddThh:mm" in loc
func parseMoment(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(dateTimeLayout, strings.Replace(value, "T", " ", 1), loc); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q (expected yyyy-mm-dd hh:mm)", value)
}

// parseWeekday accepts 0-6 (Sunday = 0) or an English day name
func parseWeekday(value string) (int, error) {
	value = strings.TrimSpace(value)
	if n, err := strconv.Atoi(value); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("weekday must be between 0 (Sunday) and 6 (Saturday), got %d", n)
		}
		return n, nil
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		name := day.String()
		if strings.EqualFold(value, name) || strings.EqualFold(value, name[:3]) {
			return int(day), nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", value)
}

// parseOptionalWeekday returns nil for "none"
func parseOptionalWeekday(value string) (*int, error) {
	if strings.EqualFold(strings.TrimSpace(value), noneValue) {
		return nil, nil
	}
	day, err := parseWeekday(value)
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// parseOptionalCount returns nil for "none"
func parseOptionalCount(value string) (*int, error) {
	if strings.EqualFold(strings.TrimSpace(value), noneValue) {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return nil, fmt.Errorf("expected a number or %q, got %q", noneValue, value)
	}
	return &n, nil
}

// parseLocality matches a known locality ignoring case
func parseLocality(value string) (string, error) {
	value = strings.TrimSpace(value)
	for _, locality := range model.Localities {
		if strings.EqualFold(locality, value) {
			return locality, nil
		}
	}
	return "", fmt.Errorf("unknown locality %q", value)
}

// parsePolicyLocality is parseLocality that also accepts the "default" key
func parsePolicyLocality(value string) (string, error) {
	if strings.EqualFold(strings.TrimSpace(value), "default") {
		return "default", nil
	}
	return parseLocality(value)
}
