package policy

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/jakechorley/basurapp/pkg/core/model"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate checks that a snapshot only holds values an administrator may set:
// non-negative points and limits, weekdays in 0..6 and known kinds.
func Validate(s Snapshot) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("policy validation failed: %w", err)
	}

	for kind := range s.PointsFormula.BasePoints {
		if !kind.IsValid() {
			return fmt.Errorf("policy validation failed: unknown kind %q in basePoints", kind)
		}
	}

	if err := validateLocalityKeys("weekdayByLocality", s.FrequencyRules.Organic.WeekdayByLocality); err != nil {
		return err
	}
	return validateLocalityKeys("capacityByLocality", s.FrequencyRules.Hazardous.CapacityByLocality)
}

func validateLocalityKeys(field string, values map[string]int) error {
	for key := range values {
		if key != DefaultKey && !model.IsLocality(key) {
			return fmt.Errorf("policy validation failed: unknown locality %q in %s", key, field)
		}
	}
	return nil
}
