package services

import (
	"errors"
	"fmt"

	"github.com/jakechorley/basurapp/pkg/core/eligibility"
)

var (
	ErrPickupNotFound     = errors.New("pickup not found")
	ErrPickupArchived     = errors.New("pickup is archived")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrDateNotInFuture    = errors.New("pickup date must be after today")
	ErrInvalidWeight      = errors.New("collected weight must be greater than 0 kg")
	ErrCompletionInFuture = errors.New("completion time cannot be in the future")
	ErrInvalidRequest     = errors.New("invalid request")
)

// EligibilityError reports a candidate pickup refused by the scheduling rules
type EligibilityError struct {
	Result eligibility.Result
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("pickup not allowed (%s): %s", e.Result.Rule, e.Result.Reason)
}

// AsEligibilityError unwraps err to an *EligibilityError if it holds one
func AsEligibilityError(err error) (*EligibilityError, bool) {
	var eligibilityErr *EligibilityError
	if errors.As(err, &eligibilityErr) {
		return eligibilityErr, true
	}
	return nil, false
}
