package services

import "errors"

var (
	ErrLeadNotFound     = errors.New("lead not found")
	ErrPromoterNotFound = errors.New("promoter not found")

	ErrInvalidStatus          = errors.New("invalid status")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidSnoozeDays      = errors.New("snooze days must be one of 0, 1, 2, 3, 5, 7, 14, 30, 60, 180")
	ErrInvalidQuality         = errors.New("quality level must be between 0 and 5")
	ErrInvalidPercent         = errors.New("percentages must be between 0 and 100")
	ErrInvalidPrice           = errors.New("price must not be negative")

	ErrInvalidRent       = errors.New("rent must be greater than 0")
	ErrInvalidPolicyType = errors.New("policy type must be kanun or elemental")
	ErrInvalidDiscount   = errors.New("discount must be between 0 and 100")

	ErrTransitionNeedsConfirmation = errors.New("leaving a closed or cancelled lead requires confirmation")
	ErrConfirmationRequired        = errors.New("deleting a lead requires confirmation")

	ErrPromoterNameTaken = errors.New("a promoter with this name already exists")
	ErrPromoterNameEmpty = errors.New("promoter name is required")

	ErrNothingToUpdate = errors.New("nothing to update")
)

// IsValidation reports whether err is a caller input problem.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidStatus, ErrInvalidTransactionType, ErrInvalidSnoozeDays, ErrInvalidQuality,
		ErrInvalidPercent, ErrInvalidPrice, ErrInvalidRent, ErrInvalidPolicyType,
		ErrInvalidDiscount, ErrPromoterNameEmpty, ErrNothingToUpdate,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
