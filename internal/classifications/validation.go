package classifications

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JaimeStill/aicomply/internal/risk"
)

// Validate checks that a reviewer is named.
func (c *ValidateCommand) Validate() error {
	c.ValidatedBy = strings.TrimSpace(c.ValidatedBy)
	if c.ValidatedBy == "" {
		return fmt.Errorf("%w: validated_by is required", ErrValidation)
	}
	return nil
}

// Validate checks the override against the risk taxonomy. Only categories
// the engine itself can produce are accepted.
func (c *UpdateCommand) Validate() error {
	c.UpdatedBy = strings.TrimSpace(c.UpdatedBy)
	c.Reason = strings.TrimSpace(c.Reason)

	var errs []error
	if !risk.Category(c.Category).Assessable() {
		errs = append(errs, ErrInvalidCategory)
	}
	if _, err := risk.ParseConfidence(c.Confidence); err != nil {
		errs = append(errs, fmt.Errorf("%w: confidence must be one of: low, medium, high", ErrValidation))
	}
	if c.UpdatedBy == "" {
		errs = append(errs, fmt.Errorf("%w: updated_by is required", ErrValidation))
	}
	return errors.Join(errs...)
}
