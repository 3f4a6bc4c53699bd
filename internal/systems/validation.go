package systems

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/JaimeStill/aicomply/internal/risk"
)

const maxNameLength = 200

// Normalize trims text fields, defaults status and deployment type, and
// replaces nil tag slices with empty ones.
func (c *Command) Normalize() {
	for _, f := range []*string{
		&c.Name, &c.Description, &c.Owner, &c.Department, &c.Vendor,
		&c.Model, &c.Provider, &c.DeploymentType, &c.HumanOversightDescription, &c.Status,
	} {
		*f = strings.TrimSpace(*f)
	}

	if c.Status == "" {
		c.Status = "draft"
	}
	if c.DeploymentType == "" {
		c.DeploymentType = "saas"
	}
	if !c.HumanOversight {
		c.HumanOversightDescription = ""
	}

	for _, tags := range []*[]string{&c.DataCategories, &c.AffectedUsers, &c.UseCases, &c.Domains} {
		*tags = dedupe(*tags)
	}
}

// Validate reports every invalid field, joined and wrapped in ErrValidation.
func (c *Command) Validate() error {
	var errs []error

	if c.Name == "" {
		errs = append(errs, errors.New("Name is required."))
	} else if utf8.RuneCountInString(c.Name) > maxNameLength {
		errs = append(errs, fmt.Errorf("Name must be %d characters or fewer.", maxNameLength))
	}

	errs = append(errs,
		oneOf(c.DeploymentType, DeploymentTypes, "Deployment type"),
		oneOf(c.Status, Statuses, "Status"),
		risk.System{
			DataCategories: c.DataCategories,
			AffectedUsers:  c.AffectedUsers,
			UseCases:       c.UseCases,
			Domains:        c.Domains,
		}.CheckTags(),
	)

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return nil
}

func oneOf(v string, allowed []string, field string) error {
	if slices.Contains(allowed, v) {
		return nil
	}
	return fmt.Errorf("%s must be one of: %s.", field, strings.Join(allowed, ", "))
}

func dedupe(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" && !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}
