package domain

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

var projectNumberPattern = regexp.MustCompile(`^[A-Z0-9][A-Z0-9-]{2,11}$`)

// Project is the root of one procurement tree. Number is the
// human-facing identification number operators search by; ID is the
// server-assigned key everything else references.
type Project struct {
	ID           string
	Number       string
	Description  string
	DeliveryDate *time.Time
	MaterialCost decimal.Decimal
	Completed    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidateNumber checks that Number is non-empty and matches the
// required format: 3-12 uppercase letters, digits or dashes, starting
// with a letter or digit (e.g. 2023-041, PUMP7).
func (p *Project) ValidateNumber() error {
	if p.Number == "" {
		return fmt.Errorf("project number is required")
	}
	if !projectNumberPattern.MatchString(p.Number) {
		return fmt.Errorf("project number %q must be 3-12 uppercase letters, digits or dashes (e.g. 2023-041)", p.Number)
	}
	return nil
}
