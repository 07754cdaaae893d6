package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Assembly is a direct child of a Project. It owns items directly,
// subassemblies, or both.
type Assembly struct {
	ID            string
	ProjectID     string
	Number        string
	Description   string
	Price         decimal.Decimal
	DeliveryDate  *time.Time
	CompletedDate *time.Time
	Completed     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Subassembly is an optional grouping level between an Assembly and
// its items.
type Subassembly struct {
	ID         string
	AssemblyID string
	Number     string
	Completed  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
