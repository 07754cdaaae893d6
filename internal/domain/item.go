package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Item is a leaf of the procurement tree and the only entity whose
// state is directly mutable: flipping Received is the system's sole
// write path. Exactly one of AssemblyID/SubassemblyID is set.
type Item struct {
	ID            string
	AssemblyID    *string
	SubassemblyID *string
	Name          string
	Number        string
	Description   string
	Supplier      string
	Price         decimal.Decimal
	Quantity      int
	QtyRequired   int
	Received      bool
	ArrivedDate   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidateOwner checks the exactly-one-owner invariant: an item hangs
// off an assembly or a subassembly, never both and never neither.
func (i *Item) ValidateOwner() error {
	hasAssembly := i.AssemblyID != nil && *i.AssemblyID != ""
	hasSubassembly := i.SubassemblyID != nil && *i.SubassemblyID != ""
	if hasAssembly == hasSubassembly {
		return fmt.Errorf("item %q must belong to exactly one assembly or subassembly", i.Name)
	}
	return nil
}

// MarkReceived flips the received flag. Turning the flag on stamps
// ArrivedDate with the commit time; turning it off discards the old
// timestamp — no arrival history is kept.
func (i *Item) MarkReceived(received bool, at time.Time) {
	i.Received = received
	if received {
		t := at
		i.ArrivedDate = &t
	} else {
		i.ArrivedDate = nil
	}
}

// LineCost returns Price multiplied by the required quantity, the
// item's contribution to material cost.
func (i *Item) LineCost() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.QtyRequired)))
}
