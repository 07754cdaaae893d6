package mutation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mlindner/asmtrack/internal/domain"
)

// Writer is the single write endpoint the controller commits through.
// Satisfied by fetch.Source implementations.
type Writer interface {
	UpdateItemReceived(ctx context.Context, itemID string, received bool, arrivedAt *time.Time) error
}

// Phase is the state of one item's toggle flow.
type Phase int

const (
	PhaseAwaitingConfirmation Phase = iota
	PhaseCommitting
)

// Direction distinguishes the two flip directions so callers can pick
// the right confirmation prompt and outcome notice.
type Direction string

const (
	Receive   Direction = "receive"
	Unreceive Direction = "unreceive"
)

var (
	// ErrTogglePending rejects a second toggle on an item whose first
	// one has not reached a terminal transition yet.
	ErrTogglePending = errors.New("a toggle is already pending for this item")
	// ErrNoToggle means Confirm/Cancel was called with nothing pending.
	ErrNoToggle = errors.New("no pending toggle for this item")
)

// Toggle is one in-flight flip of an item's received flag. Prior is
// the durable value to revert the optimistic checkbox to on cancel or
// failure.
type Toggle struct {
	ItemID   string
	ItemName string
	Prior    bool
	Target   bool
	Phase    Phase
}

// Direction returns the flip direction implied by the target value.
func (t *Toggle) Direction() Direction {
	if t.Target {
		return Receive
	}
	return Unreceive
}

// Outcome is the terminal result of a confirmed toggle. Err is set
// when the write failed and durable state did not change.
type Outcome struct {
	ItemID    string
	ItemName  string
	Direction Direction
	ArrivedAt *time.Time
	Err       error
}

// Controller drives the only write path of the system: flip requested
// → awaiting confirmation → committing → idle. Cancel and write
// failure are compensating transitions — no durable state changes and
// the caller reverts the optimistic checkbox to Toggle.Prior.
//
// One toggle may be pending per item; toggles on different items are
// independent and may overlap.
type Controller struct {
	writer Writer
	now    func() time.Time

	mu      sync.Mutex
	pending map[string]*Toggle
}

// NewController creates a Controller committing through the given writer.
func NewController(writer Writer) *Controller {
	return &Controller{
		writer:  writer,
		now:     func() time.Time { return time.Now().UTC() },
		pending: make(map[string]*Toggle),
	}
}

// Request starts a toggle for the item, targeting the opposite of its
// current received flag, and moves it to AwaitingConfirmation. The
// caller shows the confirmation prompt and flips the checkbox
// optimistically; nothing is written yet.
func (c *Controller) Request(item *domain.Item) (*Toggle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.pending[item.ID]; exists {
		return nil, fmt.Errorf("item %q: %w", item.Name, ErrTogglePending)
	}
	t := &Toggle{
		ItemID:   item.ID,
		ItemName: item.Name,
		Prior:    item.Received,
		Target:   !item.Received,
		Phase:    PhaseAwaitingConfirmation,
	}
	c.pending[item.ID] = t
	return t, nil
}

// Confirm commits the pending toggle: the write sets the received flag
// and stamps the arrival date with the commit time when turning true,
// or clears it when turning false. On success the caller triggers a
// full resync; on failure durable state is unchanged and the caller
// reverts the checkbox. Either way the item returns to idle.
func (c *Controller) Confirm(ctx context.Context, itemID string) Outcome {
	c.mu.Lock()
	t, ok := c.pending[itemID]
	if !ok || t.Phase != PhaseAwaitingConfirmation {
		c.mu.Unlock()
		return Outcome{ItemID: itemID, Err: ErrNoToggle}
	}
	t.Phase = PhaseCommitting
	c.mu.Unlock()

	var arrivedAt *time.Time
	if t.Target {
		at := c.now()
		arrivedAt = &at
	}
	err := c.writer.UpdateItemReceived(ctx, t.ItemID, t.Target, arrivedAt)

	c.mu.Lock()
	delete(c.pending, itemID)
	c.mu.Unlock()

	return Outcome{
		ItemID:    t.ItemID,
		ItemName:  t.ItemName,
		Direction: t.Direction(),
		ArrivedAt: arrivedAt,
		Err:       err,
	}
}

// Cancel abandons a pending toggle before any write. The returned
// Toggle carries Prior so the caller can revert the checkbox.
func (c *Controller) Cancel(itemID string) (*Toggle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.pending[itemID]
	if !ok || t.Phase != PhaseAwaitingConfirmation {
		return nil, ErrNoToggle
	}
	delete(c.pending, itemID)
	return t, nil
}

// Pending reports the toggle in flight for the item, if any.
func (c *Controller) Pending(itemID string) (*Toggle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.pending[itemID]
	return t, ok
}
