package mutation

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlindner/asmtrack/internal/domain"
)

type recordedWrite struct {
	itemID    string
	received  bool
	arrivedAt *time.Time
}

type stubWriter struct {
	mu     sync.Mutex
	fail   bool
	writes []recordedWrite
}

func (w *stubWriter) UpdateItemReceived(_ context.Context, itemID string, received bool, arrivedAt *time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.fail {
		return fmt.Errorf("write failed")
	}
	w.writes = append(w.writes, recordedWrite{itemID: itemID, received: received, arrivedAt: arrivedAt})
	return nil
}

func (w *stubWriter) count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.writes)
}

func TestController_ConfirmReceive(t *testing.T) {
	w := &stubWriter{}
	c := NewController(w)
	commit := time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return commit }

	item := &domain.Item{ID: "i1", Name: "bolt", Received: false}
	toggle, err := c.Request(item)
	require.NoError(t, err)
	assert.Equal(t, Receive, toggle.Direction())
	assert.False(t, toggle.Prior)
	assert.True(t, toggle.Target)
	assert.Equal(t, 0, w.count(), "no write before confirmation")

	out := c.Confirm(context.Background(), "i1")
	require.NoError(t, out.Err)
	assert.Equal(t, Receive, out.Direction)
	require.NotNil(t, out.ArrivedAt)
	assert.Equal(t, commit, *out.ArrivedAt)

	require.Len(t, w.writes, 1)
	assert.True(t, w.writes[0].received)
	require.NotNil(t, w.writes[0].arrivedAt)
	assert.Equal(t, commit, *w.writes[0].arrivedAt)

	_, pending := c.Pending("i1")
	assert.False(t, pending, "item returns to idle after commit")
}

func TestController_ConfirmUnreceiveClearsArrival(t *testing.T) {
	w := &stubWriter{}
	c := NewController(w)

	item := &domain.Item{ID: "i1", Name: "bolt", Received: true}
	toggle, err := c.Request(item)
	require.NoError(t, err)
	assert.Equal(t, Unreceive, toggle.Direction())

	out := c.Confirm(context.Background(), "i1")
	require.NoError(t, out.Err)
	assert.Equal(t, Unreceive, out.Direction)
	assert.Nil(t, out.ArrivedAt)

	require.Len(t, w.writes, 1)
	assert.False(t, w.writes[0].received)
	assert.Nil(t, w.writes[0].arrivedAt)
}

func TestController_CancelWritesNothing(t *testing.T) {
	w := &stubWriter{}
	c := NewController(w)

	item := &domain.Item{ID: "i1", Name: "bolt", Received: false}
	_, err := c.Request(item)
	require.NoError(t, err)

	toggle, err := c.Cancel("i1")
	require.NoError(t, err)
	assert.False(t, toggle.Prior, "caller reverts the checkbox to the prior value")
	assert.Equal(t, 0, w.count())

	// The item is idle again: a fresh toggle is allowed.
	_, err = c.Request(item)
	assert.NoError(t, err)
}

func TestController_WriteFailureReturnsToIdle(t *testing.T) {
	w := &stubWriter{fail: true}
	c := NewController(w)

	item := &domain.Item{ID: "i1", Name: "bolt", Received: false}
	_, err := c.Request(item)
	require.NoError(t, err)

	out := c.Confirm(context.Background(), "i1")
	assert.Error(t, out.Err)
	assert.Equal(t, 0, w.count())

	_, pending := c.Pending("i1")
	assert.False(t, pending)
}

func TestController_OneTogglePerItem(t *testing.T) {
	c := NewController(&stubWriter{})

	item := &domain.Item{ID: "i1", Name: "bolt"}
	_, err := c.Request(item)
	require.NoError(t, err)

	_, err = c.Request(item)
	assert.ErrorIs(t, err, ErrTogglePending)

	// A different item is unaffected.
	other := &domain.Item{ID: "i2", Name: "nut"}
	_, err = c.Request(other)
	assert.NoError(t, err)
}

func TestController_ConfirmWithoutRequest(t *testing.T) {
	c := NewController(&stubWriter{})
	out := c.Confirm(context.Background(), "ghost")
	assert.ErrorIs(t, out.Err, ErrNoToggle)

	_, err := c.Cancel("ghost")
	assert.ErrorIs(t, err, ErrNoToggle)
}

func TestController_RoundTripRestoresContribution(t *testing.T) {
	w := &stubWriter{}
	c := NewController(w)
	times := []time.Time{
		time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC),
	}
	c.now = func() time.Time {
		t := times[0]
		times = times[1:]
		return t
	}

	// false → true → false, each confirmed.
	item := &domain.Item{ID: "i1", Name: "bolt", Received: false}
	_, err := c.Request(item)
	require.NoError(t, err)
	out := c.Confirm(context.Background(), "i1")
	require.NoError(t, out.Err)

	item.Received = true
	_, err = c.Request(item)
	require.NoError(t, err)
	out = c.Confirm(context.Background(), "i1")
	require.NoError(t, out.Err)

	require.Len(t, w.writes, 2)
	assert.True(t, w.writes[0].received)
	assert.False(t, w.writes[1].received)
	assert.Nil(t, w.writes[1].arrivedAt, "flip back to false discards the arrival date")
}
