package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestShowKeepsInsertionOrder(t *testing.T) {
	h := NewHub()

	h.Show("first", KindSuccess)
	h.Show("second", KindError)
	h.Show("third", KindInfo)

	active := h.Active()
	require.Len(t, active, 3)
	require.Equal(t, "first", active[0].Message)
	require.Equal(t, "second", active[1].Message)
	require.Equal(t, "third", active[2].Message)
	require.NotEqual(t, active[0].ID, active[1].ID)
}

func TestShowDefaultsToSuccess(t *testing.T) {
	h := NewHub()
	h.Show("saved", "")

	active := h.Active()
	require.Len(t, active, 1)
	require.Equal(t, KindSuccess, active[0].Kind)
}

func TestRemoveDismissesEarly(t *testing.T) {
	h := NewHub()
	h.Show("a", KindInfo)
	h.Show("b", KindInfo)

	active := h.Active()
	h.Remove(active[0].ID)

	left := h.Active()
	require.Len(t, left, 1)
	require.Equal(t, "b", left[0].Message)

	// Unknown ids are a no-op.
	h.Remove("nope")
	require.Len(t, h.Active(), 1)
}

func TestActiveForIsScopedToOwner(t *testing.T) {
	h := NewHub()

	h.ShowFor(1, "order placed", KindSuccess)
	h.ShowFor(2, "welcome back", KindSuccess)
	h.ShowFor(1, "address saved", KindInfo)

	mine := h.ActiveFor(1)
	require.Len(t, mine, 2)
	require.Equal(t, "order placed", mine[0].Message)
	require.Equal(t, "address saved", mine[1].Message)

	theirs := h.ActiveFor(2)
	require.Len(t, theirs, 1)
	require.Equal(t, "welcome back", theirs[0].Message)

	// A user with nothing queued gets an empty slice, not nil.
	require.NotNil(t, h.ActiveFor(3))
	require.Empty(t, h.ActiveFor(3))
}

func TestRemoveForChecksOwnership(t *testing.T) {
	h := NewHub()
	h.ShowFor(1, "only mine", KindSuccess)

	id := h.ActiveFor(1)[0].ID

	// Another user cannot dismiss it.
	h.RemoveFor(id, 2)
	require.Len(t, h.ActiveFor(1), 1)

	h.RemoveFor(id, 1)
	require.Empty(t, h.ActiveFor(1))
}

func TestForBindsEmitterToUser(t *testing.T) {
	h := NewHub()

	h.For(7).Show("added to cart", KindSuccess)

	require.Len(t, h.ActiveFor(7), 1)
	require.Empty(t, h.ActiveFor(8))
}

func TestToastsExpire(t *testing.T) {
	h := NewHubTTL(20 * time.Millisecond)
	h.Show("gone soon", KindSuccess)

	require.Len(t, h.Active(), 1)

	require.Eventually(t, func() bool {
		return len(h.Active()) == 0
	}, time.Second, 10*time.Millisecond)
}
