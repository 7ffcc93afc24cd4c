package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/order-form/internal/domain/order"
)

func TestMemory_PutGetDelete(t *testing.T) {
	s := NewMemory(time.Hour)
	ctx := context.Background()

	state := &State{
		OrderID:          "C010001-01",
		SelectedItemID:   "10001-001",
		SelectedItemName: "Solution One",
		SelectedPriceID:  7,
		SelectedRecipients: []order.ServiceRecipient{
			{Name: "Alpha Practice", OdsCode: "A01"},
		},
	}

	require.NoError(t, s.Put(ctx, "sid-1", state))

	got, err := s.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, state, got)

	// A returned copy does not alias the stored value.
	got.SelectedItemName = "mutated"
	again, err := s.Get(ctx, "sid-1")
	require.NoError(t, err)
	assert.Equal(t, "Solution One", again.SelectedItemName)

	require.NoError(t, s.Delete(ctx, "sid-1"))
	_, err = s.Get(ctx, "sid-1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_MissingSession(t *testing.T) {
	s := NewMemory(time.Hour)
	_, err := s.Get(context.Background(), "unknown")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Expiry(t *testing.T) {
	s := NewMemory(time.Minute)

	current := time.Date(2020, time.September, 25, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return current }

	require.NoError(t, s.Put(context.Background(), "sid-1", &State{OrderID: "C010001-01"}))

	current = current.Add(30 * time.Second)
	_, err := s.Get(context.Background(), "sid-1")
	require.NoError(t, err)

	current = current.Add(45 * time.Second)
	_, err = s.Get(context.Background(), "sid-1")
	require.ErrorIs(t, err, ErrNotFound)
}
