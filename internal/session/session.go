// Package session holds the multi-page form state that spans the order
// assembly steps: the catalogue item being added, the price chosen for it,
// and the recipients it will be delivered to.
package session

import (
	"context"

	"github.com/go-faster/errors"

	"github.com/xenking/order-form/internal/domain/order"
)

// ErrNotFound is returned when no state exists for a session ID, either
// because none was stored or because it expired.
var ErrNotFound = errors.New("session state not found")

// State is the in-progress selection carried between form pages. It is
// scoped to one order and discarded once the item lands on the order.
type State struct {
	OrderID            string                   `json:"orderId"`
	SelectedItemID     string                   `json:"selectedItemId"`
	SelectedItemName   string                   `json:"selectedItemName"`
	SelectedPriceID    int                      `json:"selectedPriceId"`
	SelectedRecipients []order.ServiceRecipient `json:"selectedRecipients"`
}

// Store persists form state keyed by session ID.
type Store interface {
	Get(ctx context.Context, sessionID string) (*State, error)
	Put(ctx context.Context, sessionID string, state *State) error
	Delete(ctx context.Context, sessionID string) error
}
