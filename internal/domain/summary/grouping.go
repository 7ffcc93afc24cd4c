// Package summary builds the view models for the order summary and the
// catalogue item dashboard pages: recipient grouping and sorting, cost
// table expansion, and totals aggregation. Every function here is a pure
// transformation and safe to call concurrently.
package summary

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xenking/order-form/internal/domain/order"
)

// UnknownRecipientPolicy controls what happens when a dashboard item
// references a recipient code that is not in the selected recipient list.
type UnknownRecipientPolicy int

const (
	// DropUnknownRecipients silently excludes items for codes missing from
	// the recipient list. This mirrors the historical behaviour of the
	// dashboard pages.
	DropUnknownRecipients UnknownRecipientPolicy = iota
	// RejectUnknownRecipients treats a missing code as broken order state.
	RejectUnknownRecipients
)

// UnknownRecipientError reports an item whose recipient code is absent from
// the selected recipient list, under RejectUnknownRecipients.
type UnknownRecipientError struct {
	OdsCode string
}

func (e *UnknownRecipientError) Error() string {
	return fmt.Sprintf("order items reference unknown service recipient %q", e.OdsCode)
}

// SortRecipientsByName returns recipients ordered by display name,
// ascending and case-insensitive. The sort is stable, so recipients with
// equal names keep their relative input order. The input is not mutated.
func SortRecipientsByName(recipients []order.ServiceRecipient) []order.ServiceRecipient {
	out := make([]order.ServiceRecipient, len(recipients))
	copy(out, recipients)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out
}

// GroupItemsByRecipientCode buckets dashboard items by their recipient
// code, preserving the insertion order of items within each bucket.
func GroupItemsByRecipientCode(items []order.DashboardItem) map[string][]order.DashboardItem {
	grouped := make(map[string][]order.DashboardItem, len(items))
	for _, item := range items {
		grouped[item.RecipientCode] = append(grouped[item.RecipientCode], item)
	}
	return grouped
}

// SortItemsByRecipient flattens grouped items into display order: it walks
// the already-name-sorted recipient list and appends each recipient's
// items, themselves sorted by catalogue item name (case-insensitive,
// ascending). Recipients with no items contribute nothing.
//
// Grouped codes that do not appear in the recipient list are dropped or
// rejected according to the policy.
func SortItemsByRecipient(
	recipients []order.ServiceRecipient,
	grouped map[string][]order.DashboardItem,
	policy UnknownRecipientPolicy,
) ([]order.DashboardItem, error) {
	known := make(map[string]struct{}, len(recipients))
	var out []order.DashboardItem

	for _, r := range recipients {
		known[r.OdsCode] = struct{}{}

		items, ok := grouped[r.OdsCode]
		if !ok {
			continue
		}

		sorted := make([]order.DashboardItem, len(items))
		copy(sorted, items)
		sort.SliceStable(sorted, func(i, j int) bool {
			return strings.ToLower(sorted[i].CatalogueItemName) < strings.ToLower(sorted[j].CatalogueItemName)
		})
		out = append(out, sorted...)
	}

	if policy == RejectUnknownRecipients {
		for code := range grouped {
			if _, ok := known[code]; !ok {
				return nil, &UnknownRecipientError{OdsCode: code}
			}
		}
	}

	return out, nil
}
