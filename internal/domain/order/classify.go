package order

import (
	"fmt"
	"strings"
)

// CostType tags an order item as a one-off or recurring charge.
type CostType int

// Cost classifications.
const (
	CostRecurring CostType = iota
	CostOneOff
)

// String implements fmt.Stringer.
func (c CostType) String() string {
	if c == CostOneOff {
		return "one-off"
	}
	return "recurring"
}

// CostTypeOf derives the cost classification of an order item: one-off iff
// the catalogue item type is AssociatedService and the provisioning type is
// Declarative, both compared case-insensitively. Everything else recurs.
func CostTypeOf(ct CatalogueItemType, pt ProvisioningType) CostType {
	if strings.EqualFold(string(ct), string(TypeAssociatedService)) &&
		strings.EqualFold(string(pt), string(ProvisioningDeclarative)) {
		return CostOneOff
	}
	return CostRecurring
}

// CostType derives the classification of this item.
func (i Item) CostType() CostType {
	return CostTypeOf(i.CatalogueItemType, i.ProvisioningType)
}

// Classify partitions items into one-off and recurring buckets. The
// partition is stable: relative order within each bucket is the input
// order. A nil or empty input yields two empty buckets.
func Classify(items []Item) (oneOff, recurring []Item) {
	for _, item := range items {
		if item.CostType() == CostOneOff {
			oneOff = append(oneOff, item)
			continue
		}
		recurring = append(recurring, item)
	}
	return oneOff, recurring
}

// MissingRecipientsError reports an order item with no service recipients.
// A line item without a delivery target is invalid order state and aborts
// summary rendering.
type MissingRecipientsError struct {
	CatalogueItemName string
}

func (e *MissingRecipientsError) Error() string {
	return fmt.Sprintf("order item %q has no service recipients", e.CatalogueItemName)
}
