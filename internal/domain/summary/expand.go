package summary

import (
	"fmt"
	"strings"

	"github.com/xenking/order-form/internal/domain/order"
	"github.com/xenking/order-form/pkg/format"
)

// Builder expands order items into cost table rows using an injected
// formatting configuration.
type Builder struct {
	fmt format.Config
}

// NewBuilder returns a Builder rendering with the given configuration.
func NewBuilder(cfg format.Config) Builder {
	return Builder{fmt: cfg}
}

// OneOffRow is one (item, recipient) pair in the one-off cost table.
// Field order matches the rendered column order.
type OneOffRow struct {
	Recipient         string
	ItemID            string
	CatalogueItemName string
	PriceUnit         string
	Quantity          string
	Cost              string
}

// RecurringRow is one (item, recipient) pair in the recurring cost table.
// Field order matches the rendered column order.
type RecurringRow struct {
	Recipient         string
	ItemID            string
	CatalogueItemName string
	ServiceInstanceID string
	PriceUnit         string
	Quantity          string
	DeliveryDate      string
	Cost              string
}

// ExpandOneOffRows fans each one-off item out into one row per service
// recipient. Row order follows the input item order; within an item, rows
// follow the item's recipient order. An item with no recipients is broken
// order state and yields a MissingRecipientsError.
func (b Builder) ExpandOneOffRows(items []order.Item) ([]OneOffRow, error) {
	var rows []OneOffRow
	for _, item := range items {
		if len(item.Recipients) == 0 {
			return nil, &order.MissingRecipientsError{CatalogueItemName: item.CatalogueItemName}
		}
		for _, r := range item.Recipients {
			rows = append(rows, OneOffRow{
				Recipient:         recipientLabel(r),
				ItemID:            r.ItemID,
				CatalogueItemName: item.CatalogueItemName,
				PriceUnit:         b.priceUnit(item, item.TimeUnitDescription != ""),
				Quantity:          b.quantity(item, r),
				Cost:              b.fmt.Currency(r.CostPerYear),
			})
		}
	}
	return rows, nil
}

// ExpandRecurringRows fans each recurring item out into one row per
// service recipient, with the same ordering and error semantics as
// ExpandOneOffRows. The time unit is omitted from the price-unit text for
// OnDemand items, whose billing period is driven by usage.
func (b Builder) ExpandRecurringRows(items []order.Item) ([]RecurringRow, error) {
	var rows []RecurringRow
	for _, item := range items {
		if len(item.Recipients) == 0 {
			return nil, &order.MissingRecipientsError{CatalogueItemName: item.CatalogueItemName}
		}

		includeTime := item.TimeUnitDescription != "" &&
			!strings.EqualFold(string(item.ProvisioningType), string(order.ProvisioningOnDemand))

		for _, r := range item.Recipients {
			rows = append(rows, RecurringRow{
				Recipient:         recipientLabel(r),
				ItemID:            r.ItemID,
				CatalogueItemName: item.CatalogueItemName,
				ServiceInstanceID: item.ServiceInstanceID,
				PriceUnit:         b.priceUnit(item, includeTime),
				Quantity:          b.quantity(item, r),
				DeliveryDate:      format.DateOrEmpty(r.DeliveryDate),
				Cost:              b.fmt.Currency(r.CostPerYear),
			})
		}
	}
	return rows, nil
}

// recipientLabel renders "{name} ({code})".
func recipientLabel(r order.ItemRecipient) string {
	return fmt.Sprintf("%s (%s)", r.Name, r.OdsCode)
}

// priceUnit composes "{price} {itemUnitDescription} {timeUnitDescription}".
// The price keeps its source precision; absent parts are dropped and the
// remainder joined with single spaces, never a trailing one.
func (b Builder) priceUnit(item order.Item, includeTime bool) string {
	parts := []string{b.fmt.Plain(item.Price)}
	if item.ItemUnitDescription != "" {
		parts = append(parts, item.ItemUnitDescription)
	}
	if includeTime && item.TimeUnitDescription != "" {
		parts = append(parts, item.TimeUnitDescription)
	}
	return strings.Join(parts, " ")
}

// quantity composes "{quantity, thousands-grouped} {quantityPeriodDescription}",
// omitting the period when the item has none.
func (b Builder) quantity(item order.Item, r order.ItemRecipient) string {
	q := b.fmt.Quantity(r.Quantity)
	if item.QuantityPeriodDescription == "" {
		return q
	}
	return q + " " + item.QuantityPeriodDescription
}
