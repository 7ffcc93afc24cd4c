// Package order holds the order aggregate as returned by the upstream
// Orders API, plus the cost classification rules applied to its line items.
package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of an order.
type Status string

// Order lifecycle states.
const (
	StatusIncomplete Status = "Incomplete"
	StatusComplete   Status = "Complete"
)

// IsComplete reports whether the order has been through the completion
// action. Completed orders are read-only for summary purposes.
func (s Status) IsComplete() bool {
	return s == StatusComplete
}

// CatalogueItemType distinguishes the three purchasable item kinds.
type CatalogueItemType string

// Catalogue item types.
const (
	TypeSolution          CatalogueItemType = "Solution"
	TypeAdditionalService CatalogueItemType = "AdditionalService"
	TypeAssociatedService CatalogueItemType = "AssociatedService"
)

// ProvisioningType is the billing/delivery model of a catalogue item.
type ProvisioningType string

// Provisioning types.
const (
	ProvisioningOnDemand    ProvisioningType = "OnDemand"
	ProvisioningDeclarative ProvisioningType = "Declarative"
	ProvisioningPatient     ProvisioningType = "Patient"
)

// Party identifies the ordering organisation or the supplier on an order.
type Party struct {
	Name    string
	OdsCode string
}

// ServiceRecipient is an organisational unit that can receive delivery of
// ordered items, identified by its ODS code. Codes are unique within the
// set selected for an order.
type ServiceRecipient struct {
	Name    string
	OdsCode string
}

// ItemRecipient is one delivery target of an order item, carrying the
// per-recipient fulfilment facts used by the cost tables.
type ItemRecipient struct {
	Name         string
	OdsCode      string
	ItemID       string
	Quantity     int
	DeliveryDate *time.Time
	CostPerYear  decimal.Decimal
}

// Item is one catalogue item as it appears on one order, with a price
// bound and one or more delivery recipients.
type Item struct {
	CatalogueItemID           string
	CatalogueItemName         string
	CatalogueItemType         CatalogueItemType
	ProvisioningType          ProvisioningType
	ServiceInstanceID         string
	Price                     decimal.Decimal
	ItemUnitDescription       string
	TimeUnitDescription       string
	QuantityPeriodDescription string
	Recipients                []ItemRecipient
}

// DashboardItem is the flattened one-recipient-per-row item shape used by
// the catalogue-solutions and additional-services list pages, where each
// entry carries exactly one recipient code.
type DashboardItem struct {
	ItemID            string
	CatalogueItemID   string
	CatalogueItemName string
	RecipientCode     string
	DeliveryDate      *time.Time
}

// Totals holds the precomputed order-level cost aggregates. Each value is
// nullable: the upstream API omits totals the order has not accrued yet.
type Totals struct {
	OneOff            decimal.NullDecimal
	RecurringPerYear  decimal.NullDecimal
	RecurringPerMonth decimal.NullDecimal
	Ownership         decimal.NullDecimal
}

// Order is the aggregate fetched for the summary page.
type Order struct {
	ID               string
	Description      string
	Status           Status
	DateCompleted    *time.Time
	CommencementDate *time.Time
	OrderingParty    Party
	Supplier         Party
	Items            []Item
	Totals           Totals
}
