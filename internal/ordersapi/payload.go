package ordersapi

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/order-form/internal/domain/order"
	"github.com/xenking/order-form/pkg/format"
)

// Wire shapes of the Orders API. Dates travel as ISO-8601 strings and are
// parsed here, at the boundary, using date-portion-only parsing so the host
// timezone can never shift the displayed day.

type partyPayload struct {
	Name    string `json:"name"`
	OdsCode string `json:"odsCode"`
}

type recipientRefPayload struct {
	Name    string `json:"name"`
	OdsCode string `json:"odsCode"`
}

type itemRecipientPayload struct {
	Name         string              `json:"name"`
	OdsCode      string              `json:"odsCode"`
	ItemID       string              `json:"itemId"`
	Quantity     int                 `json:"quantity"`
	DeliveryDate string              `json:"deliveryDate"`
	CostPerYear  decimal.NullDecimal `json:"costPerYear"`
}

type orderItemPayload struct {
	CatalogueItemID           string                 `json:"catalogueItemId"`
	CatalogueItemName         string                 `json:"catalogueItemName"`
	CatalogueItemType         string                 `json:"catalogueItemType"`
	ProvisioningType          string                 `json:"provisioningType"`
	ServiceInstanceID         string                 `json:"serviceInstanceId"`
	Price                     decimal.NullDecimal    `json:"price"`
	ItemUnitDescription       string                 `json:"itemUnitDescription"`
	TimeUnitDescription       string                 `json:"timeUnitDescription"`
	QuantityPeriodDescription string                 `json:"quantityPeriodDescription"`
	ServiceRecipients         []itemRecipientPayload `json:"serviceRecipients"`
}

type orderPayload struct {
	Description                string              `json:"description"`
	Status                     string              `json:"status"`
	DateCompleted              string              `json:"dateCompleted"`
	CommencementDate           string              `json:"commencementDate"`
	OrderParty                 partyPayload        `json:"orderParty"`
	Supplier                   partyPayload        `json:"supplier"`
	OrderItems                 []orderItemPayload  `json:"orderItems"`
	TotalOneOffCost            decimal.NullDecimal `json:"totalOneOffCost"`
	TotalRecurringCostPerYear  decimal.NullDecimal `json:"totalRecurringCostPerYear"`
	TotalRecurringCostPerMonth decimal.NullDecimal `json:"totalRecurringCostPerMonth"`
	TotalOwnershipCost         decimal.NullDecimal `json:"totalOwnershipCost"`
}

type orderMetaPayload struct {
	OrderID       string `json:"orderId"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	LastUpdated   string `json:"lastUpdated"`
	LastUpdatedBy string `json:"lastUpdatedBy"`
}

type dashboardItemPayload struct {
	ItemID               string `json:"itemId"`
	CatalogueItemID      string `json:"catalogueItemId"`
	CatalogueItemName    string `json:"catalogueItemName"`
	ServiceRecipientCode string `json:"serviceRecipientsOdsCode"`
	DeliveryDate         string `json:"deliveryDate"`
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := format.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (p orderPayload) toDomain(orderID string) (*order.Order, error) {
	completed, err := optionalDate(p.DateCompleted)
	if err != nil {
		return nil, errors.Wrap(err, "dateCompleted")
	}
	commencement, err := optionalDate(p.CommencementDate)
	if err != nil {
		return nil, errors.Wrap(err, "commencementDate")
	}

	items := make([]order.Item, 0, len(p.OrderItems))
	for _, ip := range p.OrderItems {
		item, err := ip.toDomain()
		if err != nil {
			return nil, errors.Wrapf(err, "order item %q", ip.CatalogueItemName)
		}
		items = append(items, item)
	}

	return &order.Order{
		ID:               orderID,
		Description:      p.Description,
		Status:           order.Status(p.Status),
		DateCompleted:    completed,
		CommencementDate: commencement,
		OrderingParty:    order.Party{Name: p.OrderParty.Name, OdsCode: p.OrderParty.OdsCode},
		Supplier:         order.Party{Name: p.Supplier.Name, OdsCode: p.Supplier.OdsCode},
		Items:            items,
		Totals: order.Totals{
			OneOff:            p.TotalOneOffCost,
			RecurringPerYear:  p.TotalRecurringCostPerYear,
			RecurringPerMonth: p.TotalRecurringCostPerMonth,
			Ownership:         p.TotalOwnershipCost,
		},
	}, nil
}

func (p orderItemPayload) toDomain() (order.Item, error) {
	recipients := make([]order.ItemRecipient, 0, len(p.ServiceRecipients))
	for _, rp := range p.ServiceRecipients {
		deliveryDate, err := optionalDate(rp.DeliveryDate)
		if err != nil {
			return order.Item{}, errors.Wrapf(err, "recipient %s deliveryDate", rp.OdsCode)
		}
		recipients = append(recipients, order.ItemRecipient{
			Name:         rp.Name,
			OdsCode:      rp.OdsCode,
			ItemID:       rp.ItemID,
			Quantity:     rp.Quantity,
			DeliveryDate: deliveryDate,
			CostPerYear:  rp.CostPerYear.Decimal,
		})
	}

	return order.Item{
		CatalogueItemID:           p.CatalogueItemID,
		CatalogueItemName:         p.CatalogueItemName,
		CatalogueItemType:         order.CatalogueItemType(p.CatalogueItemType),
		ProvisioningType:          order.ProvisioningType(p.ProvisioningType),
		ServiceInstanceID:         p.ServiceInstanceID,
		Price:                     p.Price.Decimal,
		ItemUnitDescription:       p.ItemUnitDescription,
		TimeUnitDescription:       p.TimeUnitDescription,
		QuantityPeriodDescription: p.QuantityPeriodDescription,
		Recipients:                recipients,
	}, nil
}

func (p orderMetaPayload) toDomain() (OrderMeta, error) {
	updated, err := optionalDate(p.LastUpdated)
	if err != nil {
		return OrderMeta{}, errors.Wrap(err, "lastUpdated")
	}
	return OrderMeta{
		ID:            p.OrderID,
		Description:   p.Description,
		Status:        order.Status(p.Status),
		LastUpdated:   updated,
		LastUpdatedBy: p.LastUpdatedBy,
	}, nil
}

func (p dashboardItemPayload) toDomain() (order.DashboardItem, error) {
	deliveryDate, err := optionalDate(p.DeliveryDate)
	if err != nil {
		return order.DashboardItem{}, errors.Wrap(err, "deliveryDate")
	}
	return order.DashboardItem{
		ItemID:            p.ItemID,
		CatalogueItemID:   p.CatalogueItemID,
		CatalogueItemName: p.CatalogueItemName,
		RecipientCode:     p.ServiceRecipientCode,
		DeliveryDate:      deliveryDate,
	}, nil
}
