// Package ordersapi is the HTTP client for the upstream Orders API, the
// system of record for orders undergoing assembly.
package ordersapi

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/go-faster/errors"

	"github.com/xenking/order-form/internal/domain/order"
	"github.com/xenking/order-form/internal/upstream"
)

// ErrOrderNotFound is returned when the Orders API has no order with the
// requested ID.
var ErrOrderNotFound = errors.New("order not found")

// Client calls the Orders API.
type Client struct {
	c *upstream.Client
}

// New creates a Client rooted at baseURL.
func New(baseURL string, opts ...upstream.Option) (*Client, error) {
	c, err := upstream.New(baseURL, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "orders api")
	}
	return &Client{c: c}, nil
}

// OrderMeta is the list-page shape of an order.
type OrderMeta struct {
	ID            string
	Description   string
	Status        order.Status
	LastUpdated   *time.Time
	LastUpdatedBy string
}

// GetOrder fetches the full order aggregate used by the summary page.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*order.Order, error) {
	var payload orderPayload
	err := c.c.Get(ctx, "/api/v1/orders/"+url.PathEscape(orderID), &payload)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, errors.Wrapf(err, "get order %s", orderID)
	}

	o, err := payload.toDomain(orderID)
	if err != nil {
		return nil, errors.Wrapf(err, "map order %s", orderID)
	}
	return o, nil
}

// ListOrders fetches the orders belonging to an organisation, newest
// first, for the organisation dashboard.
func (c *Client) ListOrders(ctx context.Context, odsCode string) ([]OrderMeta, error) {
	var payload struct {
		Orders []orderMetaPayload `json:"orders"`
	}
	err := c.c.Get(ctx, "/api/v1/organisations/"+url.PathEscape(odsCode)+"/orders", &payload)
	if err != nil {
		return nil, errors.Wrapf(err, "list orders for %s", odsCode)
	}

	out := make([]OrderMeta, 0, len(payload.Orders))
	for _, p := range payload.Orders {
		m, err := p.toDomain()
		if err != nil {
			return nil, errors.Wrapf(err, "map order %s", p.OrderID)
		}
		out = append(out, m)
	}
	return out, nil
}

// GetOrderItems fetches the flattened dashboard items of one catalogue
// item type, each carrying a single recipient code.
func (c *Client) GetOrderItems(ctx context.Context, orderID string, itemType order.CatalogueItemType) ([]order.DashboardItem, error) {
	path := "/api/v1/orders/" + url.PathEscape(orderID) + "/order-items?catalogueItemType=" + url.QueryEscape(string(itemType))

	var payload []dashboardItemPayload
	if err := c.c.Get(ctx, path, &payload); err != nil {
		if upstream.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, errors.Wrapf(err, "get %s items for order %s", itemType, orderID)
	}

	out := make([]order.DashboardItem, 0, len(payload))
	for _, p := range payload {
		item, err := p.toDomain()
		if err != nil {
			return nil, errors.Wrapf(err, "map order item %s", p.ItemID)
		}
		out = append(out, item)
	}
	return out, nil
}

// GetServiceRecipients fetches the recipients selected for an order.
func (c *Client) GetServiceRecipients(ctx context.Context, orderID string) ([]order.ServiceRecipient, error) {
	var payload struct {
		ServiceRecipients []recipientRefPayload `json:"serviceRecipients"`
	}
	err := c.c.Get(ctx, "/api/v1/orders/"+url.PathEscape(orderID)+"/sections/service-recipients", &payload)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, errors.Wrapf(err, "get service recipients for order %s", orderID)
	}

	out := make([]order.ServiceRecipient, 0, len(payload.ServiceRecipients))
	for _, p := range payload.ServiceRecipients {
		out = append(out, order.ServiceRecipient{Name: p.Name, OdsCode: p.OdsCode})
	}
	return out, nil
}

// CreateOrder starts a new order from its description and returns the
// allocated order ID.
func (c *Client) CreateOrder(ctx context.Context, odsCode, description string) (string, error) {
	body := map[string]string{
		"description":    description,
		"organisationId": odsCode,
	}
	var resp struct {
		OrderID string `json:"orderId"`
	}
	if err := c.c.Send(ctx, http.MethodPost, "/api/v1/orders", body, &resp); err != nil {
		return "", errors.Wrap(err, "create order")
	}
	return resp.OrderID, nil
}

// UpdateDescription replaces the order description section.
func (c *Client) UpdateDescription(ctx context.Context, orderID, description string) error {
	body := map[string]string{"description": description}
	path := "/api/v1/orders/" + url.PathEscape(orderID) + "/sections/description"
	if err := c.c.Send(ctx, http.MethodPut, path, body, nil); err != nil {
		if upstream.IsNotFound(err) {
			return ErrOrderNotFound
		}
		return errors.Wrapf(err, "update description for order %s", orderID)
	}
	return nil
}

// CompleteOrder transitions the order to Complete. After completion the
// order is read-only for summary purposes.
func (c *Client) CompleteOrder(ctx context.Context, orderID string) error {
	body := map[string]string{"status": "complete"}
	path := "/api/v1/orders/" + url.PathEscape(orderID) + "/status"
	if err := c.c.Send(ctx, http.MethodPut, path, body, nil); err != nil {
		if upstream.IsNotFound(err) {
			return ErrOrderNotFound
		}
		return errors.Wrapf(err, "complete order %s", orderID)
	}
	return nil
}

// DeleteOrder removes an incomplete order.
func (c *Client) DeleteOrder(ctx context.Context, orderID string) error {
	if err := c.c.Send(ctx, http.MethodDelete, "/api/v1/orders/"+url.PathEscape(orderID), nil, nil); err != nil {
		if upstream.IsNotFound(err) {
			return ErrOrderNotFound
		}
		return errors.Wrapf(err, "delete order %s", orderID)
	}
	return nil
}
