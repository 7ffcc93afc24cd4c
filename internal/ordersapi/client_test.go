package ordersapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/order-form/internal/domain/order"
)

const orderAggregateJSON = `{
	"description": "Order description",
	"status": "Complete",
	"dateCompleted": "2020-12-01",
	"commencementDate": "2020-09-25T00:00:00",
	"orderParty": {"name": "Hampshire CCG", "odsCode": "03V"},
	"supplier": {"name": "Supplier One"},
	"orderItems": [
		{
			"catalogueItemId": "10001-001",
			"catalogueItemName": "Write-ups",
			"catalogueItemType": "AssociatedService",
			"provisioningType": "Declarative",
			"price": 585.00,
			"itemUnitDescription": "per Day",
			"serviceRecipients": [
				{
					"name": "Alpha Practice",
					"odsCode": "A01",
					"itemId": "C010001-01-A01-1",
					"quantity": 70,
					"costPerYear": 40850.00
				}
			]
		},
		{
			"catalogueItemId": "10001-002",
			"catalogueItemName": "Solution One",
			"catalogueItemType": "Solution",
			"provisioningType": "Patient",
			"serviceInstanceId": "SI1-A01",
			"price": 1.26,
			"itemUnitDescription": "per patient",
			"timeUnitDescription": "per year",
			"quantityPeriodDescription": "per month",
			"serviceRecipients": [
				{
					"name": "Alpha Practice",
					"odsCode": "A01",
					"itemId": "C010001-01-A01-2",
					"quantity": 3415,
					"deliveryDate": "2020-09-25",
					"costPerYear": 4302.90
				}
			]
		}
	],
	"totalOneOffCost": 40850.00,
	"totalRecurringCostPerYear": 4302.90,
	"totalRecurringCostPerMonth": 358.58,
	"totalOwnershipCost": 53758.70
}`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL)
	require.NoError(t, err)
	return c
}

func TestGetOrder(t *testing.T) {
	var gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(orderAggregateJSON))
	}))

	o, err := c.GetOrder(context.Background(), "C010001-01")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/orders/C010001-01", gotPath)
	assert.Equal(t, "C010001-01", o.ID)
	assert.Equal(t, order.StatusComplete, o.Status)
	assert.Equal(t, "Hampshire CCG", o.OrderingParty.Name)

	require.NotNil(t, o.DateCompleted)
	assert.Equal(t, "2020-12-01", o.DateCompleted.Format("2006-01-02"))
	require.NotNil(t, o.CommencementDate)
	assert.Equal(t, "2020-09-25", o.CommencementDate.Format("2006-01-02"))

	require.Len(t, o.Items, 2)

	writeUps := o.Items[0]
	assert.Equal(t, order.TypeAssociatedService, writeUps.CatalogueItemType)
	assert.Equal(t, order.ProvisioningDeclarative, writeUps.ProvisioningType)
	assert.Equal(t, "585.00", writeUps.Price.StringFixed(-writeUps.Price.Exponent()))
	require.Len(t, writeUps.Recipients, 1)
	assert.Equal(t, 70, writeUps.Recipients[0].Quantity)
	assert.Equal(t, "40850.00", writeUps.Recipients[0].CostPerYear.StringFixed(2))

	solution := o.Items[1]
	assert.Equal(t, "SI1-A01", solution.ServiceInstanceID)
	require.NotNil(t, solution.Recipients[0].DeliveryDate)

	require.True(t, o.Totals.Ownership.Valid)
	assert.Equal(t, "53758.70", o.Totals.Ownership.Decimal.StringFixed(2))
}

func TestGetOrder_AbsentTotalsStayNull(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"description": "d", "status": "Incomplete", "orderItems": []}`))
	}))

	o, err := c.GetOrder(context.Background(), "C010001-01")
	require.NoError(t, err)

	assert.False(t, o.Totals.OneOff.Valid)
	assert.False(t, o.Totals.RecurringPerYear.Valid)
	assert.Nil(t, o.DateCompleted)
	assert.Empty(t, o.Items)
}

func TestGetOrder_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.GetOrder(context.Background(), "C099999-01")
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestGetOrder_BadDate(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"status": "Incomplete", "dateCompleted": "December 1st"}`))
	}))

	_, err := c.GetOrder(context.Background(), "C010001-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dateCompleted")
}

func TestGetOrderItems(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Solution", r.URL.Query().Get("catalogueItemType"))
		_, _ = w.Write([]byte(`[
			{"itemId": "C010001-01-A01-1", "catalogueItemName": "Solution One", "serviceRecipientsOdsCode": "A01", "deliveryDate": "2020-09-25"},
			{"itemId": "C010001-01-B01-1", "catalogueItemName": "Solution One", "serviceRecipientsOdsCode": "B01"}
		]`))
	}))

	items, err := c.GetOrderItems(context.Background(), "C010001-01", order.TypeSolution)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "A01", items[0].RecipientCode)
	require.NotNil(t, items[0].DeliveryDate)
	assert.Nil(t, items[1].DeliveryDate)
}

func TestGetServiceRecipients(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/orders/C010001-01/sections/service-recipients", r.URL.Path)
		_, _ = w.Write([]byte(`{"serviceRecipients": [{"name": "Alpha Practice", "odsCode": "A01"}]}`))
	}))

	rs, err := c.GetServiceRecipients(context.Background(), "C010001-01")
	require.NoError(t, err)
	require.Len(t, rs, 1)
	assert.Equal(t, order.ServiceRecipient{Name: "Alpha Practice", OdsCode: "A01"}, rs[0])
}

func TestCreateOrder(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte(`{"orderId": "C010001-01"}`))
	}))

	id, err := c.CreateOrder(context.Background(), "03V", "New order")
	require.NoError(t, err)
	assert.Equal(t, "C010001-01", id)
}

func TestCompleteOrder(t *testing.T) {
	var gotMethod, gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.CompleteOrder(context.Background(), "C010001-01"))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/api/v1/orders/C010001-01/status", gotPath)
}

func TestUpdateDescription_NotFound(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	err := c.UpdateDescription(context.Background(), "C099999-01", "text")
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListOrders(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/organisations/03V/orders", r.URL.Path)
		_, _ = w.Write([]byte(`{"orders": [
			{"orderId": "C010001-01", "description": "First", "status": "Incomplete", "lastUpdated": "2020-10-01", "lastUpdatedBy": "Bob Smith"}
		]}`))
	}))

	orders, err := c.ListOrders(context.Background(), "03V")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "C010001-01", orders[0].ID)
	assert.Equal(t, order.StatusIncomplete, orders[0].Status)
	require.NotNil(t, orders[0].LastUpdated)
}
