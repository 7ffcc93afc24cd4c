package summary

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/order-form/internal/domain/order"
	"github.com/xenking/order-form/pkg/format"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func testBuilder() Builder {
	return NewBuilder(format.Default)
}

func oneOffItem() order.Item {
	return order.Item{
		CatalogueItemName:   "Write-ups",
		CatalogueItemType:   order.TypeAssociatedService,
		ProvisioningType:    order.ProvisioningDeclarative,
		Price:               decimal.RequireFromString("585.00"),
		ItemUnitDescription: "per Day",
		Recipients: []order.ItemRecipient{
			{
				Name:        "Alpha Practice",
				OdsCode:     "A01",
				ItemID:      "C010001-01-A01-1",
				Quantity:    70,
				CostPerYear: decimal.RequireFromString("40850"),
			},
		},
	}
}

func recurringItem() order.Item {
	return order.Item{
		CatalogueItemName:         "Solution One",
		CatalogueItemType:         order.TypeSolution,
		ProvisioningType:          order.ProvisioningPatient,
		ServiceInstanceID:         "SI1-A01",
		Price:                     decimal.RequireFromString("1.26"),
		ItemUnitDescription:       "per patient",
		TimeUnitDescription:       "per year",
		QuantityPeriodDescription: "per month",
		Recipients: []order.ItemRecipient{
			{
				Name:         "Alpha Practice",
				OdsCode:      "A01",
				ItemID:       "C010001-01-A01-2",
				Quantity:     3415,
				DeliveryDate: date(2020, time.September, 25),
				CostPerYear:  decimal.RequireFromString("4302.9"),
			},
		},
	}
}

func TestExpandOneOffRows(t *testing.T) {
	rows, err := testBuilder().ExpandOneOffRows([]order.Item{oneOffItem()})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Alpha Practice (A01)", row.Recipient)
	assert.Equal(t, "C010001-01-A01-1", row.ItemID)
	assert.Equal(t, "Write-ups", row.CatalogueItemName)
	assert.Equal(t, "585.00 per Day", row.PriceUnit)
	assert.Equal(t, "70", row.Quantity)
	assert.Equal(t, "40,850.00", row.Cost)
}

func TestExpandRecurringRows(t *testing.T) {
	rows, err := testBuilder().ExpandRecurringRows([]order.Item{recurringItem()})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Alpha Practice (A01)", row.Recipient)
	assert.Equal(t, "C010001-01-A01-2", row.ItemID)
	assert.Equal(t, "Solution One", row.CatalogueItemName)
	assert.Equal(t, "SI1-A01", row.ServiceInstanceID)
	assert.Equal(t, "1.26 per patient per year", row.PriceUnit)
	assert.Equal(t, "3,415 per month", row.Quantity)
	assert.Equal(t, "25 September 2020", row.DeliveryDate)
	assert.Equal(t, "4,302.90", row.Cost)
}

func TestExpand_FanOutPerRecipient(t *testing.T) {
	item := recurringItem()
	item.Recipients = append(item.Recipients, order.ItemRecipient{
		Name:        "Beta Practice",
		OdsCode:     "B01",
		ItemID:      "C010001-01-B01-2",
		Quantity:    100,
		CostPerYear: decimal.RequireFromString("126"),
	})

	rows, err := testBuilder().ExpandRecurringRows([]order.Item{item})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Rows follow the item's recipient order without re-sorting.
	assert.Equal(t, "Alpha Practice (A01)", rows[0].Recipient)
	assert.Equal(t, "Beta Practice (B01)", rows[1].Recipient)
	// Delivery date absent on the second recipient renders empty.
	assert.Equal(t, "", rows[1].DeliveryDate)
}

func TestExpand_RoundTripPairing(t *testing.T) {
	itemA := recurringItem()
	itemB := recurringItem()
	itemB.CatalogueItemName = "Solution Two"
	itemB.Recipients = []order.ItemRecipient{
		{Name: "Beta Practice", OdsCode: "B01", ItemID: "X-1", Quantity: 1},
		{Name: "Gamma Practice", OdsCode: "C01", ItemID: "X-2", Quantity: 2},
	}

	input := []order.Item{itemA, itemB}
	rows, err := testBuilder().ExpandRecurringRows(input)
	require.NoError(t, err)

	// Re-grouping expanded rows by recipient code recovers the original
	// (item, recipient) pairing set exactly.
	want := map[string]bool{}
	for _, item := range input {
		for _, r := range item.Recipients {
			want[item.CatalogueItemName+"|"+r.OdsCode] = true
		}
	}

	got := map[string]bool{}
	for _, row := range rows {
		code := row.Recipient[strings.Index(row.Recipient, "(")+1 : len(row.Recipient)-1]
		got[row.CatalogueItemName+"|"+code] = true
	}
	assert.Equal(t, want, got)
}

func TestExpand_MissingRecipientsFatal(t *testing.T) {
	b := testBuilder()

	t.Run("one-off empty recipients", func(t *testing.T) {
		item := oneOffItem()
		item.Recipients = nil

		_, err := b.ExpandOneOffRows([]order.Item{item})
		var mrErr *order.MissingRecipientsError
		require.ErrorAs(t, err, &mrErr)
		assert.Equal(t, "Write-ups", mrErr.CatalogueItemName)
	})

	t.Run("recurring empty recipients", func(t *testing.T) {
		item := recurringItem()
		item.Recipients = []order.ItemRecipient{}

		_, err := b.ExpandRecurringRows([]order.Item{item})
		var mrErr *order.MissingRecipientsError
		require.ErrorAs(t, err, &mrErr)
	})
}

func TestPriceUnit_OnDemandOmitsTimeUnit(t *testing.T) {
	item := recurringItem()
	item.ProvisioningType = order.ProvisioningOnDemand

	rows, err := testBuilder().ExpandRecurringRows([]order.Item{item})
	require.NoError(t, err)
	assert.Equal(t, "1.26 per patient", rows[0].PriceUnit)
}

func TestPriceUnit_AbsentTimeUnitNoTrailingSpace(t *testing.T) {
	item := recurringItem()
	item.TimeUnitDescription = ""

	rows, err := testBuilder().ExpandRecurringRows([]order.Item{item})
	require.NoError(t, err)
	assert.Equal(t, "1.26 per patient", rows[0].PriceUnit)
	assert.False(t, strings.HasSuffix(rows[0].PriceUnit, " "))
}

func TestQuantity_AbsentPeriodOmitted(t *testing.T) {
	item := recurringItem()
	item.QuantityPeriodDescription = ""

	rows, err := testBuilder().ExpandRecurringRows([]order.Item{item})
	require.NoError(t, err)
	assert.Equal(t, "3,415", rows[0].Quantity)
}
