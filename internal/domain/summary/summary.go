package summary

import (
	"github.com/xenking/order-form/internal/domain/order"
	"github.com/xenking/order-form/pkg/format"
)

// Column describes one static column header of a cost table.
type Column struct {
	Title string
}

// Table is a renderable cost table: static column info, computed rows in
// column order, and footer label/value pairs carrying totals.
type Table struct {
	Columns []Column
	Rows    [][]string
	Footer  [][2]string
}

// Totals carries the four order-level cost aggregates, each formatted as a
// fixed two-decimal currency string. Absent upstream values render "0.00".
type Totals struct {
	OneOff            string
	RecurringPerYear  string
	RecurringPerMonth string
	Ownership         string
}

// Summary is the complete view model of the order summary page.
type Summary struct {
	OrderID          string
	Description      string
	Status           order.Status
	DateCompleted    string
	CommencementDate string
	OrderingParty    string
	Supplier         string
	OneOff           Table
	Recurring        Table
	Totals           Totals
}

var oneOffColumns = []Column{
	{Title: "Recipient name (ODS code)"},
	{Title: "Item ID"},
	{Title: "Item name"},
	{Title: "Price unit of order"},
	{Title: "Quantity"},
	{Title: "Item cost (£)"},
}

var recurringColumns = []Column{
	{Title: "Recipient name (ODS code)"},
	{Title: "Item ID"},
	{Title: "Item name"},
	{Title: "Service instance ID"},
	{Title: "Price unit of order"},
	{Title: "Quantity/period"},
	{Title: "Planned delivery date"},
	{Title: "Item cost per year (£)"},
}

// BuildTotals formats the aggregate totals provided by the Orders API. The
// values are display-only and not cross-checked against the expanded rows.
func (b Builder) BuildTotals(t order.Totals) Totals {
	return Totals{
		OneOff:            b.fmt.CurrencyOrZero(t.OneOff),
		RecurringPerYear:  b.fmt.CurrencyOrZero(t.RecurringPerYear),
		RecurringPerMonth: b.fmt.CurrencyOrZero(t.RecurringPerMonth),
		Ownership:         b.fmt.CurrencyOrZero(t.Ownership),
	}
}

// Build classifies the order's items, expands both cost tables, and
// formats the header fields and totals. It fails when any order item has
// no service recipients.
func (b Builder) Build(o *order.Order) (*Summary, error) {
	oneOffItems, recurringItems := order.Classify(o.Items)

	oneOffRows, err := b.ExpandOneOffRows(oneOffItems)
	if err != nil {
		return nil, err
	}
	recurringRows, err := b.ExpandRecurringRows(recurringItems)
	if err != nil {
		return nil, err
	}

	totals := b.BuildTotals(o.Totals)

	s := &Summary{
		OrderID:          o.ID,
		Description:      o.Description,
		Status:           o.Status,
		DateCompleted:    format.DateOrEmpty(o.DateCompleted),
		CommencementDate: format.DateOrEmpty(o.CommencementDate),
		OrderingParty:    o.OrderingParty.Name,
		Supplier:         o.Supplier.Name,
		Totals:           totals,
	}

	s.OneOff = Table{
		Columns: oneOffColumns,
		Rows:    oneOffCells(oneOffRows),
		Footer: [][2]string{
			{"Total one-off cost:", totals.OneOff},
		},
	}
	s.Recurring = Table{
		Columns: recurringColumns,
		Rows:    recurringCells(recurringRows),
		Footer: [][2]string{
			{"Total cost for one year:", totals.RecurringPerYear},
			{"Total monthly cost:", totals.RecurringPerMonth},
		},
	}

	return s, nil
}

func oneOffCells(rows []OneOffRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.Recipient, r.ItemID, r.CatalogueItemName, r.PriceUnit, r.Quantity, r.Cost}
	}
	return out
}

func recurringCells(rows []RecurringRow) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			r.Recipient, r.ItemID, r.CatalogueItemName, r.ServiceInstanceID,
			r.PriceUnit, r.Quantity, r.DeliveryDate, r.Cost,
		}
	}
	return out
}
