package summary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/order-form/internal/domain/order"
)

func recipient(name, code string) order.ServiceRecipient {
	return order.ServiceRecipient{Name: name, OdsCode: code}
}

func dashItem(name, code string) order.DashboardItem {
	return order.DashboardItem{CatalogueItemName: name, RecipientCode: code}
}

func TestSortRecipientsByName(t *testing.T) {
	t.Run("case-insensitive ascending", func(t *testing.T) {
		in := []order.ServiceRecipient{
			recipient("beta practice", "B01"),
			recipient("Alpha Practice", "A01"),
			recipient("gamma practice", "C01"),
		}

		got := SortRecipientsByName(in)

		require.Len(t, got, 3)
		assert.Equal(t, "Alpha Practice", got[0].Name)
		assert.Equal(t, "beta practice", got[1].Name)
		assert.Equal(t, "gamma practice", got[2].Name)

		// Input untouched.
		assert.Equal(t, "beta practice", in[0].Name)
	})

	t.Run("idempotent", func(t *testing.T) {
		in := []order.ServiceRecipient{
			recipient("Alpha", "A01"),
			recipient("Beta", "B01"),
		}
		once := SortRecipientsByName(in)
		twice := SortRecipientsByName(once)
		assert.Equal(t, once, twice)
	})

	t.Run("stable on equal names", func(t *testing.T) {
		in := []order.ServiceRecipient{
			recipient("Same", "S02"),
			recipient("same", "S01"),
		}
		got := SortRecipientsByName(in)
		assert.Equal(t, "S02", got[0].OdsCode)
		assert.Equal(t, "S01", got[1].OdsCode)
	})

	t.Run("single and two element inputs", func(t *testing.T) {
		one := SortRecipientsByName([]order.ServiceRecipient{recipient("Only", "O01")})
		require.Len(t, one, 1)

		two := SortRecipientsByName([]order.ServiceRecipient{
			recipient("b", "B01"),
			recipient("A", "A01"),
		})
		assert.Equal(t, "A", two[0].Name)
		assert.Equal(t, "b", two[1].Name)
	})
}

func TestGroupItemsByRecipientCode(t *testing.T) {
	items := []order.DashboardItem{
		dashItem("Solution One", "A01"),
		dashItem("Solution Two", "B01"),
		dashItem("Extra Reports", "A01"),
	}

	grouped := GroupItemsByRecipientCode(items)

	require.Len(t, grouped, 2)
	require.Len(t, grouped["A01"], 2)

	// Insertion order preserved within a bucket.
	assert.Equal(t, "Solution One", grouped["A01"][0].CatalogueItemName)
	assert.Equal(t, "Extra Reports", grouped["A01"][1].CatalogueItemName)
}

func TestSortItemsByRecipient(t *testing.T) {
	recipients := []order.ServiceRecipient{
		recipient("Alpha", "A01"),
		recipient("Beta", "B01"),
		recipient("Gamma", "C01"),
	}

	t.Run("walks recipient order, items sorted by name", func(t *testing.T) {
		grouped := GroupItemsByRecipientCode([]order.DashboardItem{
			dashItem("zeta module", "B01"),
			dashItem("Solution One", "A01"),
			dashItem("alpha module", "B01"),
		})

		got, err := SortItemsByRecipient(recipients, grouped, DropUnknownRecipients)
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, "Solution One", got[0].CatalogueItemName)
		assert.Equal(t, "alpha module", got[1].CatalogueItemName)
		assert.Equal(t, "zeta module", got[2].CatalogueItemName)
	})

	t.Run("recipients without items are skipped", func(t *testing.T) {
		grouped := GroupItemsByRecipientCode([]order.DashboardItem{
			dashItem("Solution One", "C01"),
		})

		got, err := SortItemsByRecipient(recipients, grouped, DropUnknownRecipients)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "C01", got[0].RecipientCode)
	})

	t.Run("unknown code dropped under drop policy", func(t *testing.T) {
		grouped := GroupItemsByRecipientCode([]order.DashboardItem{
			dashItem("Solution One", "A01"),
			dashItem("Orphan", "Z99"),
		})

		got, err := SortItemsByRecipient(recipients, grouped, DropUnknownRecipients)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Solution One", got[0].CatalogueItemName)
	})

	t.Run("unknown code rejected under reject policy", func(t *testing.T) {
		grouped := GroupItemsByRecipientCode([]order.DashboardItem{
			dashItem("Orphan", "Z99"),
		})

		_, err := SortItemsByRecipient(recipients, grouped, RejectUnknownRecipients)
		var unknownErr *UnknownRecipientError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "Z99", unknownErr.OdsCode)
	})

	t.Run("empty grouped map yields empty output", func(t *testing.T) {
		got, err := SortItemsByRecipient(recipients, map[string][]order.DashboardItem{}, RejectUnknownRecipients)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
