package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(name string, ct CatalogueItemType, pt ProvisioningType) Item {
	return Item{
		CatalogueItemName: name,
		CatalogueItemType: ct,
		ProvisioningType:  pt,
	}
}

func TestCostTypeOf(t *testing.T) {
	tests := []struct {
		name string
		ct   CatalogueItemType
		pt   ProvisioningType
		want CostType
	}{
		{"declarative associated service", TypeAssociatedService, ProvisioningDeclarative, CostOneOff},
		{"on-demand associated service", TypeAssociatedService, ProvisioningOnDemand, CostRecurring},
		{"patient associated service", TypeAssociatedService, ProvisioningPatient, CostRecurring},
		{"declarative solution", TypeSolution, ProvisioningDeclarative, CostRecurring},
		{"on-demand solution", TypeSolution, ProvisioningOnDemand, CostRecurring},
		{"declarative additional service", TypeAdditionalService, ProvisioningDeclarative, CostRecurring},
		{"case-insensitive match", "associatedservice", "DECLARATIVE", CostOneOff},
		{"mixed case match", "AssociatedSERVICE", "declarative", CostOneOff},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CostTypeOf(tt.ct, tt.pt))
		})
	}
}

func TestClassify_Partition(t *testing.T) {
	items := []Item{
		item("Write-ups", TypeAssociatedService, ProvisioningDeclarative),
		item("Solution One", TypeSolution, ProvisioningPatient),
		item("Training", TypeAssociatedService, ProvisioningOnDemand),
		item("Migration", TypeAssociatedService, ProvisioningDeclarative),
		item("Extra Reports", TypeAdditionalService, ProvisioningOnDemand),
	}

	oneOff, recurring := Classify(items)

	// Every input item lands in exactly one bucket.
	require.Len(t, oneOff, 2)
	require.Len(t, recurring, 3)

	// Relative input order is preserved within each bucket.
	assert.Equal(t, "Write-ups", oneOff[0].CatalogueItemName)
	assert.Equal(t, "Migration", oneOff[1].CatalogueItemName)
	assert.Equal(t, "Solution One", recurring[0].CatalogueItemName)
	assert.Equal(t, "Training", recurring[1].CatalogueItemName)
	assert.Equal(t, "Extra Reports", recurring[2].CatalogueItemName)
}

func TestClassify_Empty(t *testing.T) {
	oneOff, recurring := Classify(nil)
	assert.Empty(t, oneOff)
	assert.Empty(t, recurring)

	oneOff, recurring = Classify([]Item{})
	assert.Empty(t, oneOff)
	assert.Empty(t, recurring)
}

func TestMissingRecipientsError(t *testing.T) {
	err := &MissingRecipientsError{CatalogueItemName: "Solution One"}
	assert.Equal(t, `order item "Solution One" has no service recipients`, err.Error())
}
