package board

import (
	"testing"

	"Magnate/services/ledger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPropertiesFullBoard(t *testing.T) {
	properties, err := LoadProperties()
	require.NoError(t, err)
	require.Len(t, properties, 40)

	// Positions are the slot ids, 0 through 39, in order.
	for i, p := range properties {
		assert.Equal(t, i, p.ID)
	}
}

func TestBoardSlotTypes(t *testing.T) {
	properties := MustLoadProperties()

	counts := map[ledger.PropertyType]int{}
	for _, p := range properties {
		counts[p.Type]++
	}
	assert.Equal(t, 22, counts[ledger.TypeStreet])
	assert.Equal(t, 4, counts[ledger.TypeRailroad])
	assert.Equal(t, 2, counts[ledger.TypeUtility])
	assert.Equal(t, 2, counts[ledger.TypeTax])
}

func TestTaxSlotAmounts(t *testing.T) {
	properties := MustLoadProperties()

	income, err := GetByPos(4, properties)
	require.NoError(t, err)
	assert.Equal(t, ledger.TypeTax, income.Type)
	assert.Equal(t, 200, income.TaxAmount)

	super, err := GetByPos(38, properties)
	require.NoError(t, err)
	assert.Equal(t, ledger.TypeTax, super.Type)
	assert.Equal(t, 100, super.TaxAmount)
}

func TestColorGroupSizes(t *testing.T) {
	properties := MustLoadProperties()

	sizes := map[string]int{}
	for _, p := range properties {
		if p.Type == ledger.TypeStreet {
			sizes[p.Group]++
		}
	}

	assert.Equal(t, 2, sizes["brown"])
	assert.Equal(t, 2, sizes["darkBlue"])
	for group, size := range sizes {
		if group == "brown" || group == "darkBlue" {
			continue
		}
		assert.Equal(t, 3, size, "group %s", group)
	}
}

func TestStreetsCarryRentTablesAndHouseCosts(t *testing.T) {
	properties := MustLoadProperties()

	for _, p := range properties {
		if p.Type != ledger.TypeStreet {
			continue
		}
		assert.Len(t, p.Rent, 6, "street %s", p.Name)
		assert.Greater(t, p.HouseCost, 0, "street %s", p.Name)
		assert.Greater(t, p.Price, 0, "street %s", p.Name)
	}
}

func TestGetByPosUnknown(t *testing.T) {
	properties := MustLoadProperties()
	_, err := GetByPos(99, properties)
	assert.Error(t, err)
}

func TestCatalogDefaultsMirrorEffectiveValues(t *testing.T) {
	properties := MustLoadProperties()
	for _, p := range properties {
		assert.Equal(t, p.Price, p.CatalogPrice)
		assert.Equal(t, p.Rent, p.CatalogRent)
	}
}
