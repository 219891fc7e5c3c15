package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var streetRent = []int{10, 50, 150, 450, 625, 750}

func brownPair(owner1, owner2 string) []Property {
	return []Property{
		{ID: 1, Name: "Old Kent Road", Type: TypeStreet, Group: "brown", Price: 60,
			Rent: append([]int(nil), streetRent...), HouseCost: 50, OwnerID: owner1},
		{ID: 3, Name: "Whitechapel Road", Type: TypeStreet, Group: "brown", Price: 60,
			Rent: append([]int(nil), streetRent...), HouseCost: 50, OwnerID: owner2},
	}
}

func TestRentUnownedAndMortgaged(t *testing.T) {
	props := brownPair("", "")
	assert.Equal(t, 0, CalculateRent(props[0], props, 7, RentStandard))

	props = brownPair("p1", "p1")
	props[0].IsMortgaged = true
	assert.Equal(t, 0, CalculateRent(props[0], props, 7, RentStandard))
}

func TestRentBaseWithoutMonopoly(t *testing.T) {
	props := brownPair("p1", "p2")
	assert.Equal(t, 10, CalculateRent(props[0], props, 7, RentStandard))
}

func TestRentMonopolyDoublesBase(t *testing.T) {
	props := brownPair("p1", "p1")
	assert.Equal(t, 20, CalculateRent(props[0], props, 7, RentStandard))
}

func TestRentHousesUseTableRegardlessOfMonopoly(t *testing.T) {
	// Example: owner holds both group members, target has 2 houses.
	props := brownPair("p1", "p1")
	props[0].Houses = 2
	props[1].Houses = 4
	assert.Equal(t, 150, CalculateRent(props[0], props, 7, RentStandard))

	// Same table index even without the monopoly.
	props = brownPair("p1", "p2")
	props[0].Houses = 2
	assert.Equal(t, 150, CalculateRent(props[0], props, 7, RentStandard))
}

func threeStreetGroup(owner string, houses [3]int) []Property {
	props := []Property{
		{ID: 6, Name: "The Angel Islington", Type: TypeStreet, Group: "lightblue", Price: 100,
			Rent: append([]int(nil), streetRent...), HouseCost: 50, OwnerID: owner, Houses: houses[0]},
		{ID: 8, Name: "Euston Road", Type: TypeStreet, Group: "lightblue", Price: 100,
			Rent: []int{6, 30, 90, 270, 400, 550}, HouseCost: 50, OwnerID: owner, Houses: houses[1]},
		{ID: 9, Name: "Pentonville Road", Type: TypeStreet, Group: "lightblue", Price: 120,
			Rent: []int{8, 40, 100, 300, 450, 600}, HouseCost: 50, OwnerID: owner, Houses: houses[2]},
	}
	return props
}

func TestRentGroupTotalMode(t *testing.T) {
	// Levels [0,1,2]: total 3, read from the target's own table.
	props := threeStreetGroup("p1", [3]int{0, 1, 2})
	assert.Equal(t, 450, CalculateRent(props[0], props, 7, RentGroupTotal))

	// Levels [0,5,3]: sum 8 capped at the hotel level.
	props = threeStreetGroup("p1", [3]int{0, 5, 3})
	assert.Equal(t, 750, CalculateRent(props[0], props, 7, RentGroupTotal))

	// Zero houses anywhere falls back to base x2.
	props = threeStreetGroup("p1", [3]int{0, 0, 0})
	assert.Equal(t, 20, CalculateRent(props[0], props, 7, RentGroupTotal))

	// No monopoly: group-total mode behaves like standard.
	props = threeStreetGroup("p1", [3]int{0, 1, 2})
	props[2].OwnerID = "p2"
	assert.Equal(t, 10, CalculateRent(props[0], props, 7, RentGroupTotal))
}

func railroads(owners [4]string) []Property {
	props := make([]Property, 4)
	ids := [4]int{5, 15, 25, 35}
	for i := range props {
		props[i] = Property{ID: ids[i], Type: TypeRailroad, Group: "railroad",
			Price: 200, OwnerID: owners[i]}
	}
	return props
}

func TestRentRailroadProgression(t *testing.T) {
	expected := []int{25, 50, 100, 200}
	owners := [4]string{"", "", "", ""}
	for n := 1; n <= 4; n++ {
		owners[n-1] = "p1"
		props := railroads(owners)
		assert.Equal(t, expected[n-1], CalculateRent(props[0], props, 7, RentStandard),
			"railroad rent with %d owned", n)
	}
}

func TestRentUtilities(t *testing.T) {
	props := []Property{
		{ID: 12, Type: TypeUtility, Group: "utility", Price: 150, OwnerID: "p1"},
		{ID: 28, Type: TypeUtility, Group: "utility", Price: 150},
	}
	assert.Equal(t, 7*4, CalculateRent(props[0], props, 7, RentStandard))

	props[1].OwnerID = "p1"
	assert.Equal(t, 7*10, CalculateRent(props[0], props, 7, RentStandard))
	assert.Equal(t, 12*10, CalculateRent(props[0], props, 12, RentStandard))
}

func TestRentNonRentSlots(t *testing.T) {
	tax := Property{ID: 4, Type: TypeTax, TaxAmount: 200, OwnerID: "p1"}
	assert.Equal(t, 0, CalculateRent(tax, []Property{tax}, 7, RentStandard))
}

func TestSummarizeGroup(t *testing.T) {
	props := threeStreetGroup("p1", [3]int{1, 2, 0})
	group := SummarizeGroup("lightblue", props)
	assert.True(t, group.Complete)
	assert.Equal(t, "p1", group.OwnerID)
	assert.Equal(t, 3, group.Size)
	assert.Equal(t, 3, group.TotalHouses)

	props[1].OwnerID = ""
	group = SummarizeGroup("lightblue", props)
	assert.False(t, group.Complete)

	assert.False(t, SummarizeGroup("nonexistent", props).Complete)
}

func TestCalculateNetWorth(t *testing.T) {
	player := Player{ID: "p1", Balance: 500}
	props := []Property{
		{ID: 1, Type: TypeStreet, Price: 60, HouseCost: 50, OwnerID: "p1", Houses: 2},
		{ID: 3, Type: TypeStreet, Price: 65, OwnerID: "p1", IsMortgaged: true},
		{ID: 6, Type: TypeStreet, Price: 100, OwnerID: "p2"},
	}
	// 500 cash + (60 + 2*50) + floor(65/2)
	assert.Equal(t, 500+160+32, CalculateNetWorth(player, props))
}
