package ledger

import (
	game_constants "Magnate/constants/game"
)

// GroupOwnership summarizes who holds a color group. Every monopoly check in
// the codebase (rent doubling, build eligibility, group-total rent) goes
// through this one query so the semantics cannot drift apart.
type GroupOwnership struct {
	Group       string
	Size        int
	OwnerID     string // meaningful only when Complete
	Complete    bool   // one player owns every property in the group
	TotalHouses int    // summed improvement levels across the group
}

// SummarizeGroup inspects all properties sharing the given group name.
func SummarizeGroup(group string, all []Property) GroupOwnership {
	summary := GroupOwnership{Group: group, Complete: true}
	for _, p := range all {
		if p.Group != group {
			continue
		}
		summary.Size++
		summary.TotalHouses += p.Houses
		if summary.Size == 1 {
			summary.OwnerID = p.OwnerID
		}
		if p.OwnerID == "" || p.OwnerID != summary.OwnerID {
			summary.Complete = false
		}
	}
	if summary.Size == 0 || !summary.Complete {
		summary.Complete = false
	}
	return summary
}

func countOwnedOfType(ownerID string, t PropertyType, all []Property) int {
	count := 0
	for _, p := range all {
		if p.OwnerID == ownerID && p.Type == t {
			count++
		}
	}
	return count
}

func rentAt(p Property, level int) int {
	if level < 0 || level >= len(p.Rent) {
		return 0
	}
	return p.Rent[level]
}

// CalculateRent computes the rent owed for landing on target. Pure and
// deterministic: unowned or mortgaged properties earn nothing, monopolies
// double unimproved street rent, railroads and utilities use count-based
// formulas. diceTotal only matters for utilities.
func CalculateRent(target Property, all []Property, diceTotal int, mode RentMode) int {
	if target.OwnerID == "" || target.IsMortgaged {
		return 0
	}

	switch target.Type {
	case TypeStreet:
		group := SummarizeGroup(target.Group, all)
		hasMonopoly := group.Complete && group.OwnerID == target.OwnerID

		if mode == RentGroupTotal && hasMonopoly {
			total := group.TotalHouses
			if total > game_constants.MaxImprovementLevel {
				total = game_constants.MaxImprovementLevel
			}
			if total > 0 {
				return rentAt(target, total)
			}
			return rentAt(target, 0) * 2
		}

		if target.Houses > 0 {
			return rentAt(target, target.Houses)
		}
		base := rentAt(target, 0)
		if hasMonopoly {
			return base * 2
		}
		return base

	case TypeRailroad:
		owned := countOwnedOfType(target.OwnerID, TypeRailroad, all)
		rent := game_constants.RailroadBaseRent
		for i := 1; i < owned; i++ {
			rent *= 2
		}
		return rent

	case TypeUtility:
		owned := countOwnedOfType(target.OwnerID, TypeUtility, all)
		if owned >= 2 {
			return diceTotal * game_constants.UtilityMultiplierBoth
		}
		return diceTotal * game_constants.UtilityMultiplierSingle

	default:
		// Tax, card and corner slots have no rent concept.
		return 0
	}
}

// CalculateNetWorth values a player as cash plus holdings. Mortgaged
// properties count at half price (integer floor, matching the mortgage
// cash-out rule); unmortgaged ones at full price plus built houses.
func CalculateNetWorth(player Player, properties []Property) int {
	netWorth := player.Balance
	for _, p := range properties {
		if p.OwnerID != player.ID {
			continue
		}
		if p.IsMortgaged {
			netWorth += p.Price / 2
		} else {
			netWorth += p.Price + p.Houses*p.HouseCost
		}
	}
	return netWorth
}
