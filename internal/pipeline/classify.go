package pipeline

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"itemdeck/internal"
	"itemdeck/internal/util"
)

// TierThreshold maps a minimum cost to a tier for items that carry no other tier signal.
type TierThreshold struct {
	MinCost int
	Tier    int
}

// DefaultTierThresholds must stay sorted by MinCost, highest first.
var DefaultTierThresholds = []TierThreshold{
	{MinCost: 10000, Tier: 5},
	{MinCost: 6000, Tier: 4},
	{MinCost: 3000, Tier: 3},
	{MinCost: 1250, Tier: 2},
}

const baseTier = 1

var reTierCode = regexp.MustCompile(`t([1-5])_|tier([1-5])`)

var costPropertyNames = []string{"ItemCost", "Cost", "AbilityCost"}

func DetermineType(item internal.RawItem) internal.ItemCategory {
	slot := strings.ToLower(item.ItemSlotType)
	switch {
	case strings.Contains(slot, "armor"), strings.Contains(slot, "vitality"):
		return internal.CategoryVitality
	case strings.Contains(slot, "tech"), strings.Contains(slot, "spirit"):
		return internal.CategorySpirit
	case strings.Contains(slot, "weapon"):
		return internal.CategoryWeapon
	default:
		return internal.CategoryWeapon
	}
}

// DetermineTier prefers the explicit item_tier, then a tier code in the class name, then the cost bucket.
func DetermineTier(item internal.RawItem, thresholds []TierThreshold) int {
	if tier, ok := explicitTier(item.ItemTier); ok {
		return tier
	}
	if tier, ok := tierFromClassName(item.ClassName); ok {
		return tier
	}
	return tierFromCost(ExtractCost(item), thresholds)
}

func explicitTier(v internal.FlexValue) (int, bool) {
	f, ok := v.Float()
	if !ok || f <= 0 {
		return 0, false
	}
	return int(f), true
}

func tierFromClassName(className string) (int, bool) {
	m := reTierCode.FindStringSubmatch(strings.ToLower(className))
	if m == nil {
		return 0, false
	}
	digit := m[1]
	if digit == "" {
		digit = m[2]
	}
	tier, err := strconv.Atoi(digit)
	if err != nil {
		return 0, false
	}
	return tier, true
}

func tierFromCost(cost int, thresholds []TierThreshold) int {
	if len(thresholds) == 0 {
		thresholds = DefaultTierThresholds
	}
	for _, th := range thresholds {
		if cost >= th.MinCost {
			return th.Tier
		}
	}
	return baseTier
}

// ExtractCost reads the cost field, then the known cost properties. Anything non-numeric counts as absent.
func ExtractCost(item internal.RawItem) int {
	if cost, ok := numericCost(item.Cost); ok {
		return cost
	}
	for _, name := range costPropertyNames {
		prop, ok := item.Properties[name]
		if !ok {
			continue
		}
		if cost, ok := numericCost(prop.Value); ok {
			return cost
		}
	}
	return 0
}

func numericCost(v internal.FlexValue) (int, bool) {
	if !v.IsSet() {
		return 0, false
	}
	f, ok := util.ParseNumber(v.String())
	if !ok {
		return 0, false
	}
	return int(math.Round(f)), true
}
