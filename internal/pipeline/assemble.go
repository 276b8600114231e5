package pipeline

import (
	"regexp"
	"strings"

	"itemdeck/internal"
	"itemdeck/internal/catalog"
	"itemdeck/internal/util"
)

const cooldownProperty = "AbilityCooldown"

var (
	reImbue           = regexp.MustCompile(`(?i)imbue`)
	activeActivations = map[string]struct{}{
		"instant_cast": {},
		"pressed":      {},
		"press":        {},
		"toggle":       {},
		"channeled":    {},
	}
)

type Options struct {
	TierThresholds []TierThreshold
}

func DefaultOptions() Options {
	return Options{TierThresholds: DefaultTierThresholds}
}

// IsShopEligible reports whether an item can be bought: shopable, not disabled and with shop art.
func IsShopEligible(item internal.RawItem) bool {
	if !bool(item.Shopable) || bool(item.Disabled) {
		return false
	}
	return util.FirstNonEmpty(item.ShopImage, item.ShopImageWebp, item.ShopImageSmall, item.ShopImageSmallWebp) != ""
}

func FilterShopItems(items []internal.RawItem) []internal.RawItem {
	out := make([]internal.RawItem, 0, len(items))
	for _, item := range items {
		if IsShopEligible(item) {
			out = append(out, item)
		}
	}
	return out
}

// Run filters the full item list down to shop items and processes them.
func Run(all []internal.RawItem, opts Options) []internal.ProcessedItem {
	return ProcessItems(FilterShopItems(all), all, opts)
}

// ProcessItems builds one ProcessedItem per shop item, in input order. Component references are
// resolved against allItems, which may include items that are not sold in the shop.
func ProcessItems(shopItems, allItems []internal.RawItem, opts Options) []internal.ProcessedItem {
	index := catalog.BuildIndex(allItems)
	out := make([]internal.ProcessedItem, 0, len(shopItems))
	for _, raw := range shopItems {
		out = append(out, processItem(raw, index, opts))
	}
	LinkUpgrades(out)
	return out
}

func processItem(raw internal.RawItem, index *catalog.Index, opts Options) internal.ProcessedItem {
	desc := ExtractDescriptions(raw)
	activeBlocks, passiveBlocks := ExtractContentBlocks(raw.Properties, raw.TooltipSections, raw.Upgrades)

	item := internal.ProcessedItem{
		ID:                 raw.ID,
		ClassName:          raw.ClassName,
		Name:               displayName(raw),
		Image:              bestImage(raw),
		Category:           DetermineType(raw),
		Tier:               DetermineTier(raw, opts.TierThresholds),
		Cost:               ExtractCost(raw),
		Stats:              ExtractAllStats(raw.Properties, raw.TooltipSections, raw.Upgrades),
		PassiveDescription: desc.Passive,
		ActiveDescription:  desc.Active,
		ActiveBlocks:       activeBlocks,
		PassiveBlocks:      passiveBlocks,
		IsActive:           isActiveItem(raw),
		IsImbue:            isImbueItem(raw, desc),
		ComponentItems:     resolveComponents(raw.ComponentItems, index),
		UpgradesTo:         []internal.ComponentItem{},
	}
	if item.IsActive {
		item.Cooldown = extractCooldown(raw)
	}
	item.HasPassiveSection = hasPassiveSection(raw, item)
	return item
}

// LinkUpgrades fills UpgradesTo from every item's ComponentItems. Components that are not in items
// are left alone.
func LinkUpgrades(items []internal.ProcessedItem) {
	byClass := make(map[string]int, len(items))
	for i := range items {
		if _, dup := byClass[items[i].ClassName]; !dup {
			byClass[items[i].ClassName] = i
		}
	}

	for i := range items {
		parent := internal.ComponentItem{ID: items[i].ID, ClassName: items[i].ClassName, Name: items[i].Name}
		for _, comp := range items[i].ComponentItems {
			idx, ok := byClass[comp.ClassName]
			if !ok || containsComponent(items[idx].UpgradesTo, parent.ClassName) {
				continue
			}
			items[idx].UpgradesTo = append(items[idx].UpgradesTo, parent)
		}
	}
}

func displayName(raw internal.RawItem) string {
	if name := strings.TrimSpace(raw.Name); name != "" {
		return name
	}
	return util.DisplayNameFromClass(raw.ClassName)
}

func bestImage(raw internal.RawItem) string {
	return util.FirstNonEmpty(raw.ShopImageWebp, raw.ShopImage, raw.ShopImageSmallWebp, raw.ShopImageSmall, raw.ImageWebp, raw.Image)
}

func isActiveItem(raw internal.RawItem) bool {
	if bool(raw.IsActiveItem) {
		return true
	}
	_, ok := activeActivations[strings.ToLower(strings.TrimSpace(raw.Activation))]
	return ok
}

func isImbueItem(raw internal.RawItem, desc Descriptions) bool {
	return bool(raw.Imbue) || reImbue.MatchString(desc.Passive) || reImbue.MatchString(desc.Active)
}

// resolveComponents keeps unresolved references as placeholders named after the class name.
func resolveComponents(classNames []string, index *catalog.Index) []internal.ComponentItem {
	out := make([]internal.ComponentItem, 0, len(classNames))
	for _, className := range classNames {
		className = strings.TrimSpace(className)
		if className == "" {
			continue
		}
		ref, ok := index.ByClassName[className]
		if !ok {
			out = append(out, internal.ComponentItem{ClassName: className, Name: util.DisplayNameFromClass(className)})
			continue
		}
		out = append(out, internal.ComponentItem{ID: ref.ID, ClassName: className, Name: displayName(ref)})
	}
	return out
}

func extractCooldown(raw internal.RawItem) string {
	prop, ok := raw.Properties[cooldownProperty]
	if !ok {
		return ""
	}
	value := strings.TrimSpace(prop.Value.String())
	if isEmptyValue(value) {
		return ""
	}
	postfix := prop.Postfix
	if postfix == "" {
		postfix = "s"
	}
	return formatStatValue(value, prop.Prefix, postfix)
}

// hasPassiveSection is true for innate sections and passive descriptions. Passive stats alone only
// count when the item also has an active side, otherwise the passive part is the whole card.
func hasPassiveSection(raw internal.RawItem, item internal.ProcessedItem) bool {
	hasActiveSection := false
	for _, s := range raw.TooltipSections {
		if isInnate(s.SectionType) {
			return true
		}
		if ClassifySection(s.SectionType).Bucket == BucketActive {
			hasActiveSection = true
		}
	}
	if item.PassiveDescription != "" {
		return true
	}
	hasPassiveStats := false
	for _, st := range item.Stats {
		if st.Section == internal.SectionPassive {
			hasPassiveStats = true
			break
		}
	}
	return hasPassiveStats && (hasActiveSection || item.ActiveDescription != "")
}

func containsComponent(list []internal.ComponentItem, className string) bool {
	for _, c := range list {
		if c.ClassName == className {
			return true
		}
	}
	return false
}
