package pipeline

import (
	"strings"

	"itemdeck/internal"
)

// BuildUpgradeBonuses flattens every property upgrade; later upgrades win for the same property.
func BuildUpgradeBonuses(upgrades []internal.RawItemUpgrade) UpgradeBonuses {
	out := UpgradeBonuses{}
	for _, upgrade := range upgrades {
		for _, pu := range upgrade.PropertyUpgrades {
			name := strings.TrimSpace(pu.Name)
			if name == "" || !pu.Bonus.IsSet() {
				continue
			}
			out[name] = pu.Bonus.String()
		}
	}
	return out
}

// ExtractAllStats walks every section and attribute and returns the stats in declaration order.
func ExtractAllStats(props internal.Properties, sections []internal.RawTooltipSection, upgrades []internal.RawItemUpgrade) []internal.StatInfo {
	bonuses := BuildUpgradeBonuses(upgrades)
	out := make([]internal.StatInfo, 0)
	for _, section := range sections {
		for _, attr := range section.SectionAttributes {
			out = append(out, extractAttributeStats(props, section.SectionType, attr, bonuses)...)
		}
	}
	return out
}

// extractAttributeStats reads the elevated, important and regular property lists of one attribute.
// Only the important list marks its stats as important.
func extractAttributeStats(props internal.Properties, sectionType string, attr internal.RawSectionAttribute, bonuses UpgradeBonuses) []internal.StatInfo {
	conditional := sectionType == sectionConditional
	roles := []struct {
		names     []string
		important bool
	}{
		{names: attr.ElevatedProperties},
		{names: attr.ImportantProperties, important: true},
		{names: attr.Properties},
	}

	var out []internal.StatInfo
	for _, role := range roles {
		for _, name := range role.names {
			stat, ok := ExtractStat(name, lookupProperty(props, name), sectionType, bonuses, conditional, role.important)
			if ok {
				out = append(out, stat)
			}
		}
	}
	return out
}

func lookupProperty(props internal.Properties, name string) *internal.RawItemProperty {
	prop, ok := props[name]
	if !ok {
		return nil
	}
	return &prop
}
