package pipeline

import (
	"strings"

	"itemdeck/internal"
	"itemdeck/internal/util"
)

const (
	signPlaceholder       = "{s:sign}"
	flagConditionallyUsed = "ConditionallyApplied"
	debuffCSSClass        = "slow"
)

// scalingStatNames maps upstream scale types to the stat name players see.
var scalingStatNames = map[string]string{
	"ETechPower":              "Spirit",
	"ETechDuration":           "Spirit",
	"ETechRange":              "Spirit",
	"EBulletDamage":           "Weapon Damage",
	"EWeaponPower":            "Weapon Damage",
	"EMeleeDamage":            "Melee Damage",
	"EMaxHealth":              "Health",
	"EBaseHealth":             "Health",
	"EBonusHealth":            "Health",
	"EStamina":                "Stamina",
	"EMoveSpeed":              "Move Speed",
	"ECooldownReduction":      "Cooldown Reduction",
	"EAbilityResourceMaxSize": "Ability Charges",
}

// UpgradeBonuses maps a property name to the bonus value an upgrade tier grants it.
type UpgradeBonuses map[string]string

// ExtractStat turns one raw property into a display-ready stat. It reports false for missing
// properties, missing labels and values that resolve to empty or zero.
func ExtractStat(propName string, prop *internal.RawItemProperty, sectionType string, upgrades UpgradeBonuses, isConditional, isImportant bool) (internal.StatInfo, bool) {
	if prop == nil {
		return internal.StatInfo{}, false
	}
	label := strings.TrimSpace(prop.Label)
	if label == "" {
		return internal.StatInfo{}, false
	}

	value := strings.TrimSpace(prop.Value.String())
	if isEmptyValue(value) {
		value = strings.TrimSpace(upgrades[propName])
	}
	if isEmptyValue(value) {
		return internal.StatInfo{}, false
	}

	stat := internal.StatInfo{
		Key:      propName,
		Label:    label,
		Value:    formatStatValue(value, prop.Prefix, prop.Postfix),
		Icon:     prop.Icon,
		CSSClass: prop.CSSClass,
		Section:  ClassifySection(sectionType).Section,
	}

	if multiplier, ok := prop.ScaleFunction.Multiplier(); ok {
		stat.ScaleMultiplier = util.FloatPtr(multiplier)
		stat.ScalesWith = scalingStatName(prop.ScaleFunction)
	}

	builtIn := strings.TrimSpace(prop.Conditional) != ""
	if builtIn {
		stat.HasBuiltInCondition = true
		stat.Condition = strings.TrimSpace(prop.Conditional)
	}
	stat.IsConditional = isConditional || isMarkedConditional(prop, sectionType, builtIn, isImportant)
	stat.IsImportant = isImportant

	return stat, true
}

// isMarkedConditional flags ConditionallyApplied properties without their own condition text, but
// only when they are important and either a debuff or part of a passive section. Conditional
// sections flag every stat they contain.
func isMarkedConditional(prop *internal.RawItemProperty, sectionType string, builtIn, isImportant bool) bool {
	if sectionType == sectionConditional {
		return true
	}
	if !prop.UsageFlags.Has(flagConditionallyUsed) || builtIn || !isImportant {
		return false
	}
	return prop.CSSClass == debuffCSSClass || sectionType == sectionPassive
}

func isEmptyValue(value string) bool {
	if value == "" {
		return true
	}
	if f, ok := util.ParseNumber(value); ok && f == 0 {
		return true
	}
	return false
}

func formatStatValue(value, prefix, postfix string) string {
	if strings.Contains(prefix, signPlaceholder) {
		sign := "+"
		if strings.HasPrefix(value, "-") {
			sign = ""
		}
		prefix = strings.ReplaceAll(prefix, signPlaceholder, sign)
	}
	return prefix + applyPostfix(value, postfix)
}

// applyPostfix appends the unit unless the value already ends with it. A value carrying the bare
// base unit of a compound postfix ("2.5m" with "m/s") becomes "2.5 m/s".
func applyPostfix(value, postfix string) string {
	if postfix == "" || strings.HasSuffix(value, postfix) {
		return value
	}
	if base, _, compound := strings.Cut(postfix, "/"); compound && base != "" && strings.HasSuffix(value, base) {
		return strings.TrimSpace(strings.TrimSuffix(value, base)) + " " + postfix
	}
	return value + postfix
}

func scalingStatName(sf internal.ScaleFunction) string {
	if name, ok := scalingStatNames[sf.SpecificStatType()]; ok {
		return name
	}
	for _, candidate := range sf.ScalingStats() {
		if name, ok := scalingStatNames[candidate]; ok {
			return name
		}
	}
	return ""
}
