package pipeline

import (
	"strings"

	"itemdeck/internal"
	"itemdeck/internal/richtext"
	"itemdeck/internal/util"
)

const localizedSeparator = "<br><br>"

// Descriptions is the reconciled pair of texts shown in an item's passive and active areas.
type Descriptions struct {
	Passive string
	Active  string
}

// ExtractDescriptions picks the passive and active description from the dedicated fields, the main
// field and the localized tooltip strings. Rich candidates (inline images or attribute spans) beat
// plain ones; the main field only feeds the side the item's activation points at.
func ExtractDescriptions(item internal.RawItem) Descriptions {
	d := item.Description
	main := strings.TrimSpace(d.Desc)
	passive := strings.TrimSpace(d.PassiveDesc)
	active := strings.TrimSpace(d.ActiveDesc)
	locPassive, locActive := localizedDescriptions(item.TooltipSections)

	activeCapable := hasActiveAbility(item)
	onlyActive := hasOnlyActiveSections(item.TooltipSections)
	mainIsRich := richtext.IsRich(main)
	mainToPassive := !activeCapable && !onlyActive
	mainToActive := activeCapable || onlyActive

	var out Descriptions
	switch {
	case passive != "" && richtext.IsRich(passive):
		out.Passive = passive
	case mainToPassive && mainIsRich:
		out.Passive = main
	case passive != "":
		out.Passive = passive
	case mainToPassive && main != "":
		out.Passive = main
	default:
		out.Passive = locPassive
	}

	switch {
	case active != "" && richtext.IsRich(active):
		out.Active = active
	case mainToActive && mainIsRich:
		out.Active = main
	case active != "":
		out.Active = active
	case mainToActive && main != "":
		out.Active = main
	default:
		out.Active = locActive
	}

	if out.Passive == "" && out.Active == "" {
		fallback := strings.TrimSpace(util.FirstNonEmpty(main, passive, active, locPassive, locActive, d.Desc2, d.ExtendedDesc))
		if activeCapable {
			out.Active = fallback
		} else {
			out.Passive = fallback
		}
	}
	return out
}

func hasActiveAbility(item internal.RawItem) bool {
	if bool(item.IsActiveItem) {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(item.Activation)) {
	case "", "none", "passive":
		return false
	default:
		return true
	}
}

// hasOnlyActiveSections detects imbue-style items whose tooltip has no passive content at all.
func hasOnlyActiveSections(sections []internal.RawTooltipSection) bool {
	if len(sections) == 0 {
		return false
	}
	for _, s := range sections {
		if s.SectionType != sectionActive {
			return false
		}
	}
	return true
}

func localizedDescriptions(sections []internal.RawTooltipSection) (passive, active string) {
	var passiveParts, activeParts []string
	for _, section := range sections {
		bucket := ClassifySection(section.SectionType).Bucket
		for _, attr := range section.SectionAttributes {
			text := strings.TrimSpace(attr.LocString)
			if text == "" {
				continue
			}
			if bucket == BucketActive {
				activeParts = append(activeParts, text)
			} else {
				passiveParts = append(passiveParts, text)
			}
		}
	}
	return strings.Join(passiveParts, localizedSeparator), strings.Join(activeParts, localizedSeparator)
}
