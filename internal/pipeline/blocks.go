package pipeline

import (
	"strings"

	"itemdeck/internal"
)

// ExtractContentBlocks interleaves description and stat blocks in the order the tooltip declares
// them. Innate sections are skipped; their stats only appear in the flat stat list.
func ExtractContentBlocks(props internal.Properties, sections []internal.RawTooltipSection, upgrades []internal.RawItemUpgrade) (active, passive []internal.ContentBlock) {
	bonuses := BuildUpgradeBonuses(upgrades)
	for _, section := range sections {
		if isInnate(section.SectionType) {
			continue
		}
		var blocks []internal.ContentBlock
		for _, attr := range section.SectionAttributes {
			if text := strings.TrimSpace(attr.LocString); text != "" {
				blocks = append(blocks, internal.DescriptionBlock(attr.LocString))
			}
			if stats := extractAttributeStats(props, section.SectionType, attr, bonuses); len(stats) > 0 {
				blocks = append(blocks, internal.StatsBlock(stats))
			}
		}
		if ClassifySection(section.SectionType).Bucket == BucketActive {
			active = append(active, blocks...)
		} else {
			passive = append(passive, blocks...)
		}
	}
	return active, passive
}
