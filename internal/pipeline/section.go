package pipeline

import "itemdeck/internal"

const (
	sectionActive      = "active"
	sectionPassive     = "passive"
	sectionConditional = "conditional"
	sectionInnate      = "innate"
)

// Bucket is the output list a tooltip section's content lands in.
type Bucket string

const (
	BucketActive  Bucket = "active"
	BucketPassive Bucket = "passive"
)

type SectionClass struct {
	Bucket  Bucket
	Section internal.StatSection
}

// ClassifySection maps a tooltip section type to its bucket and stat tag. Unknown types are
// treated as passive.
func ClassifySection(sectionType string) SectionClass {
	switch sectionType {
	case sectionActive:
		return SectionClass{Bucket: BucketActive, Section: internal.SectionActive}
	case sectionInnate:
		return SectionClass{Bucket: BucketPassive, Section: internal.SectionInnate}
	default:
		return SectionClass{Bucket: BucketPassive, Section: internal.SectionPassive}
	}
}

func isInnate(sectionType string) bool {
	return sectionType == sectionInnate
}
