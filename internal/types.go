package internal

type RawItem struct {
	ID                 int                 `json:"id"`
	ClassName          string              `json:"class_name"`
	Name               string              `json:"name"`
	Shopable           FlexBool            `json:"shopable"`
	Disabled           FlexBool            `json:"disabled"`
	Image              string              `json:"image"`
	ImageWebp          string              `json:"image_webp"`
	ShopImage          string              `json:"shop_image"`
	ShopImageWebp      string              `json:"shop_image_webp"`
	ShopImageSmall     string              `json:"shop_image_small"`
	ShopImageSmallWebp string              `json:"shop_image_small_webp"`
	ItemSlotType       string              `json:"item_slot_type"`
	ItemTier           FlexValue           `json:"item_tier"`
	Cost               FlexValue           `json:"cost"`
	Properties         Properties          `json:"properties"`
	TooltipSections    []RawTooltipSection `json:"tooltip_sections"`
	Upgrades           []RawItemUpgrade    `json:"upgrades"`
	ComponentItems     []string            `json:"component_items"`
	Description        RawDescription      `json:"description"`
	Activation         string              `json:"activation"`
	IsActiveItem       FlexBool            `json:"is_active_item"`
	Imbue              FlexBool            `json:"imbue"`
}

type RawItemProperty struct {
	Value         FlexValue     `json:"value"`
	Label         string        `json:"label"`
	Prefix        string        `json:"prefix"`
	Postfix       string        `json:"postfix"`
	Icon          string        `json:"icon"`
	CSSClass      string        `json:"css_class"`
	UsageFlags    UsageFlags    `json:"usage_flags"`
	Conditional   string        `json:"conditional"`
	ScaleFunction ScaleFunction `json:"scale_function"`
}

type RawTooltipSection struct {
	SectionType       string                `json:"section_type"`
	SectionAttributes []RawSectionAttribute `json:"section_attributes"`
}

type RawSectionAttribute struct {
	LocString           string   `json:"loc_string"`
	Properties          []string `json:"properties"`
	ElevatedProperties  []string `json:"elevated_properties"`
	ImportantProperties []string `json:"important_properties"`
}

type RawItemUpgrade struct {
	PropertyUpgrades []RawPropertyUpgrade `json:"property_upgrades"`
}

type RawPropertyUpgrade struct {
	Name  string    `json:"name"`
	Bonus FlexValue `json:"bonus"`
}

type RawDescription struct {
	Desc         string `json:"desc"`
	PassiveDesc  string `json:"passive_desc"`
	ActiveDesc   string `json:"active_desc"`
	Desc2        string `json:"desc2"`
	ExtendedDesc string `json:"extended_desc"`
}

type ItemCategory string

const (
	CategoryWeapon   ItemCategory = "weapon"
	CategoryVitality ItemCategory = "vitality"
	CategorySpirit   ItemCategory = "spirit"
)

type StatSection string

const (
	SectionInnate  StatSection = "innate"
	SectionPassive StatSection = "passive"
	SectionActive  StatSection = "active"
)

type StatInfo struct {
	Key                 string      `json:"key"`
	Label               string      `json:"label"`
	Value               string      `json:"value"`
	Icon                string      `json:"icon,omitempty"`
	CSSClass            string      `json:"cssClass,omitempty"`
	ScalesWith          string      `json:"scalesWith,omitempty"`
	ScaleMultiplier     *float64    `json:"scaleMultiplier,omitempty"`
	Section             StatSection `json:"section"`
	Condition           string      `json:"condition,omitempty"`
	IsConditional       bool        `json:"isConditional,omitempty"`
	HasBuiltInCondition bool        `json:"hasBuiltInCondition,omitempty"`
	IsImportant         bool        `json:"isImportant,omitempty"`
}

type BlockKind string

const (
	BlockDescription BlockKind = "description"
	BlockStats       BlockKind = "stats"
)

// ContentBlock is either a description (Text) or a stat group (Stats), never both.
type ContentBlock struct {
	Kind  BlockKind  `json:"type"`
	Text  string     `json:"content,omitempty"`
	Stats []StatInfo `json:"stats,omitempty"`
}

func DescriptionBlock(text string) ContentBlock {
	return ContentBlock{Kind: BlockDescription, Text: text}
}

func StatsBlock(stats []StatInfo) ContentBlock {
	return ContentBlock{Kind: BlockStats, Stats: stats}
}

type ComponentItem struct {
	ID        int    `json:"id"`
	ClassName string `json:"className"`
	Name      string `json:"name"`
}

type ProcessedItem struct {
	ID                 int             `json:"id"`
	ClassName          string          `json:"className"`
	Name               string          `json:"name"`
	Image              string          `json:"image"`
	Category           ItemCategory    `json:"category"`
	Tier               int             `json:"tier"`
	Cost               int             `json:"cost"`
	Stats              []StatInfo      `json:"stats"`
	PassiveDescription string          `json:"passiveDescription,omitempty"`
	ActiveDescription  string          `json:"activeDescription,omitempty"`
	ActiveBlocks       []ContentBlock  `json:"activeBlocks,omitempty"`
	PassiveBlocks      []ContentBlock  `json:"passiveBlocks,omitempty"`
	HasPassiveSection  bool            `json:"hasPassiveSection"`
	IsActive           bool            `json:"isActive"`
	IsImbue            bool            `json:"isImbue"`
	Cooldown           string          `json:"cooldown,omitempty"`
	ComponentItems     []ComponentItem `json:"componentItems"`
	UpgradesTo         []ComponentItem `json:"upgradesTo"`
}

type ProcessRun struct {
	ID         string
	SnapshotID int64
	RawCount   int
	ShopCount  int
	StatCount  int
	StartedAt  string
	DurationMs int64
}
