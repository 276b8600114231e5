package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractStatDeclines(t *testing.T) {
	cases := []struct {
		name string
		prop string
	}{
		{name: "zero value", prop: `{"value": "0", "label": "Foo"}`},
		{name: "numeric zero", prop: `{"value": 0.0, "label": "Foo"}`},
		{name: "empty value", prop: `{"value": "", "label": "Foo"}`},
		{name: "missing value", prop: `{"label": "Foo"}`},
		{name: "missing label", prop: `{"value": "12"}`},
		{name: "blank label", prop: `{"value": "12", "label": "  "}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := ExtractStat("Foo", decodeProp(t, tc.prop), "passive", nil, false, false)
			assert.False(t, ok)
		})
	}

	_, ok := ExtractStat("Foo", nil, "passive", UpgradeBonuses{"Foo": "5"}, false, false)
	assert.False(t, ok)
}

func TestExtractStatUpgradeFallback(t *testing.T) {
	upgrades := UpgradeBonuses{"Foo": "5"}

	stat, ok := ExtractStat("Foo", decodeProp(t, `{"value": "0", "label": "Foo", "postfix": "%"}`), "innate", upgrades, false, false)
	require.True(t, ok)
	assert.Equal(t, "5%", stat.Value)
	assert.Equal(t, "Foo", stat.Key)

	stat, ok = ExtractStat("Foo", decodeProp(t, `{"value": "8", "label": "Foo"}`), "innate", upgrades, false, false)
	require.True(t, ok)
	assert.Equal(t, "8", stat.Value)

	_, ok = ExtractStat("Foo", decodeProp(t, `{"value": "0", "label": "Foo"}`), "innate", UpgradeBonuses{"Foo": "0"}, false, false)
	assert.False(t, ok)
}

func TestExtractStatFormatting(t *testing.T) {
	cases := []struct {
		name string
		prop string
		want string
	}{
		{name: "sign positive", prop: `{"value": "10", "label": "L", "prefix": "{s:sign}", "postfix": "%"}`, want: "+10%"},
		{name: "sign negative", prop: `{"value": "-5", "label": "L", "prefix": "{s:sign}", "postfix": "%"}`, want: "-5%"},
		{name: "numeric value", prop: `{"value": 12.5, "label": "L", "postfix": "s"}`, want: "12.5s"},
		{name: "compound postfix", prop: `{"value": "2.5m", "label": "L", "postfix": "m/s"}`, want: "2.5 m/s"},
		{name: "postfix already present", prop: `{"value": "3m/s", "label": "L", "postfix": "m/s"}`, want: "3m/s"},
		{name: "plain postfix", prop: `{"value": "4", "label": "L", "postfix": "m"}`, want: "4m"},
		{name: "plain prefix", prop: `{"value": "4", "label": "L", "prefix": "x"}`, want: "x4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stat, ok := ExtractStat("P", decodeProp(t, tc.prop), "passive", nil, false, false)
			require.True(t, ok)
			assert.Equal(t, tc.want, stat.Value)
		})
	}
}

func TestExtractStatScaling(t *testing.T) {
	cases := []struct {
		name       string
		scale      string
		multiplier *float64
		scalesWith string
	}{
		{name: "specific type", scale: `{"stat_scale": 0.5, "specific_stat_scale_type": "ETechPower"}`, multiplier: ptr(0.5), scalesWith: "Spirit"},
		{name: "scaling stats list", scale: `{"multiplier": "2", "scaling_stats": ["EUnknown", "EBulletDamage"]}`, multiplier: ptr(2), scalesWith: "Weapon Damage"},
		{name: "first legacy field wins", scale: `{"stat_scale": 1.5, "scale": 3, "specific_stat_scale_type": "EMaxHealth"}`, multiplier: ptr(1.5), scalesWith: "Health"},
		{name: "unknown type keeps multiplier", scale: `{"scale": 1.2, "specific_stat_scale_type": "EWeird"}`, multiplier: ptr(1.2)},
		{name: "negative multiplier", scale: `{"stat_scale": -1, "specific_stat_scale_type": "ETechPower"}`},
		{name: "non numeric multiplier", scale: `{"stat_scale": "lots"}`},
		{name: "no multiplier", scale: `{"specific_stat_scale_type": "ETechPower"}`},
		{name: "malformed", scale: `"oops"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			prop := decodeProp(t, `{"value": "40", "label": "Damage", "scale_function": `+tc.scale+`}`)
			stat, ok := ExtractStat("Damage", prop, "active", nil, false, false)
			require.True(t, ok)
			assert.Equal(t, tc.multiplier, stat.ScaleMultiplier)
			assert.Equal(t, tc.scalesWith, stat.ScalesWith)
		})
	}
}

func TestExtractStatConditionalMarker(t *testing.T) {
	const slowFlagged = `{"value": "-30", "label": "Slow", "postfix": "%", "css_class": "slow", "usage_flags": ["ConditionallyApplied"]}`

	cases := []struct {
		name        string
		prop        string
		section     string
		important   bool
		conditional bool
	}{
		{name: "important debuff in passive", prop: slowFlagged, section: "passive", important: true, conditional: true},
		{name: "not important", prop: slowFlagged, section: "passive", important: false, conditional: false},
		{name: "important debuff in active", prop: slowFlagged, section: "active", important: true, conditional: true},
		{name: "important non debuff in passive", prop: `{"value": "2", "label": "Move", "usage_flags": "ConditionallyApplied"}`, section: "passive", important: true, conditional: true},
		{name: "important non debuff in active", prop: `{"value": "2", "label": "Move", "usage_flags": ["ConditionallyApplied"]}`, section: "active", important: true, conditional: false},
		{name: "built in condition", prop: `{"value": "-30", "label": "Slow", "css_class": "slow", "usage_flags": ["ConditionallyApplied"], "conditional": "When hit"}`, section: "passive", important: true, conditional: false},
		{name: "no flag", prop: `{"value": "-30", "label": "Slow", "css_class": "slow"}`, section: "passive", important: true, conditional: false},
		{name: "conditional section", prop: `{"value": "5", "label": "Armor"}`, section: "conditional", conditional: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stat, ok := ExtractStat("P", decodeProp(t, tc.prop), tc.section, nil, false, tc.important)
			require.True(t, ok)
			assert.Equal(t, tc.conditional, stat.IsConditional)
			assert.Equal(t, tc.important, stat.IsImportant)
		})
	}

	stat, ok := ExtractStat("P", decodeProp(t, `{"value": "-30", "label": "Slow", "conditional": "  While airborne "}`), "passive", nil, false, false)
	require.True(t, ok)
	assert.True(t, stat.HasBuiltInCondition)
	assert.Equal(t, "While airborne", stat.Condition)

	stat, ok = ExtractStat("P", decodeProp(t, `{"value": "1", "label": "X"}`), "passive", nil, true, false)
	require.True(t, ok)
	assert.True(t, stat.IsConditional)
}

func TestExtractStatSection(t *testing.T) {
	prop := decodeProp(t, `{"value": "1", "label": "X"}`)
	for sectionType, want := range map[string]string{
		"active":      "active",
		"innate":      "innate",
		"passive":     "passive",
		"conditional": "passive",
		"":            "passive",
		"mystery":     "passive",
	} {
		stat, ok := ExtractStat("X", prop, sectionType, nil, false, false)
		require.True(t, ok)
		assert.Equal(t, want, string(stat.Section), sectionType)
	}
}

func ptr(v float64) *float64 { return &v }
