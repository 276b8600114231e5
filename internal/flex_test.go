package internal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexValue(t *testing.T) {
	cases := []struct {
		raw   string
		set   bool
		text  string
		float float64
		ok    bool
	}{
		{raw: `"12"`, set: true, text: "12", float: 12, ok: true},
		{raw: `12`, set: true, text: "12", float: 12, ok: true},
		{raw: `12.5`, set: true, text: "12.5", float: 12.5, ok: true},
		{raw: `"fast"`, set: true, text: "fast"},
		{raw: `true`, set: true, text: "true"},
		{raw: `null`},
		{raw: `{"a":1}`},
		{raw: `[1]`},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			var v FlexValue
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &v))
			assert.Equal(t, tc.set, v.IsSet())
			assert.Equal(t, tc.text, v.String())
			f, ok := v.Float()
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.float, f)
		})
	}

	blob, err := json.Marshal(struct {
		A FlexValue `json:"a"`
		B FlexValue `json:"b"`
		C FlexValue `json:"c"`
	}{A: NewFlexNumber(3), B: NewFlexValue("x")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3,"b":"x","c":null}`, string(blob))
}

func TestFlexBool(t *testing.T) {
	cases := map[string]bool{
		`true`:     true,
		`false`:    false,
		`1`:        true,
		`0`:        false,
		`"yes"`:    true,
		`"false"`:  false,
		`"0"`:      false,
		`""`:       false,
		`{"a": 1}`: true,
		`{}`:       false,
		`["x"]`:    true,
		`[]`:       false,
		`null`:     false,
	}
	for raw, want := range cases {
		var b FlexBool
		require.NoError(t, json.Unmarshal([]byte(raw), &b), raw)
		assert.Equal(t, want, bool(b), raw)
	}
}

func TestUsageFlags(t *testing.T) {
	var f UsageFlags
	require.NoError(t, json.Unmarshal([]byte(`["ConditionallyApplied", " ", "Other"]`), &f))
	assert.Equal(t, UsageFlags{"ConditionallyApplied", "Other"}, f)
	assert.True(t, f.Has("ConditionallyApplied"))

	require.NoError(t, json.Unmarshal([]byte(`"A | B,ConditionallyApplied"`), &f))
	assert.Equal(t, UsageFlags{"A", "B", "ConditionallyApplied"}, f)

	require.NoError(t, json.Unmarshal([]byte(`5`), &f))
	assert.False(t, f.Has("ConditionallyApplied"))
}

func TestPropertiesSkipMalformedEntries(t *testing.T) {
	var p Properties
	require.NoError(t, json.Unmarshal([]byte(`{
		"Good": {"value": 5, "label": "Good"},
		"Scalar": 7,
		"BadFlags": {"value": 1, "label": 3}
	}`), &p))
	require.Len(t, p, 1)
	assert.Equal(t, "5", p["Good"].Value.String())

	require.NoError(t, json.Unmarshal([]byte(`[1,2]`), &p))
	assert.Nil(t, p)
}

func TestScaleFunction(t *testing.T) {
	var s ScaleFunction
	require.NoError(t, json.Unmarshal([]byte(`{"scale": null, "multiplier": "1.5", "specific_stat_scale_type": " ETechPower ", "scaling_stats": ["EBulletDamage", ""]}`), &s))
	m, ok := s.Multiplier()
	assert.True(t, ok)
	assert.Equal(t, 1.5, m)
	assert.Equal(t, "ETechPower", s.SpecificStatType())
	assert.Equal(t, []string{"EBulletDamage"}, s.ScalingStats())

	require.NoError(t, json.Unmarshal([]byte(`{"stat_scale": 0, "scale": 2}`), &s))
	_, ok = s.Multiplier()
	assert.False(t, ok)

	var empty ScaleFunction
	_, ok = empty.Multiplier()
	assert.False(t, ok)
	assert.Nil(t, empty.ScalingStats())
}
