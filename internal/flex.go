package internal

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// FlexValue holds an upstream scalar that arrives either as a JSON string or a JSON number.
// Objects, arrays and null leave it unset.
type FlexValue struct {
	text    string
	numeric bool
	set     bool
}

func NewFlexValue(text string) FlexValue {
	return FlexValue{text: text, set: true}
}

func NewFlexNumber(n float64) FlexValue {
	return FlexValue{text: formatNumber(n), numeric: true, set: true}
}

func (v *FlexValue) UnmarshalJSON(data []byte) error {
	res := gjson.ParseBytes(data)
	switch res.Type {
	case gjson.String:
		*v = FlexValue{text: res.Str, set: true}
	case gjson.Number:
		*v = FlexValue{text: formatNumber(res.Num), numeric: true, set: true}
	case gjson.True, gjson.False:
		*v = FlexValue{text: res.String(), set: true}
	default:
		*v = FlexValue{}
	}
	return nil
}

func (v FlexValue) MarshalJSON() ([]byte, error) {
	if !v.set {
		return []byte("null"), nil
	}
	if v.numeric {
		return []byte(v.text), nil
	}
	return json.Marshal(v.text)
}

func (v FlexValue) IsSet() bool {
	return v.set
}

func (v FlexValue) String() string {
	return v.text
}

// Float parses the value as a number. Surrounding whitespace is ignored.
func (v FlexValue) Float() (float64, bool) {
	if !v.set {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v.text), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// FlexBool accepts booleans, numbers, strings and objects; objects and arrays are true when non-empty.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	*b = FlexBool(truthy(gjson.ParseBytes(data)))
	return nil
}

func truthy(res gjson.Result) bool {
	switch res.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return res.Num != 0
	case gjson.String:
		switch strings.ToLower(strings.TrimSpace(res.Str)) {
		case "", "0", "false", "no", "off", "none":
			return false
		}
		return true
	case gjson.JSON:
		if res.IsArray() {
			return len(res.Array()) > 0
		}
		return len(res.Map()) > 0
	default:
		return false
	}
}

// UsageFlags is decoded from either a JSON array or a delimited string.
type UsageFlags []string

func (f *UsageFlags) UnmarshalJSON(data []byte) error {
	res := gjson.ParseBytes(data)
	var out []string
	switch {
	case res.IsArray():
		res.ForEach(func(_, v gjson.Result) bool {
			if s := strings.TrimSpace(v.String()); s != "" {
				out = append(out, s)
			}
			return true
		})
	case res.Type == gjson.String:
		out = strings.FieldsFunc(res.Str, func(r rune) bool {
			return r == '|' || r == ',' || r == ' '
		})
	}
	*f = out
	return nil
}

func (f UsageFlags) Has(flag string) bool {
	for _, v := range f {
		if v == flag {
			return true
		}
	}
	return false
}

// Properties drops entries that are not JSON objects or fail to decode instead of failing the item.
type Properties map[string]RawItemProperty

func (p *Properties) UnmarshalJSON(data []byte) error {
	res := gjson.ParseBytes(data)
	if !res.IsObject() {
		*p = nil
		return nil
	}
	out := Properties{}
	res.ForEach(func(key, value gjson.Result) bool {
		if !value.IsObject() {
			return true
		}
		var prop RawItemProperty
		if err := json.Unmarshal([]byte(value.Raw), &prop); err != nil {
			return true
		}
		out[key.String()] = prop
		return true
	})
	*p = out
	return nil
}

// ScaleFunction keeps the upstream scale_function object verbatim; fields are read lazily.
type ScaleFunction []byte

var multiplierFields = []string{"stat_scale", "scale", "multiplier"}

func (s *ScaleFunction) UnmarshalJSON(data []byte) error {
	*s = append((*s)[0:0], data...)
	return nil
}

func (s ScaleFunction) MarshalJSON() ([]byte, error) {
	if len(s) == 0 {
		return []byte("null"), nil
	}
	return []byte(s), nil
}

// Multiplier reads the first non-null legacy multiplier field and reports it only when it is a
// positive number.
func (s ScaleFunction) Multiplier() (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	for _, field := range multiplierFields {
		res := gjson.GetBytes(s, field)
		if !res.Exists() || res.Type == gjson.Null {
			continue
		}
		var f float64
		switch res.Type {
		case gjson.Number:
			f = res.Num
		case gjson.String:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(res.Str), 64)
			if err != nil {
				return 0, false
			}
			f = parsed
		default:
			return 0, false
		}
		if f > 0 {
			return f, true
		}
		return 0, false
	}
	return 0, false
}

func (s ScaleFunction) SpecificStatType() string {
	if len(s) == 0 {
		return ""
	}
	return strings.TrimSpace(gjson.GetBytes(s, "specific_stat_scale_type").String())
}

func (s ScaleFunction) ScalingStats() []string {
	if len(s) == 0 {
		return nil
	}
	var out []string
	gjson.GetBytes(s, "scaling_stats").ForEach(func(_, v gjson.Result) bool {
		if name := strings.TrimSpace(v.String()); name != "" {
			out = append(out, name)
		}
		return true
	})
	return out
}
