package pipeline

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"itemdeck/internal"
)

func decodeItem(t *testing.T, raw string) internal.RawItem {
	t.Helper()
	var item internal.RawItem
	require.NoError(t, json.Unmarshal([]byte(raw), &item))
	return item
}

func decodeProp(t *testing.T, raw string) *internal.RawItemProperty {
	t.Helper()
	var prop internal.RawItemProperty
	require.NoError(t, json.Unmarshal([]byte(raw), &prop))
	return &prop
}
