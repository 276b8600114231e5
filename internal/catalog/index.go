package catalog

import (
	"strings"

	"itemdeck/internal"
)

type Index struct {
	ByClassName map[string]internal.RawItem
}

// BuildIndex indexes items by class name. The first item wins when a class name repeats.
func BuildIndex(items []internal.RawItem) *Index {
	idx := &Index{ByClassName: map[string]internal.RawItem{}}

	for _, item := range items {
		className := strings.TrimSpace(item.ClassName)
		if className == "" {
			continue
		}
		if _, ok := idx.ByClassName[className]; ok {
			continue
		}
		idx.ByClassName[className] = item
	}

	return idx
}
