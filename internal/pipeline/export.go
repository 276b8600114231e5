package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"itemdeck/internal"
	"itemdeck/internal/richtext"
)

const (
	itemsSheet = "Items"
	statsSheet = "Stats"
)

// ExportItemsToXLSX writes one row per item plus a Stats sheet with one row per stat. With
// plainText set, description markup is flattened to plain text.
func ExportItemsToXLSX(items []internal.ProcessedItem, outputPath string, plainText bool) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), itemsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(statsSheet); err != nil {
		return err
	}

	text := func(s string) string {
		if plainText {
			return richtext.PlainText(s)
		}
		return s
	}

	writeRow(f, itemsSheet, 1, []any{
		"id", "class_name", "name", "category", "tier", "cost", "is_active", "is_imbue", "cooldown",
		"has_passive_section", "components", "upgrades_to", "passive_description", "active_description", "image",
		"keybinds",
	})
	writeRow(f, statsSheet, 1, []any{
		"class_name", "section", "key", "label", "value", "scales_with", "scale_multiplier",
		"conditional", "condition", "important",
	})

	statRow := 2
	for i, item := range items {
		writeRow(f, itemsSheet, i+2, []any{
			item.ID, item.ClassName, item.Name, string(item.Category), item.Tier, item.Cost,
			item.IsActive, item.IsImbue, item.Cooldown, item.HasPassiveSection,
			componentNames(item.ComponentItems), componentNames(item.UpgradesTo),
			text(item.PassiveDescription), text(item.ActiveDescription), item.Image,
			keybindNames(item),
		})
		for _, stat := range item.Stats {
			writeRow(f, statsSheet, statRow, []any{
				item.ClassName, string(stat.Section), stat.Key, stat.Label, stat.Value, stat.ScalesWith,
				derefFloat(stat.ScaleMultiplier), stat.IsConditional, stat.Condition, stat.IsImportant,
			})
			statRow++
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

// ExportItemsToJSON writes the items exactly as the rendering side consumes them.
func ExportItemsToJSON(items []internal.ProcessedItem, outputPath string) error {
	if items == nil {
		items = []internal.ProcessedItem{}
	}
	blob, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, blob, 0o644)
}

func writeRow(f *excelize.File, sheet string, row int, values []any) {
	for i, value := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		_ = f.SetCellValue(sheet, cell, value)
	}
}

func componentNames(items []internal.ComponentItem) string {
	names := make([]string, 0, len(items))
	for _, c := range items {
		names = append(names, c.Name)
	}
	return strings.Join(names, ", ")
}

func keybindNames(item internal.ProcessedItem) string {
	names := richtext.Keybinds(item.PassiveDescription)
	names = append(names, richtext.Keybinds(item.ActiveDescription)...)
	return strings.Join(names, ", ")
}

func derefFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}
