package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"itemdeck/internal"
	"itemdeck/internal/cache"
	"itemdeck/internal/catalog"
	"itemdeck/internal/config"
	"itemdeck/internal/pipeline"
	"itemdeck/internal/storage"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "items:sync":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		force := fs.Bool("force", false, "sync even if the last snapshot is fresh")
		_ = fs.Parse(os.Args[2:])
		must(cfg.Require("ITEMS_API_BASE_URL", cfg.ItemsAPIBaseURL))

		payloadCache, closeCache, err := cache.FromConfig(cfg)
		must(err)
		defer closeCache()

		opts := []catalog.ClientOption{catalog.WithLogger(logger)}
		if payloadCache != nil {
			opts = append(opts, catalog.WithCache(payloadCache))
		}
		svc := catalog.NewSyncService(db, cfg, opts...)
		res, err := svc.Sync(context.Background(), *force)
		must(err)
		if res.UpToDate {
			fmt.Println("items snapshot is up to date (use --force to refetch)")
			return
		}
		fmt.Printf("items sync complete: snapshot=%d items=%d malformed=%d\n", res.SnapshotID, res.ItemCount, res.Malformed)
	case "items:process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "local items JSON file instead of the latest snapshot")
		_ = fs.Parse(os.Args[2:])
		processor := pipeline.NewProcessingService(db, cfg, logger)

		var res pipeline.ProcessResult
		if strings.TrimSpace(*input) != "" {
			res, err = processor.ProcessFile(*input)
		} else {
			res, err = processor.ProcessLatestSnapshot()
			if errors.Is(err, storage.ErrNoSnapshot) {
				err = fmt.Errorf("%w: run items:sync first or pass --input", err)
			}
		}
		must(err)
		fmt.Printf("processed run=%s raw=%d shop=%d stats=%d\n", res.RunID, res.RawCount, res.ShopCount, res.StatCount)
	case "items:show":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		className := fs.String("class", "", "item class name, e.g. upgrade_magic_carpet")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*className) == "" {
			must(fmt.Errorf("--class is required"))
		}
		item, err := db.GetProcessedItem(strings.TrimSpace(*className))
		must(err)
		if item == nil {
			must(fmt.Errorf("item not found: %s", *className))
		}
		printJSON(item)
	case "items:find":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		query := fs.String("query", "", "item name to look up")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*query) == "" {
			must(fmt.Errorf("--query is required"))
		}
		items, err := db.ListProcessedItems()
		must(err)
		candidates := pipeline.NewFinder(items).Find(*query)
		if len(candidates) == 0 {
			fmt.Printf("no items match %q\n", *query)
			return
		}
		for _, c := range candidates {
			fmt.Printf("%.2f  %-32s %s (tier %d, %s, %d)\n", c.Score, c.Item.ClassName, c.Item.Name, c.Item.Tier, c.Item.Category, c.Item.Cost)
		}
	case "export:xlsx", "export:json":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		out := fs.String("out", "", "output path")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--out is required"))
		}
		items, err := db.ListProcessedItems()
		must(err)
		if len(items) == 0 {
			must(fmt.Errorf("no processed items, run items:process first"))
		}
		if cmd == "export:xlsx" {
			must(pipeline.ExportItemsToXLSX(items, *out, cfg.ExportPlainText))
		} else {
			must(pipeline.ExportItemsToJSON(items, *out))
		}
		fmt.Printf("exported %d items to %s\n", len(items), *out)
	default:
		usage()
		os.Exit(1)
	}
}

func printJSON(item *internal.ProcessedItem) {
	blob, err := json.MarshalIndent(item, "", "  ")
	must(err)
	fmt.Println(string(blob))
}

func usage() {
	fmt.Println("usage: itemdeck <command>")
	fmt.Println("commands:")
	fmt.Println("  items:sync [--force]")
	fmt.Println("  items:process [--input=./items.json]")
	fmt.Println("  items:show --class=upgrade_magic_carpet")
	fmt.Println("  items:find --query=\"magic carpet\"")
	fmt.Println("  export:xlsx --out=./out/items.xlsx")
	fmt.Println("  export:json --out=./out/items.json")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
