package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"sportmarket/internal/catalog"
	"sportmarket/internal/importer"
	"sportmarket/internal/logging"
)

// importer checks a catalog CSV by loading it into a scratch catalog and listing the result.
// The API loads the same file at startup through CATALOG_CSV.
func main() {
	var (
		filePath string
		verbose  bool
	)
	flag.StringVar(&filePath, "file", "", "Path to catalog product CSV")
	flag.BoolVar(&verbose, "v", false, "Log every imported product")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	level := "info"
	if verbose {
		level = "debug"
	}
	logger, err := logging.New("importer", "dev", level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	f, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	cat := catalog.New()
	start := time.Now()
	count, err := importer.NewCSVImporter(f, cat, logger).Run(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d products in %s\n", count, time.Since(start).Truncate(time.Millisecond))
	for _, p := range cat.Products() {
		d := cat.Detail(p.ID)
		fmt.Printf("  %d\t%s\t%s\t%d/%d\n", p.ID, p.Name, catalog.Slug(p.Category), d.Price, d.MRP)
	}
}
