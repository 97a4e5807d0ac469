package main

import (
	"flag"
	"fmt"
	"os"

	formwidgets "github.com/goliatone/go-formwidgets"
	"github.com/goliatone/go-formwidgets/pkg/guide"
)

func main() {
	var (
		flavor     = flag.String("flavor", string(guide.Markdown), "guide flavor (markdown or mdx)")
		outputPath = flag.String("output", "docs/widgets.md", "output path for the generated guide")
	)
	flag.Parse()

	doc, err := formwidgets.GenerateGuide(guide.Flavor(*flavor))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate guide: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*outputPath, []byte(doc), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Generated widget guide (%d bytes) → %s\n", len(doc), *outputPath)
}
