package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	zwavegen "github.com/goliatone/go-zwavegen"
	"github.com/goliatone/go-zwavegen/pkg/registry"
)

func main() {
	var (
		recordPath = flag.String("record", "internal/manifest/testdata/product_record.json", "registry record fixture")
		outputPath = flag.String("output", "internal/manifest/testdata/product_manifest.golden.json", "golden file to write")
	)
	flag.Parse()

	data, err := os.ReadFile(*recordPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read record: %v\n", err)
		os.Exit(1)
	}
	var record registry.Record
	if err := json.Unmarshal(data, &record); err != nil {
		fmt.Fprintf(os.Stderr, "failed to decode record: %v\n", err)
		os.Exit(1)
	}

	fragment := zwavegen.BuildManifest(record)
	payload, err := json.MarshalIndent(map[string]any{
		"zwave":    fragment,
		"settings": fragment.Settings,
	}, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode fragment: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outputPath, append(payload, '\n'), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write golden: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Wrote manifest golden to %s\n", *outputPath)
}
