// Command genlabels scans a PlantVillage-style dataset tree and writes the
// label file consumed by the server. Class names come from the directory
// names under each variant subfolder; the output is deduplicated and sorted,
// matching the ordering the classifier was trained with.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var variants = []string{"color", "grayscale", "segmented"}

func main() {
	datasetPath := flag.String("dataset", "", "path to the PlantVillage dataset root")
	output := flag.String("o", "labels.txt", "output label file")
	flag.Parse()

	if *datasetPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	seen := make(map[string]bool)
	for _, variant := range variants {
		dir := filepath.Join(*datasetPath, variant)
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			log.Fatalf("Failed to read %s: %v", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				seen[entry.Name()] = true
			}
		}
	}

	if len(seen) == 0 {
		log.Fatalf("No class directories found under %s", *datasetPath)
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	if err := os.WriteFile(*output, []byte(strings.Join(names, "\n")+"\n"), 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", *output, err)
	}

	fmt.Printf("Wrote %d classes to %s\n", len(names), *output)
}
