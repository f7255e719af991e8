// Package labels loads the ordered class-name list that maps classifier
// output indices to disease identifiers.
package labels

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Catalog is an ordered list of class names. Order matches the classifier's
// output index order, so entries are never sorted or deduplicated here.
type Catalog struct {
	names []string
}

// New builds a catalog from an in-memory name list.
func New(names []string) *Catalog {
	return &Catalog{names: names}
}

// Load reads a newline-delimited label file. Each line is trimmed of
// surrounding whitespace; blank lines are skipped; file order is preserved.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open label file: %w", err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read label file: %w", err)
	}

	return &Catalog{names: names}, nil
}

// Len returns the number of labels. A nil catalog has length 0, so a server
// whose label file failed to load can still answer requests and report the
// mismatch per prediction.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}

// At returns the label at index i.
func (c *Catalog) At(i int) string {
	return c.names[i]
}
