// Package catalog holds the fixed list of AWS services the diagnostic may
// pick from.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/amixedcolor/aws-identity-gift/internal/gift"
)

//go:embed aws-services.csv
var defaultCSV string

// Default returns the embedded catalog.
func Default() []gift.Service {
	return Parse(defaultCSV)
}

// Load reads a catalog override from path. An empty path returns Default.
func Load(path string) ([]gift.Service, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	services := Parse(string(data))
	if len(services) == 0 {
		return nil, fmt.Errorf("catalog %s has no services", path)
	}
	return services, nil
}

// Parse reads a "category,serviceName" listing with one header row. Blank
// lines and rows with an empty field are skipped; anything after a second
// comma is ignored.
func Parse(text string) []gift.Service {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) <= 1 {
		return []gift.Service{}
	}

	services := make([]gift.Service, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 2 {
			continue
		}
		category := strings.TrimSpace(fields[0])
		name := strings.TrimSpace(fields[1])
		if category == "" || name == "" {
			continue
		}
		services = append(services, gift.Service{Category: category, ServiceName: name})
	}
	return services
}

// GroupByCategory buckets services by category, keeping input order
// within each bucket.
func GroupByCategory(services []gift.Service) map[string][]gift.Service {
	grouped := make(map[string][]gift.Service)
	for _, s := range services {
		grouped[s.Category] = append(grouped[s.Category], s)
	}
	return grouped
}

// FindByName returns the service with an exactly matching name.
func FindByName(services []gift.Service, name string) (gift.Service, bool) {
	for _, s := range services {
		if s.ServiceName == name {
			return s, true
		}
	}
	return gift.Service{}, false
}

func FilterByCategory(services []gift.Service, category string) []gift.Service {
	out := []gift.Service{}
	for _, s := range services {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// Categories lists the distinct categories in first-seen order.
func Categories(services []gift.Service) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range services {
		if !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	return out
}

// FormatForPrompt renders one "- category: serviceName" line per service.
func FormatForPrompt(services []gift.Service) string {
	lines := make([]string, len(services))
	for i, s := range services {
		lines[i] = fmt.Sprintf("- %s: %s", s.Category, s.ServiceName)
	}
	return strings.Join(lines, "\n")
}
