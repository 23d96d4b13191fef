package tagger

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRules reads classification rules from a YAML file. An empty path
// returns DefaultRules; a list omitted from the file keeps its default.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}

	rules, err := parseRules(path)
	if err != nil {
		return Rules{}, err
	}

	if err := validateRules(rules); err != nil {
		return Rules{}, fmt.Errorf("invalid rules %s: %w", path, err)
	}

	slog.Debug("Rules loaded", "path", path, "novelty", len(rules.Novelty), "placement", len(rules.Placement))

	return rules, nil
}

func parseRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("failed to read file: %w", err)
	}

	var rules Rules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	defaults := DefaultRules()
	if len(rules.Novelty) == 0 {
		rules.Novelty = defaults.Novelty
	}
	if len(rules.Placement) == 0 {
		rules.Placement = defaults.Placement
	}

	return rules, nil
}

func validateRules(rules Rules) error {
	validNovelty := map[Novelty]bool{
		NoveltyNew:      true,
		NoveltyExisting: true,
	}

	for i, rule := range rules.Novelty {
		if rule.Pattern == "" {
			return fmt.Errorf("novelty rule at index %d has an empty pattern", i)
		}
		if !validNovelty[rule.Category] {
			return fmt.Errorf("invalid novelty category at index %d: %q", i, rule.Category)
		}
	}

	validPlacement := map[Placement]bool{
		PlacementPost: true,
		PlacementPage: true,
	}

	for i, rule := range rules.Placement {
		if rule.Pattern == "" {
			return fmt.Errorf("placement rule at index %d has an empty pattern", i)
		}
		if !validPlacement[rule.Category] {
			return fmt.Errorf("invalid placement category at index %d: %q", i, rule.Category)
		}
	}

	return nil
}
