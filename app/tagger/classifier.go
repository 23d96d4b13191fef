package tagger

import "strings"

// Rule maps a case-sensitive substring to a category.
type Rule[T ~string] struct {
	Pattern  string `yaml:"pattern"`
	Category T      `yaml:"category"`
}

// Rules lists classification rules in priority order.
type Rules struct {
	Novelty   []Rule[Novelty]   `yaml:"novelty"`
	Placement []Rule[Placement] `yaml:"placement"`
}

func DefaultRules() Rules {
	return Rules{
		Novelty: []Rule[Novelty]{
			{Pattern: "New", Category: NoveltyNew},
			{Pattern: "Update", Category: NoveltyExisting},
		},
		Placement: []Rule[Placement]{
			{Pattern: "Post", Category: PlacementPost},
			{Pattern: "Page", Category: PlacementPage},
		},
	}
}

type Classifier struct {
	rules Rules
}

func NewClassifier(rules Rules) *Classifier {
	return &Classifier{rules: rules}
}

func (c *Classifier) Novelty(contentType string) Novelty {
	return classify(c.rules.Novelty, contentType, NoveltyUnknown)
}

func (c *Classifier) Placement(contentType string) Placement {
	return classify(c.rules.Placement, contentType, PlacementUnknown)
}

func (c *Classifier) Rules() Rules {
	return c.rules
}

// classify returns the category of the first rule whose pattern occurs in text.
func classify[T ~string](rules []Rule[T], text string, fallback T) T {
	for _, rule := range rules {
		if strings.Contains(text, rule.Pattern) {
			return rule.Category
		}
	}
	return fallback
}
