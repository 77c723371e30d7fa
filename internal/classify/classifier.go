package classify

import (
	"strings"

	"casebinder/internal/model"
)

// Classifier assigns legal category tags to evidence records by keyword
// matching. Categorization is pure: the same record always yields the
// same categories.
type Classifier struct {
	rules   []model.CategoryRule
	weights map[string]int
	order   map[string]int
}

// New creates a classifier from the configured category rules.
// Rule declaration order is preserved for the primary-category tie-break.
func New(rules []model.CategoryRule) *Classifier {
	c := &Classifier{
		rules:   rules,
		weights: make(map[string]int, len(rules)),
		order:   make(map[string]int, len(rules)),
	}
	for i, rule := range rules {
		c.weights[rule.Name] = rule.Weight
		c.order[rule.Name] = i
	}
	return c
}

// Categorize returns the category tags matched by the record, in rule
// declaration order. A record matching nothing gets the "general" fallback.
func (c *Classifier) Categorize(rec model.EvidenceRecord) []string {
	haystack := strings.ToLower(rec.RawText + " " + rec.SourceID + " " + rec.FolderHint)

	var categories []string
	for _, rule := range c.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(haystack, keyword) {
				categories = append(categories, rule.Name)
				break // One match per category is enough
			}
		}
	}

	if len(categories) == 0 {
		return []string{model.GeneralCategory}
	}
	return categories
}

// Primary returns the highest-weighted category among those matched.
// Ties go to the category declared first in the rule table.
func (c *Classifier) Primary(categories []string) string {
	if len(categories) == 0 {
		return model.GeneralCategory
	}

	best := categories[0]
	for _, cat := range categories[1:] {
		if c.Weight(cat) > c.Weight(best) {
			best = cat
			continue
		}
		if c.Weight(cat) == c.Weight(best) && c.declOrder(cat) < c.declOrder(best) {
			best = cat
		}
	}
	return best
}

// Weight returns the scoring weight for a category, defaulting to the
// general weight for unconfigured names.
func (c *Classifier) Weight(category string) int {
	if w, ok := c.weights[category]; ok {
		return w
	}
	return model.GeneralWeight
}

// MaxWeight returns the maximum category weight among the given categories
func (c *Classifier) MaxWeight(categories []string) int {
	max := model.GeneralWeight
	for _, cat := range categories {
		if w := c.Weight(cat); w > max {
			max = w
		}
	}
	return max
}

func (c *Classifier) declOrder(category string) int {
	if i, ok := c.order[category]; ok {
		return i
	}
	return len(c.rules) // Fallback category sorts last
}
