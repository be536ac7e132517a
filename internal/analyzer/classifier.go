package analyzer

import (
	"strings"

	"github.com/ludo-technologies/mobilescan/domain"
	"github.com/ludo-technologies/mobilescan/internal/catalog"
)

// Classifier maps a component to exactly one domain category
type Classifier struct {
	categories []catalog.CategoryKeywords
}

// NewClassifier creates a classifier over the catalog's ordered category table
func NewClassifier(c *catalog.Catalog) *Classifier {
	return &Classifier{categories: c.Categories}
}

// Classify returns the first category, in catalog order, whose keywords occur
// in the lower-cased name or content. No match yields CategoryOther.
func (c *Classifier) Classify(src domain.ComponentSource) domain.DomainCategory {
	text := strings.ToLower(src.Name) + "\n" + strings.ToLower(src.Content)
	for _, ck := range c.categories {
		if catalog.ContainsAny(text, ck.Keywords) {
			return ck.Category
		}
	}
	return domain.CategoryOther
}
