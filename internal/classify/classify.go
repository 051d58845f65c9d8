// Package classify assigns categories and transfer hints to statement rows
// based on keyword tables from the config.
package classify

import (
	"regexp"
	"strings"
)

// Uncategorized is the fallback when no keyword matches.
const Uncategorized = "uncategorized"

// refPattern matches masked account references like "xx5784".
var refPattern = regexp.MustCompile(`xx\d+`)

// Category pairs a name with the keywords that select it. Order matters:
// the first category whose keyword matches wins.
type Category struct {
	Name     string
	Keywords []string
}

// Classifier answers category, transfer-likelihood, and counterparty
// reference questions about a description. It is immutable after New.
type Classifier struct {
	categories []Category
	markers    []string
}

// New creates a Classifier from an ordered category table and a set of
// transfer marker phrases.
func New(categories []Category, transferMarkers []string) *Classifier {
	return &Classifier{categories: categories, markers: transferMarkers}
}

// Categorize returns the first category whose keyword appears in the
// description, case-insensitively, or Uncategorized.
func (c *Classifier) Categorize(description string) string {
	upper := strings.ToUpper(description)
	for _, cat := range c.categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(upper, strings.ToUpper(kw)) {
				return cat.Name
			}
		}
	}
	return Uncategorized
}

// IsTransfer reports whether the description contains any transfer marker.
func (c *Classifier) IsTransfer(description string) bool {
	upper := strings.ToUpper(description)
	for _, m := range c.markers {
		if strings.Contains(upper, strings.ToUpper(m)) {
			return true
		}
	}
	return false
}

// ExtractAccountReference returns the first masked account reference in the
// description, or the empty string when there is none.
func (c *Classifier) ExtractAccountReference(description string) string {
	return refPattern.FindString(description)
}
