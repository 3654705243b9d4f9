// Package tier defines the coffee tier list domain: the six fixed categories,
// their presentation table, and the form state that becomes a Submission.
//
// # Categories
//
// Categories are ranked tiers in fixed order S, A, B, C, D, E. Presentation
// parameters (header colour and grid slot) live in a single configuration
// table, [Tiers], rather than being derived from the category index:
//
//	S (0,0) #FFB3BA   A (0,1) #FFDFBA
//	B (1,0) #FFFFBA   C (1,1) #BAFFB3
//	D (2,0) #BAE1FF   E (2,1) #D8BFD8
//
// # Drafts and submissions
//
// A [Draft] is the mutable form state a user edits: a display name and five
// rank slots per category, blanks allowed. [Draft.Submission] takes a snapshot
// with every list trimmed and blank entries removed. Submissions are never
// mutated after construction and are what the renderers consume.
//
// The only validation is the "every category" gate in [Submission.Validate].
package tier

import (
	"fmt"
	"strings"

	"github.com/matzehuels/coffeetier/pkg/errors"
)

// Category is one of the six ranking tiers.
type Category string

// The fixed categories in rank order.
const (
	S Category = "S"
	A Category = "A"
	B Category = "B"
	C Category = "C"
	D Category = "D"
	E Category = "E"
)

// Ranks is the number of rank slots per category on the form.
const Ranks = 5

// Year is the tier list edition rendered into titles and file names.
const Year = 2024

// TitleColor is the colour of the composite report title.
const TitleColor = "#6a0dad"

// IncompleteMessage is shown when a category has no entries at generate time.
const IncompleteMessage = "Please fill in at least one coffee for each category"

// Tier is one row of the presentation table.
type Tier struct {
	Category    Category
	Color       string // header background, hex
	Row         int    // grid row in the composite report (0..2)
	Col         int    // grid column in the composite report (0..1)
	Description string // rule text shown on the form
}

// GridRows and GridCols describe the fixed composite layout.
const (
	GridRows = 3
	GridCols = 2
)

// Tiers is the presentation table in category order.
var Tiers = []Tier{
	{S, "#FFB3BA", 0, 0, "Your absolute favorites."},
	{A, "#FFDFBA", 0, 1, "The best quality coffees of the year. They can overlap with the S category, but they are all about quality, not just subjective thoughts."},
	{B, "#FFFFBA", 1, 0, "Truly great - coffees that you found to be just a tier below the best - something truly exceptional."},
	{C, "#BAFFB3", 1, 1, "Great beans that almost made it to the categories above."},
	{D, "#BAE1FF", 2, 0, "Honorable mentions - whatever you desire on the chart that you can't place anywhere else."},
	{E, "#D8BFD8", 2, 1, "Best value! Choose something you fell in love with at a lower price."},
}

// Categories returns the categories in rank order.
func Categories() []Category {
	out := make([]Category, len(Tiers))
	for i, t := range Tiers {
		out[i] = t.Category
	}
	return out
}

// Lookup returns the table row for c.
func Lookup(c Category) (Tier, bool) {
	for _, t := range Tiers {
		if t.Category == c {
			return t, true
		}
	}
	return Tier{}, false
}

// ParseCategory accepts a category letter in either case.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := Lookup(c); !ok {
		return "", errors.New(errors.ErrCodeInvalidCategory, "unknown category %q (must be one of S, A, B, C, D, E)", s)
	}
	return c, nil
}

// Label is the table header used for a category, e.g. "S Coffees".
func (c Category) Label() string {
	return fmt.Sprintf("%s Coffees", c)
}

// Heading is the on-screen preview heading, e.g. "S Tier".
func (c Category) Heading() string {
	return fmt.Sprintf("%s Tier", c)
}

// NormalizeEntry trims surrounding whitespace. A blank result means the
// entry is absent. NormalizeEntry is idempotent.
func NormalizeEntry(s string) string {
	return strings.TrimSpace(s)
}

// Clean returns the non-blank entries of list, trimmed, in rank order.
// The result is never nil.
func Clean(list []string) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		if v := NormalizeEntry(e); v != "" {
			out = append(out, v)
		}
	}
	return out
}
