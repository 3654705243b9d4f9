package tier

import (
	"fmt"

	"github.com/matzehuels/coffeetier/pkg/errors"
)

// Draft is the editable form state: a display name and Ranks slots per
// category. Slots may be blank.
type Draft struct {
	Name    string                `json:"name" toml:"name" yaml:"name"`
	Entries map[Category][]string `json:"entries" toml:"entries" yaml:"entries"`
}

// NewDraft returns an empty draft with every slot allocated.
func NewDraft() *Draft {
	d := &Draft{Entries: make(map[Category][]string, len(Tiers))}
	for _, c := range Categories() {
		d.Entries[c] = make([]string, Ranks)
	}
	return d
}

// Normalize pads or truncates every category to exactly Ranks slots and
// drops unknown categories. Slot contents are left untouched.
func (d *Draft) Normalize() {
	entries := make(map[Category][]string, len(Tiers))
	for _, c := range Categories() {
		slots := make([]string, Ranks)
		copy(slots, d.Entries[c])
		entries[c] = slots
	}
	d.Entries = entries
}

// Set stores value in the given 1-based rank slot.
func (d *Draft) Set(c Category, rank int, value string) error {
	if _, ok := Lookup(c); !ok {
		return errors.New(errors.ErrCodeInvalidCategory, "unknown category %q", c)
	}
	if rank < 1 || rank > Ranks {
		return errors.New(errors.ErrCodeInvalidInput, "rank %d out of range 1..%d", rank, Ranks)
	}
	if d.Entries == nil || len(d.Entries[c]) != Ranks {
		d.Normalize()
	}
	d.Entries[c][rank-1] = value
	return nil
}

// Get returns the raw value of the given 1-based rank slot.
func (d *Draft) Get(c Category, rank int) string {
	slots := d.Entries[c]
	if rank < 1 || rank > len(slots) {
		return ""
	}
	return slots[rank-1]
}

// Submission snapshots the draft into an immutable submission.
func (d *Draft) Submission() Submission {
	lists := make(map[Category][]string, len(Tiers))
	for _, c := range Categories() {
		lists[c] = Clean(d.Entries[c])
	}
	return Submission{name: d.Name, lists: lists}
}

// Submission is a display name plus the cleaned list of every category.
// It is built by Draft.Submission or NewSubmission and is read-only.
type Submission struct {
	name  string
	lists map[Category][]string
}

// NewSubmission builds a submission from raw per-category lists.
// Lists are cleaned; missing categories are empty.
func NewSubmission(name string, lists map[Category][]string) Submission {
	d := Draft{Name: name, Entries: lists}
	return d.Submission()
}

// Name returns the display name exactly as entered.
func (s Submission) Name() string { return s.name }

// Entries returns a copy of the cleaned entries for c.
func (s Submission) Entries(c Category) []string {
	return append([]string(nil), s.lists[c]...)
}

// Title is the composite report headline.
func (s Submission) Title() string {
	return fmt.Sprintf("%s's Amazing Coffee Year of %d", s.name, Year)
}

// Filename is the name of the downloadable report.
func (s Submission) Filename() string {
	return fmt.Sprintf("%s_coffee_tier_list_%d.png", s.name, Year)
}

// Missing returns the categories without a single non-blank entry, in order.
func (s Submission) Missing() []Category {
	var out []Category
	for _, c := range Categories() {
		if len(s.lists[c]) == 0 {
			out = append(out, c)
		}
	}
	return out
}

// Validate enforces the generate-time gate: every category needs at least
// one non-blank entry. Nothing else is checked.
func (s Submission) Validate() error {
	if missing := s.Missing(); len(missing) > 0 {
		return errors.New(errors.ErrCodeIncomplete, IncompleteMessage)
	}
	return nil
}
