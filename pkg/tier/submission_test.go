package tier

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/coffeetier/pkg/errors"
)

func fullLists(entry string) map[Category][]string {
	lists := make(map[Category][]string)
	for _, c := range Categories() {
		lists[c] = []string{entry}
	}
	return lists
}

func TestValidateRejectsEmptyCategories(t *testing.T) {
	sub := NewSubmission("Ada", map[Category][]string{
		S: {"Kenya AA"},
		A: {},
		B: {"Ethiopian Yirgacheffe", "Colombian Supremo"},
		C: {}, D: {}, E: {},
	})

	err := sub.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if !errors.Is(err, errors.ErrCodeIncomplete) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeIncomplete)
	}
	if got := errors.UserMessage(err); got != IncompleteMessage {
		t.Errorf("message = %q, want %q", got, IncompleteMessage)
	}
	if diff := cmp.Diff([]Category{A, C, D, E}, sub.Missing()); diff != "" {
		t.Errorf("Missing() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateBlankOnlyCountsAsEmpty(t *testing.T) {
	lists := fullLists("X")
	lists[C] = []string{"  ", "", "\t"}
	if err := NewSubmission("Ada", lists).Validate(); err == nil {
		t.Error("whitespace-only category should fail validation")
	}
}

func TestValidateAcceptsOneEntryEach(t *testing.T) {
	sub := NewSubmission("Ada", fullLists("X"))
	if err := sub.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if got, want := sub.Filename(), "Ada_coffee_tier_list_2024.png"; got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
	for _, c := range Categories() {
		if got := sub.Entries(c); len(got) != 1 || got[0] != "X" {
			t.Errorf("Entries(%s) = %v", c, got)
		}
	}
}

func TestTitleAndFilenameKeepNameAsIs(t *testing.T) {
	tests := []struct {
		name      string
		wantTitle string
		wantFile  string
	}{
		{"Ada", "Ada's Amazing Coffee Year of 2024", "Ada_coffee_tier_list_2024.png"},
		{"", "'s Amazing Coffee Year of 2024", "_coffee_tier_list_2024.png"},
		{"Zoë & Co", "Zoë & Co's Amazing Coffee Year of 2024", "Zoë & Co_coffee_tier_list_2024.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := NewSubmission(tt.name, fullLists("X"))
			if got := sub.Title(); got != tt.wantTitle {
				t.Errorf("Title() = %q, want %q", got, tt.wantTitle)
			}
			if got := sub.Filename(); got != tt.wantFile {
				t.Errorf("Filename() = %q, want %q", got, tt.wantFile)
			}
		})
	}
}

func TestDraftSubmissionSnapshot(t *testing.T) {
	d := NewDraft()
	d.Name = "Ada"
	if err := d.Set(S, 2, "  Kenya AA "); err != nil {
		t.Fatal(err)
	}
	sub := d.Submission()

	// Later edits to the draft must not leak into the snapshot.
	if err := d.Set(S, 1, "Geisha"); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"Kenya AA"}, sub.Entries(S)); diff != "" {
		t.Errorf("Entries(S) mismatch (-want +got):\n%s", diff)
	}

	// Nor may callers mutate it through Entries.
	got := sub.Entries(S)
	got[0] = "changed"
	if sub.Entries(S)[0] != "Kenya AA" {
		t.Error("Entries returned shared backing storage")
	}
}

func TestDraftSetBounds(t *testing.T) {
	d := NewDraft()
	if err := d.Set(S, 0, "x"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("rank 0: err = %v", err)
	}
	if err := d.Set(S, Ranks+1, "x"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("rank 6: err = %v", err)
	}
	if err := d.Set("Z", 1, "x"); !errors.Is(err, errors.ErrCodeInvalidCategory) {
		t.Errorf("category Z: err = %v", err)
	}
	if err := d.Set(E, Ranks, "last"); err != nil {
		t.Errorf("rank 5: err = %v", err)
	}
	if got := d.Get(E, Ranks); got != "last" {
		t.Errorf("Get(E, 5) = %q", got)
	}
	if got := d.Get(E, 9); got != "" {
		t.Errorf("Get(E, 9) = %q, want empty", got)
	}
}

func TestDraftNormalize(t *testing.T) {
	d := &Draft{Entries: map[Category][]string{
		S:   {"1", "2", "3", "4", "5", "6"},
		A:   {"only"},
		"Z": {"dropped"},
	}}
	d.Normalize()

	if len(d.Entries) != len(Tiers) {
		t.Errorf("len(Entries) = %d, want %d", len(d.Entries), len(Tiers))
	}
	if diff := cmp.Diff([]string{"1", "2", "3", "4", "5"}, d.Entries[S]); diff != "" {
		t.Errorf("S mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"only", "", "", "", ""}, d.Entries[A]); diff != "" {
		t.Errorf("A mismatch (-want +got):\n%s", diff)
	}
	if _, ok := d.Entries["Z"]; ok {
		t.Error("unknown category survived Normalize")
	}
}
