package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/coffeetier/pkg/errors"
	"github.com/matzehuels/coffeetier/pkg/tier"
)

const tomlDraft = `
name = "Ada"

[entries]
S = ["Kenya AA", "Geisha"]
a = ["Yirgacheffe", "", "Sidamo", "Guji", "Limu", "Harrar"]
E = []
`

const yamlDraft = `
name: Ada
entries:
  S: [Kenya AA, Geisha]
  a: [Yirgacheffe, "", Sidamo, Guji, Limu, Harrar]
  E: []
`

const jsonDraft = `{
  "name": "Ada",
  "entries": {
    "S": ["Kenya AA", "Geisha"],
    "a": ["Yirgacheffe", "", "Sidamo", "Guji", "Limu", "Harrar"],
    "E": []
  }
}`

func TestRead(t *testing.T) {
	want := tier.NewDraft()
	want.Name = "Ada"
	want.Entries[tier.S] = []string{"Kenya AA", "Geisha", "", "", ""}
	want.Entries[tier.A] = []string{"Yirgacheffe", "", "Sidamo", "Guji", "Limu"}

	tests := []struct {
		format Format
		input  string
	}{
		{FormatTOML, tomlDraft},
		{FormatYAML, yamlDraft},
		{FormatJSON, jsonDraft},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Read() error: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("draft mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadRejects(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		code   errors.Code
	}{
		{"unknown category", FormatTOML, "[entries]\nZ = [\"x\"]\n", errors.ErrCodeInvalidCategory},
		{"malformed toml", FormatTOML, "name = ", errors.ErrCodeInvalidInput},
		{"malformed json", FormatJSON, "{", errors.ErrCodeInvalidInput},
		{"unknown format", Format("xml"), "<draft/>", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadEmptyYAML(t *testing.T) {
	d, err := Read(strings.NewReader(""), FormatYAML)
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if diff := cmp.Diff(tier.NewDraft(), d); diff != "" {
		t.Errorf("empty file should give a blank draft (-want +got):\n%s", diff)
	}
}

func TestWriteFileReadFile(t *testing.T) {
	d := tier.NewDraft()
	d.Name = "Zoë"
	_ = d.Set(tier.S, 1, "Kenya AA")
	_ = d.Set(tier.E, 5, "Instant")

	for _, ext := range []string{".toml", ".yaml", ".yml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "draft"+ext)
			if err := WriteFile(path, d); err != nil {
				t.Fatalf("WriteFile() error: %v", err)
			}
			got, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error: %v", err)
			}
			if diff := cmp.Diff(d, got); diff != "" {
				t.Errorf("draft changed on disk (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWriteDoesNotModifyDraft(t *testing.T) {
	d := &tier.Draft{Name: "Ada", Entries: map[tier.Category][]string{tier.S: {"x"}}}

	var buf bytes.Buffer
	if err := Write(&buf, d, FormatTOML); err != nil {
		t.Fatal(err)
	}
	if len(d.Entries) != 1 || len(d.Entries[tier.S]) != 1 {
		t.Errorf("Write modified the draft: %v", d.Entries)
	}
	for _, c := range tier.Categories() {
		if !strings.Contains(buf.String(), string(c)+" = ") {
			t.Errorf("output missing category %s:\n%s", c, buf.String())
		}
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"draft.toml", FormatTOML, false},
		{"dir/draft.YAML", FormatYAML, false},
		{"draft.yml", FormatYAML, false},
		{"draft.json", FormatJSON, false},
		{"draft.txt", "", true},
		{"draft", "", true},
	}
	for _, tt := range tests {
		got, err := DetectFormat(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("DetectFormat(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("DetectFormat(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}
