package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/coffeetier/pkg/errors"
	"github.com/matzehuels/coffeetier/pkg/tier"
)

// Format is a draft file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatTOML, FormatYAML, FormatJSON}

// ParseFormat accepts a format name or a bare extension ("yml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), ".")) {
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (must be toml, yaml or json)", s)
}

// DetectFormat picks the format from the extension of path.
func DetectFormat(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.New(errors.ErrCodeInvalidFormat, "cannot detect format of %q: no extension", path)
	}
	return ParseFormat(ext)
}

// document is the on-disk shape of a draft.
type document struct {
	Name    string              `json:"name" toml:"name" yaml:"name"`
	Entries map[string][]string `json:"entries" toml:"entries" yaml:"entries"`
}

func toDocument(d *tier.Draft) document {
	c := *d
	c.Normalize()
	doc := document{Name: c.Name, Entries: make(map[string][]string, len(c.Entries))}
	for cat, slots := range c.Entries {
		doc.Entries[string(cat)] = slots
	}
	return doc
}

func (doc document) draft() (*tier.Draft, error) {
	d := tier.NewDraft()
	d.Name = doc.Name
	for key, slots := range doc.Entries {
		c, err := tier.ParseCategory(key)
		if err != nil {
			return nil, err
		}
		d.Entries[c] = slots
	}
	d.Normalize()
	return d, nil
}
