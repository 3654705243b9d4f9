package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/coffeetier/pkg/errors"
	"github.com/matzehuels/coffeetier/pkg/tier"
)

// Write encodes d in the given format to w. Every category is written with
// exactly [tier.Ranks] slots; d itself is not modified.
func Write(w io.Writer, d *tier.Draft, format Format) error {
	doc := toDocument(d)
	var err error
	switch format {
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(doc); err == nil {
			err = enc.Close()
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(doc)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode %s draft: %w", format, err)
	}
	return nil
}

// WriteFile writes d to path, choosing the format from its extension.
func WriteFile(path string, d *tier.Draft) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, d, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
