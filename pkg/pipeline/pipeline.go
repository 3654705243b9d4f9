// Package pipeline turns tier list drafts into downloadable images.
//
// The CLI and the web server both go through a [Runner] so that the
// completeness gate, logging and render hooks behave identically at every
// entry point.
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	art, err := runner.Generate(ctx, draft)
//	if errors.Is(err, errors.ErrCodeIncomplete) {
//	    // show errors.UserMessage(err) and keep the form
//	}
//	io.Copy(w, art.Data)
package pipeline

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/coffeetier/pkg/tier"
)

// MIMEType is the media type of every artifact.
const MIMEType = "image/png"

// Render kinds reported to observability hooks.
const (
	KindComposite = "composite"
	KindTable     = "table"
)

// Artifact is a rendered image ready to be written or served.
type Artifact struct {
	Filename string
	MIMEType string
	Data     *bytes.Reader
	Size     int64
}

func newArtifact(filename string, data *bytes.Reader) *Artifact {
	return &Artifact{
		Filename: filename,
		MIMEType: MIMEType,
		Data:     data,
		Size:     data.Size(),
	}
}

// PreviewTable is one category as shown on the preview page.
type PreviewTable struct {
	Category tier.Category
	Heading  string // "S Tier"
	Label    string // "S Coffees"
	Color    string
	Rows     []string
	Column   int // 0 for S, A, B and 1 for C, D, E
}

// previewRows is the number of categories stacked in one preview column.
const previewRows = 3

// Columns splits tables into the two preview columns, keeping order.
func Columns(tables []PreviewTable) [2][]PreviewTable {
	var cols [2][]PreviewTable
	for _, t := range tables {
		cols[t.Column] = append(cols[t.Column], t)
	}
	return cols
}

// tableFilename names a single-category image.
func tableFilename(name string, c tier.Category) string {
	return fmt.Sprintf("%s_%s_tier_%d.png", name, strings.ToLower(string(c)), tier.Year)
}
