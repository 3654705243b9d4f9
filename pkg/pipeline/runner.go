package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/coffeetier/pkg/errors"
	"github.com/matzehuels/coffeetier/pkg/observability"
	"github.com/matzehuels/coffeetier/pkg/render"
	"github.com/matzehuels/coffeetier/pkg/tier"
)

// Runner executes render requests.
//
// The Runner holds no per-request state. Multiple goroutines can safely use
// the same Runner.
type Runner struct {
	Logger  *log.Logger
	Options []render.Option
}

// NewRunner creates a runner. If logger is nil, the default logger is used.
func NewRunner(logger *log.Logger, opts ...render.Option) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger, Options: opts}
}

// Validate snapshots d and applies the completeness gate.
func (r *Runner) Validate(ctx context.Context, d *tier.Draft) (tier.Submission, error) {
	if d == nil {
		d = tier.NewDraft()
	}
	sub := d.Submission()
	missing := sub.Missing()
	observability.Render().OnValidation(ctx, len(missing))
	if err := sub.Validate(); err != nil {
		r.Logger.Debug("submission rejected", "missing", missing)
		return sub, err
	}
	return sub, nil
}

// Generate gates d and renders the composite report.
// An incomplete draft yields an INCOMPLETE_SUBMISSION error and no image.
func (r *Runner) Generate(ctx context.Context, d *tier.Draft) (*Artifact, error) {
	sub, err := r.Validate(ctx, d)
	if err != nil {
		return nil, err
	}
	data, err := r.run(ctx, KindComposite, func() (*bytes.Reader, error) {
		return render.Composite(sub, r.Options...)
	})
	if err != nil {
		return nil, err
	}
	return newArtifact(sub.Filename(), data), nil
}

// Table renders the single-category table for c from d. No gate applies;
// a category without entries renders header-only.
func (r *Runner) Table(ctx context.Context, c tier.Category, d *tier.Draft) (*Artifact, error) {
	t, ok := tier.Lookup(c)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidCategory, "unknown category %q", c)
	}
	if d == nil {
		d = tier.NewDraft()
	}
	sub := d.Submission()
	data, err := r.run(ctx, KindTable, func() (*bytes.Reader, error) {
		return render.Table(sub.Entries(c), c.Label(), t.Color, r.Options...)
	})
	if err != nil {
		return nil, err
	}
	return newArtifact(tableFilename(sub.Name(), c), data), nil
}

// CustomTable renders arbitrary rows under label on colorSpec. Rows are
// drawn as given.
func (r *Runner) CustomTable(ctx context.Context, rows []string, label, colorSpec string) (*Artifact, error) {
	data, err := r.run(ctx, KindTable, func() (*bytes.Reader, error) {
		return render.Table(rows, label, colorSpec, r.Options...)
	})
	if err != nil {
		return nil, err
	}
	return newArtifact(errors.SafeFilename(label, "table")+".png", data), nil
}

// Preview gates d and returns the six tables in display order.
func (r *Runner) Preview(ctx context.Context, d *tier.Draft) ([]PreviewTable, error) {
	sub, err := r.Validate(ctx, d)
	if err != nil {
		return nil, err
	}
	tables := make([]PreviewTable, 0, len(tier.Tiers))
	for i, c := range tier.Categories() {
		t, _ := tier.Lookup(c)
		tables = append(tables, PreviewTable{
			Category: c,
			Heading:  c.Heading(),
			Label:    c.Label(),
			Color:    t.Color,
			Rows:     sub.Entries(c),
			Column:   i / previewRows,
		})
	}
	return tables, nil
}

func (r *Runner) run(ctx context.Context, kind string, fn func() (*bytes.Reader, error)) (*bytes.Reader, error) {
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, kind)

	start := time.Now()
	data, err := fn()
	elapsed := time.Since(start)

	var size int
	if data != nil {
		size = int(data.Size())
	}
	hooks.OnRenderComplete(ctx, kind, size, elapsed, err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("rendered image", "kind", kind, "bytes", size, "duration", elapsed)
	return data, nil
}
