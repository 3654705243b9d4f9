package server

import (
	"embed"
	"fmt"
	"io"
	"io/fs"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/matzehuels/coffeetier/pkg/config"
	"github.com/matzehuels/coffeetier/pkg/pipeline"
	"github.com/matzehuels/coffeetier/pkg/tier"
)

//go:embed templates/*.html
var templateFiles embed.FS

// pages renders the form page. Operator HTML is sanitised once at startup.
type pages struct {
	index *pongo2.Template
	title string
	intro string
	rules string
}

func newPages(cfg config.PageConfig) (*pages, error) {
	sub, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		return nil, err
	}
	set := pongo2.NewSet("coffeetier", pongo2.NewFSLoader(sub))
	index, err := set.FromFile("index.html")
	if err != nil {
		return nil, fmt.Errorf("load index template: %w", err)
	}

	policy := bluemonday.UGCPolicy()
	return &pages{
		index: index,
		title: cfg.Title,
		intro: policy.Sanitize(cfg.IntroHTML),
		rules: policy.Sanitize(cfg.RulesHTML),
	}, nil
}

type fieldView struct {
	Name  string // form key, e.g. "S_1"
	Label string
	Value string
}

type tierView struct {
	Category    tier.Category
	Heading     string
	Description string
	Fields      []fieldView
}

type previewView struct {
	pipeline.PreviewTable
	ImageURL string
}

// pageData is what one render of the form page needs.
type pageData struct {
	Draft   *tier.Draft
	Error   string
	Preview []pipeline.PreviewTable
}

func fieldName(c tier.Category, rank int) string {
	return fmt.Sprintf("%s_%d", c, rank)
}

func tierViews(d *tier.Draft) []tierView {
	views := make([]tierView, 0, len(tier.Tiers))
	for _, t := range tier.Tiers {
		v := tierView{
			Category:    t.Category,
			Heading:     t.Category.Heading(),
			Description: t.Description,
		}
		for rank := 1; rank <= tier.Ranks; rank++ {
			v.Fields = append(v.Fields, fieldView{
				Name:  fieldName(t.Category, rank),
				Label: fmt.Sprintf("%s Coffee %d", t.Category, rank),
				Value: d.Get(t.Category, rank),
			})
		}
		views = append(views, v)
	}
	return views
}

func previewColumns(tables []pipeline.PreviewTable) [][]previewView {
	if len(tables) == 0 {
		return nil
	}
	var out [][]previewView
	for _, col := range pipeline.Columns(tables) {
		views := make([]previewView, 0, len(col))
		for _, t := range col {
			views = append(views, previewView{
				PreviewTable: t,
				ImageURL:     fmt.Sprintf("/tables/%s.png", t.Category),
			})
		}
		out = append(out, views)
	}
	return out
}

func (p *pages) render(w io.Writer, data pageData) error {
	d := data.Draft
	if d == nil {
		d = tier.NewDraft()
	}
	ctx := pongo2.Context{
		"title":       p.title,
		"title_color": tier.TitleColor,
		"intro":       p.intro,
		"rules":       p.rules,
		"name":        d.Name,
		"tiers":       tierViews(d),
		"error":       data.Error,
		"preview":     previewColumns(data.Preview),
	}
	if len(data.Preview) > 0 {
		ctx["download"] = d.Submission().Filename()
	}
	return p.index.ExecuteWriter(ctx, w)
}
