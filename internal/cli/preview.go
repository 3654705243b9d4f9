package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/coffeetier/pkg/io"
	"github.com/matzehuels/coffeetier/pkg/pipeline"
)

// previewCellWidth keeps both columns the same width regardless of content.
const previewCellWidth = 28

// previewCommand creates the preview command that prints a draft as tables.
func (c *CLI) previewCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "preview FILE",
		Short:             "Print a draft as six tables in the terminal",
		Long:              `Print the cleaned entries of a draft in the same two-column arrangement as the web preview: S, A and B on the left, C, D and E on the right.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDraftFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runPreview(ctx context.Context, path string) error {
	draft, err := io.ReadFile(path)
	if err != nil {
		return err
	}
	tables, err := c.newRunner(renderFlags{}).Preview(ctx, draft)
	if err != nil {
		reportMissing(draft)
		return err
	}

	sub := draft.Submission()
	fmt.Println(StyleTitle.Render(sub.Title()))
	fmt.Println()
	fmt.Println(renderPreview(tables))
	printNextStep("Render it", "coffeetier render "+path)
	return nil
}

// renderPreview lays the tables out in two columns.
func renderPreview(tables []pipeline.PreviewTable) string {
	cols := pipeline.Columns(tables)
	blocks := make([]string, 0, len(cols))
	for _, col := range cols {
		parts := make([]string, 0, len(col))
		for _, t := range col {
			parts = append(parts, renderPreviewTable(t))
		}
		blocks = append(blocks, lipgloss.JoinVertical(lipgloss.Left, parts...))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks[0], "  ", blocks[1])
}

// renderPreviewTable draws one category with its header on the tier colour.
func renderPreviewTable(t pipeline.PreviewTable) string {
	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorInk).
		Background(lipgloss.Color(t.Color)).
		Width(previewCellWidth).
		Align(lipgloss.Center)
	rowStyle := lipgloss.NewStyle().Foreground(colorWhite).Width(previewCellWidth)

	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = []string{r}
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(t.Label).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return rowStyle
		})

	return StyleHighlight.Render(t.Heading) + "\n" + tbl.Render()
}
