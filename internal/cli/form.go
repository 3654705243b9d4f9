package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/coffeetier/pkg/tier"
)

// =============================================================================
// FormModel - Interactive tier list entry
// =============================================================================

var (
	formLabelStyle = lipgloss.NewStyle().Foreground(colorGray).Width(4)
	formHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// formField identifies what an input edits: the name when cat is empty,
// otherwise one rank slot.
type formField struct {
	cat  tier.Category
	rank int
}

// FormModel is a bubbletea model with one text input for the display name and
// one per rank slot, in category order.
type FormModel struct {
	fields    []formField
	inputs    []textinput.Model
	focus     int
	Submitted bool
	Cancelled bool
}

// NewFormModel creates a form prefilled from d. A nil draft starts empty.
func NewFormModel(d *tier.Draft) FormModel {
	if d == nil {
		d = tier.NewDraft()
	}

	m := FormModel{}
	name := textinput.New()
	name.Placeholder = "Your name"
	name.Prompt = "> "
	name.Width = 40
	name.SetValue(d.Name)
	m.fields = append(m.fields, formField{})
	m.inputs = append(m.inputs, name)

	for _, c := range tier.Categories() {
		for rank := 1; rank <= tier.Ranks; rank++ {
			ti := textinput.New()
			ti.Placeholder = fmt.Sprintf("%s coffee #%d", c, rank)
			ti.Prompt = fmt.Sprintf("%d. ", rank)
			ti.Width = 40
			ti.SetValue(d.Get(c, rank))
			m.fields = append(m.fields, formField{cat: c, rank: rank})
			m.inputs = append(m.inputs, ti)
		}
	}

	m.inputs[0].Focus()
	return m
}

func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.Cancelled = true
			return m, tea.Quit
		case "ctrl+s":
			m.Submitted = true
			return m, tea.Quit
		case "enter":
			if m.focus == len(m.inputs)-1 {
				m.Submitted = true
				return m, tea.Quit
			}
			return m, m.moveFocus(1)
		case "tab", "down":
			return m, m.moveFocus(1)
		case "shift+tab", "up":
			return m, m.moveFocus(-1)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// moveFocus shifts focus by delta, wrapping at both ends.
func (m *FormModel) moveFocus(delta int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

// Focused reports the name or slot currently being edited, e.g. "name" or "S_1".
func (m FormModel) Focused() string {
	f := m.fields[m.focus]
	if f.cat == "" {
		return "name"
	}
	return fmt.Sprintf("%s_%d", f.cat, f.rank)
}

// Draft returns the values entered so far. Entries are kept raw; cleaning
// happens when the draft becomes a submission.
func (m FormModel) Draft() *tier.Draft {
	d := tier.NewDraft()
	for i, f := range m.fields {
		v := m.inputs[i].Value()
		if f.cat == "" {
			d.Name = v
			continue
		}
		_ = d.Set(f.cat, f.rank, v)
	}
	return d
}

func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Coffee Tier List " + fmt.Sprint(tier.Year)))
	b.WriteString("\n\n")
	b.WriteString(formLabelStyle.Render("Name") + "\n")
	b.WriteString(m.inputs[0].View() + "\n")

	i := 1
	for _, t := range tier.Tiers {
		header := lipgloss.NewStyle().
			Bold(true).
			Foreground(colorInk).
			Background(lipgloss.Color(t.Color)).
			Padding(0, 1).
			Render(t.Category.Heading())
		b.WriteString("\n" + header + " " + StyleDim.Render(t.Description) + "\n")
		for rank := 0; rank < tier.Ranks; rank++ {
			b.WriteString(m.inputs[i].View() + "\n")
			i++
		}
	}

	b.WriteString("\n")
	b.WriteString(formHelpStyle.Render("tab/↓ next • shift+tab/↑ previous • enter on last field or ctrl+s to save • esc to cancel"))
	b.WriteString("\n")
	return b.String()
}
