package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/codemap/pkg/eval"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ScoreModel - Interactive archetype result browser
// =============================================================================

// ScoreModel is the bubbletea model for browsing evaluation results:
// a summary list on top, the selected archetype's full report below.
type ScoreModel struct {
	Rows    []eval.SummaryRow
	Results []eval.Result
	Cursor  int
}

// NewScoreModel creates a score browser over the given results.
func NewScoreModel(rows []eval.SummaryRow, results []eval.Result) ScoreModel {
	return ScoreModel{Rows: rows, Results: results}
}

func (m ScoreModel) Init() tea.Cmd {
	return nil
}

func (m ScoreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
			}
		}
	}
	return m, nil
}

func (m ScoreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Layout Score"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	for i, row := range m.Rows {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		verdict := StyleSuccess.Render(iconSuccess)
		if !row.Satisfied {
			verdict = styleIconError.Render(iconError)
		}
		b.WriteString(fmt.Sprintf("%s%s %s %s\n",
			cursor,
			verdict,
			style.Render(fmt.Sprintf("%-22s", row.Archetype.Name)),
			listDimStyle.Render(fmt.Sprintf("%3.0f%%", row.Score*100))))
	}

	if m.Cursor < len(m.Results) {
		b.WriteString("\n")
		b.WriteString(eval.FormatResult(m.Results[m.Cursor]))
	}
	return b.String()
}

// runScoreTUI runs the interactive score browser to completion.
func runScoreTUI(rows []eval.SummaryRow, results []eval.Result) error {
	_, err := tea.NewProgram(NewScoreModel(rows, results)).Run()
	return err
}
