package organisms

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dohr-michael/scicalc/internal/calc"
)

// DisplayStyles configures the display panel.
type DisplayStyles struct {
	Box    lipgloss.Style
	Error  lipgloss.Style
	Memory lipgloss.Style
	Muted  lipgloss.Style
}

// DisplayPanel shows the memory indicator and the right-aligned display.
type DisplayPanel struct {
	output calc.Output
	failed bool
	width  int
	styles DisplayStyles
}

// NewDisplayPanel creates a display showing "0".
func NewDisplayPanel(styles DisplayStyles) DisplayPanel {
	return DisplayPanel{output: calc.Output{Display: "0"}, styles: styles}
}

// SetOutput updates what the display shows. failed renders it as an error.
func (p *DisplayPanel) SetOutput(out calc.Output, failed bool) {
	p.output = out
	p.failed = failed
}

// SetWidth sets the outer width, borders included.
func (p *DisplayPanel) SetWidth(w int) { p.width = w }

// View renders the panel.
func (p DisplayPanel) View() string {
	inner := p.width - p.styles.Box.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	text := p.output.Display
	if r := []rune(text); len(r) > inner {
		// Keep the least significant end visible, like a real display.
		text = "…" + string(r[len(r)-inner+1:])
	}
	if p.failed {
		text = p.styles.Error.Render(text)
	}

	mem := p.styles.Muted.Render(" ")
	if p.output.Memory != "" {
		mem = p.styles.Memory.Render(p.output.Memory)
	}

	body := strings.Join([]string{
		lipgloss.PlaceHorizontal(inner, lipgloss.Left, mem),
		lipgloss.PlaceHorizontal(inner, lipgloss.Right, text),
	}, "\n")
	return p.styles.Box.Width(p.width - p.styles.Box.GetHorizontalBorderSize()).Render(body)
}
