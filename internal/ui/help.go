package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// helpPagerMsg contains the result of a help pager command
type helpPagerMsg struct {
	err error
}

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys keyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{keys: newKeyMap()}
}

// RenderHelpContentPlain generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContentPlain() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	noteStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))

	groups := []struct {
		title string
		rows  [][2]string
	}{
		{"Keyboard", nil},
		{"Mouse", [][2]string{
			{"wheel", "Scroll the process steps; past either end moves to the neighbouring section"},
			{"drag", "Swipe slides and cards; release past the threshold to change item"},
			{"hover", "Pause the slider's autoplay"},
		}},
	}
	for _, column := range r.keys.FullHelp() {
		for _, b := range column {
			h := b.Help()
			groups[0].rows = append(groups[0].rows, [2]string{h.Key, h.Desc})
		}
	}

	var help strings.Builder
	help.WriteString(titleStyle.Render("scrollstage Help"))
	help.WriteString("\n")

	for _, g := range groups {
		help.WriteString(sectionStyle.Render(g.title))
		help.WriteString("\n")
		for _, row := range g.rows {
			help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", row[0])), descStyle.Render(row[1])))
		}
		help.WriteString("\n")
	}

	help.WriteString(noteStyle.Render("  Drags shorter than the threshold snap back without changing item."))
	return help.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Let ov finish restoring the screen before we take it back
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}
	return root.Run()
}
