package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"scrollstage/internal/controller"
	"scrollstage/internal/domain"
)

// Layout rows reserved above and below the section body
const (
	HeaderHeight = 2
	FooterHeight = 2
)

// SectionView is one section ready to draw
type SectionView struct {
	Kind     string // "scroll" or "drag"
	Snapshot controller.Snapshot
	Items    []domain.Item
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width         int
	Height        int
	SectionNames  []string
	Active        int
	Section       SectionView
	StatusMessage string
	StatusError   bool
	ShowInspector bool
	ShowHelpBar   bool
	HelpModel     help.Model
	Keys          help.KeyMap
	CellWidthPx   float64
}

// Renderer handles all view rendering
type Renderer struct {
	light *Styles
	dark  *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{
		light: NewStyles(false),
		dark:  NewStyles(true),
	}
}

// Styles returns the palette for the section's theme
func (r *Renderer) Styles(dark bool) *Styles {
	if dark {
		return r.dark
	}
	return r.light
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	s := r.Styles(state.Section.Snapshot.Dark)

	var b strings.Builder
	b.WriteString(r.renderHeader(s, state))
	b.WriteString("\n\n")

	var body string
	switch {
	case state.Section.Kind == "scroll":
		body = r.renderSteps(s, state)
	case state.Section.Snapshot.Circular:
		body = r.renderSlider(s, state)
	default:
		body = r.renderCards(s, state)
	}
	if state.ShowInspector {
		body = lipgloss.JoinVertical(lipgloss.Left, body, r.renderInspector(s, state.Section))
	}

	bodyHeight := state.Height - HeaderHeight - FooterHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	b.WriteString(lipgloss.NewStyle().Height(bodyHeight).MaxHeight(bodyHeight).Render(body))
	b.WriteString("\n")
	b.WriteString(r.renderFooter(s, state))
	return b.String()
}

func (r *Renderer) renderHeader(s *Styles, state ViewState) string {
	logo := s.Title.Render("scrollstage")

	tabs := make([]string, len(state.SectionNames))
	for i, name := range state.SectionNames {
		if i == state.Active {
			tabs[i] = s.TabActive.Render(name)
		} else {
			tabs[i] = s.Tab.Render(name)
		}
	}
	left := logo + "  " + strings.Join(tabs, "")

	snap := state.Section.Snapshot
	right := s.Dim.Render(domain.StepLabel(snap.Cursor.ActiveIndex, snap.Items))
	if snap.Autoplay.Enabled {
		if snap.Autoplay.Armed() {
			right = s.Playing.Render("▶ autoplay") + "  " + right
		} else {
			right = s.Paused.Render("⏸ paused") + "  " + right
		}
	}

	gap := state.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (r *Renderer) renderFooter(s *Styles, state ViewState) string {
	status := ""
	if state.StatusMessage != "" {
		if state.StatusError {
			status = s.StatusError.Render(state.StatusMessage)
		} else {
			status = s.Status.Render(state.StatusMessage)
		}
	}
	if !state.ShowHelpBar || state.Keys == nil {
		return status
	}
	return status + "\n" + s.Help.Render(state.HelpModel.View(state.Keys))
}

// renderSteps draws a scroll-driven section: progress bar, the active
// step and its position within the sequence
func (r *Renderer) renderSteps(s *Styles, state ViewState) string {
	snap := state.Section.Snapshot
	item := activeItem(state.Section)
	accent := s.AccentColor(item.Payload.Accent(snap.Dark))

	width := state.Width - 4
	if width < 10 {
		width = 10
	}
	bar := progress.New(
		progress.WithSolidFill(accent),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
	sub := progress.New(
		progress.WithSolidFill(accent),
		progress.WithoutPercentage(),
		progress.WithWidth(width/4),
	)

	number := item.Payload.Number
	if number == "" {
		number = fmt.Sprintf("%02d", item.Index+1)
	}

	card := lipgloss.JoinVertical(lipgloss.Left,
		s.Accent(accent).Render("Process · "+number),
		"",
		s.Accent(accent).Render(strings.ToUpper(item.Payload.Title)),
		"",
		s.Body.Render(item.Payload.Description),
		"",
		s.Dim.Render(domain.StepLabel(snap.Cursor.ActiveIndex, snap.Items))+"  "+sub.ViewAs(snap.Cursor.SubProgress),
	)
	card = s.Surface(s.Card.BorderForeground(lipgloss.Color(accent)), item.Payload.Background(snap.Dark)).Render(card)

	return lipgloss.JoinVertical(lipgloss.Left,
		bar.ViewAs(snap.Progress()),
		"",
		card,
		"",
		r.renderDots(s, snap, accent),
	)
}

// renderSlider draws the circular hero slider
func (r *Renderer) renderSlider(s *Styles, state ViewState) string {
	snap := state.Section.Snapshot
	item := activeItem(state.Section)
	accent := s.AccentColor(item.Payload.Accent(snap.Dark))

	card := lipgloss.JoinVertical(lipgloss.Left,
		s.Accent(accent).Render(item.Payload.Label),
		s.Dim.Render(item.Payload.Category),
	)
	card = s.Card.BorderForeground(lipgloss.Color(accent)).Render(card)

	return lipgloss.JoinVertical(lipgloss.Left,
		r.place(card, snap, state),
		"",
		r.renderDots(s, snap, accent),
	)
}

// renderCards draws the clamped service carousel with its step buttons
func (r *Renderer) renderCards(s *Styles, state ViewState) string {
	snap := state.Section.Snapshot
	item := activeItem(state.Section)
	accent := s.AccentColor(item.Payload.Accent(snap.Dark))

	card := lipgloss.JoinVertical(lipgloss.Left,
		s.Badge.Render(item.Payload.Label),
		"",
		s.Heading.Render(item.Payload.Title),
		s.Accent(accent).Render("──"),
		s.Body.Render(item.Payload.Description),
	)
	card = s.Card.Render(card)

	prev, next := s.Accent(accent).Render("‹ prev"), s.Accent(accent).Render("next ›")
	if snap.AtStart() {
		prev = s.Disabled.Render("‹ prev")
	}
	if snap.AtEnd() {
		next = s.Disabled.Render("next ›")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		r.place(card, snap, state),
		"",
		prev+"  "+r.renderDots(s, snap, accent)+"  "+next,
	)
}

// place centers a card and shifts it with the live drag offset
func (r *Renderer) place(card string, snap controller.Snapshot, state ViewState) string {
	track := snap.Track()
	left := (state.Width - lipgloss.Width(card)) / 2
	if state.CellWidthPx > 0 {
		left += int(track.DragOffsetPx / state.CellWidthPx)
	}
	if limit := state.Width - lipgloss.Width(card); left > limit {
		left = limit
	}
	if left < 0 {
		left = 0
	}
	return lipgloss.NewStyle().MarginLeft(left).Render(card)
}

func (r *Renderer) renderDots(s *Styles, snap controller.Snapshot, accent string) string {
	p := paginator.New()
	p.Type = paginator.Dots
	p.SetTotalPages(snap.Items)
	p.Page = snap.Cursor.ActiveIndex
	p.ActiveDot = s.Accent(accent).Render("━━")
	p.InactiveDot = s.Dim.Render(" • ")
	return p.View()
}

// renderInspector lists the animation targets of every item
func (r *Renderer) renderInspector(s *Styles, v SectionView) string {
	snap := v.Snapshot
	var b strings.Builder
	fmt.Fprintf(&b, "effect=%s dragging=%t hovered=%t\n", snap.Effect, snap.Dragging(), snap.Hovered)
	for i, p := range snap.Styles() {
		fmt.Fprintf(&b, "%d %-6s %s\n", i, snap.Relation(i), p.CSS())
	}
	if v.Kind == "drag" {
		b.WriteString("track " + snap.Track().CSS())
	}
	return s.Inspector.Render(strings.TrimRight(b.String(), "\n"))
}

func activeItem(v SectionView) domain.Item {
	i := v.Snapshot.Cursor.ActiveIndex
	if i < 0 || i >= len(v.Items) {
		return domain.Item{}
	}
	return v.Items[i]
}
