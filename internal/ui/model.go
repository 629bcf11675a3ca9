package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"pkt.systems/pslog"

	"scrollstage/internal/clock"
	"scrollstage/internal/config"
	"scrollstage/internal/controller"
	"scrollstage/internal/domain"
	"scrollstage/internal/eventbus"
	"scrollstage/internal/logx"
	"scrollstage/internal/ui/views"
)

// ReadyMarker is written once the first frame can be drawn
const ReadyMarker = "__READY__"

// pointerID identifies the terminal's single mouse pointer
const pointerID = 0

// Deps are the collaborators the model mounts its sections with
type Deps struct {
	Bus   eventbus.EventBus
	Clock clock.Clock
	Log   pslog.Logger
	Dark  bool
	Ready io.Writer // receives ReadyMarker; nil disables it
}

// section pairs a mounted controller with its scroll position
type section struct {
	cfg      config.Section
	ctrl     *controller.Controller
	teardown func()
	scrolled float64
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	log    pslog.Logger

	sections []*section
	active   int

	// UI-specific state not held by the controllers
	width         int
	height        int
	dark          bool
	hovered       bool
	dragging      bool
	showInspector bool
	statusMessage string
	statusError   bool
	inPagerMode   bool
	ready         io.Writer

	keys     keyMap
	help     help.Model
	renderer *views.Renderer
	helpOps  *HelpOps

	updates chan tea.Msg

	// Program reference for terminal management
	program *tea.Program
}

// NewModel mounts one controller per configured section. If any section
// fails to mount, the ones already mounted are torn down.
func NewModel(cfg *config.Config, deps Deps) (*Model, error) {
	if deps.Log == nil {
		deps.Log = logx.Discard()
	}

	m := &Model{
		bus:      deps.Bus,
		config:   cfg,
		log:      deps.Log,
		dark:     deps.Dark,
		ready:    deps.Ready,
		keys:     newKeyMap(),
		help:     help.New(),
		renderer: views.NewRenderer(),
		updates:  make(chan tea.Msg, 64),
	}

	for i, sc := range cfg.Sections {
		ctrl, teardown, err := controller.Mount(sc.Options(), domain.NewItems(sc.Items), controller.Deps{
			Clock: deps.Clock,
			Bus:   deps.Bus,
			Log:   deps.Log,
			Dark:  deps.Dark,
		})
		if err != nil {
			m.Close()
			return nil, err
		}

		idx := i
		ctrl.Subscribe(func(s controller.Snapshot) { m.notify(snapshotMsg{section: idx, snapshot: s}) })
		m.sections = append(m.sections, &section{cfg: sc, ctrl: ctrl, teardown: teardown})
	}

	if len(m.sections) > 0 && m.sections[0].cfg.Kind == config.KindScroll {
		m.syncScroll(m.sections[0])
	}
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps = NewHelpOps(p)
}

// Updates carries controller notifications that happen outside Update.
// The caller forwards them to the program with Send.
func (m *Model) Updates() <-chan tea.Msg {
	return m.updates
}

// Close tears down every mounted section in reverse order
func (m *Model) Close() {
	for i := len(m.sections) - 1; i >= 0; i-- {
		m.sections[i].teardown()
	}
}

// notify never blocks; View always reads fresh snapshots, so a dropped
// notification only delays a redraw until the next message.
func (m *Model) notify(msg tea.Msg) {
	select {
	case m.updates <- msg:
	default:
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := m.width == 0
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if first && m.ready != nil {
			fmt.Fprintln(m.ready, ReadyMarker)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.BlurMsg:
		// Losing focus can swallow the release event
		m.releasePointer(true)
		m.setHover(false)
		return m, nil

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if len(m.sections) == 0 {
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}
	s := m.current()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.step(s.ctrl.Next())

	case key.Matches(msg, m.keys.Prev):
		target := s.ctrl.Prev()
		if s.cfg.Kind == config.KindScroll && s.scrolled <= 0 && s.ctrl.Snapshot().AtStart() {
			m.switchSection(m.active - 1)
			return m, nil
		}
		m.step(target)

	case key.Matches(msg, m.keys.First):
		m.step(s.ctrl.JumpTo(0))

	case key.Matches(msg, m.keys.Last):
		m.step(s.ctrl.JumpTo(len(s.cfg.Items) - 1))

	case key.Matches(msg, m.keys.Jump):
		idx := int(msg.Runes[0] - '1')
		if idx < len(s.cfg.Items) {
			m.step(s.ctrl.JumpTo(idx))
		}

	case key.Matches(msg, m.keys.NextSection):
		m.switchSection((m.active + 1) % len(m.sections))

	case key.Matches(msg, m.keys.PrevSection):
		m.switchSection((m.active - 1 + len(m.sections)) % len(m.sections))

	case key.Matches(msg, m.keys.Theme):
		m.setDark(!m.dark)

	case key.Matches(msg, m.keys.Inspector):
		m.showInspector = !m.showInspector

	case key.Matches(msg, m.keys.Help):
		if m.program == nil {
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		return m, m.fetchHelpPager(NewHelpRenderer().RenderHelpContentPlain())
	}
	return m, nil
}

// step applies the scroll target returned by a jump. Targets past the
// end of a scroll section hand over to the next section.
func (m *Model) step(target float64) {
	s := m.current()
	if s.cfg.Kind != config.KindScroll {
		return
	}
	if target > s.cfg.ScrollRange() {
		m.switchSection(m.active + 1)
		return
	}
	s.scrolled = target
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if len(m.sections) == 0 {
		return nil
	}
	s := m.current()
	x := float64(msg.X) * m.config.Input.CellWidthPx

	switch {
	case msg.Button == tea.MouseButtonWheelDown || msg.Button == tea.MouseButtonWheelUp:
		delta := m.config.Input.WheelStepPx
		if msg.Button == tea.MouseButtonWheelUp {
			delta = -delta
		}
		return m.wheel(delta)

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if m.inBody(msg.Y) && s.ctrl.PointerDown(pointerID, x) {
			m.dragging = true
		}

	case msg.Action == tea.MouseActionMotion:
		if m.dragging {
			s.ctrl.PointerMove(pointerID, x)
		}
		m.setHover(m.inBody(msg.Y))

	case msg.Action == tea.MouseActionRelease:
		m.releasePointer(false)
	}
	return nil
}

// wheel scrolls the active section. Scroll sections consume the delta
// until their range is exhausted; other sections pass it on as a
// section change.
func (m *Model) wheel(delta float64) tea.Cmd {
	s := m.current()
	if s.cfg.Kind != config.KindScroll {
		if delta > 0 {
			m.switchSection(m.active + 1)
		} else {
			m.switchSection(m.active - 1)
		}
		return nil
	}

	rng := s.cfg.ScrollRange()
	switch {
	case delta > 0 && s.scrolled >= rng:
		m.switchSection(m.active + 1)
		return nil
	case delta < 0 && s.scrolled <= 0:
		m.switchSection(m.active - 1)
		return nil
	}

	s.scrolled += delta
	if s.scrolled < 0 {
		s.scrolled = 0
	}
	if s.scrolled > rng {
		s.scrolled = rng
	}
	if !s.ctrl.OfferScroll(s.scrolled, rng) {
		return nil
	}
	idx := m.active
	return tea.Tick(m.config.FrameInterval(), func(time.Time) tea.Msg {
		return frameMsg{section: idx}
	})
}

func (m *Model) releasePointer(cancel bool) {
	if !m.dragging {
		return
	}
	m.dragging = false
	if cancel {
		m.current().ctrl.PointerCancel(pointerID)
	} else {
		m.current().ctrl.PointerUp(pointerID)
	}
}

func (m *Model) setHover(on bool) {
	if len(m.sections) == 0 || m.hovered == on {
		return
	}
	m.hovered = on
	if on {
		m.current().ctrl.HoverEnter()
	} else {
		m.current().ctrl.HoverLeave()
	}
}

// switchSection moves to section i. Out-of-range indexes are ignored so
// scrolling past the first or last section stops there.
func (m *Model) switchSection(i int) {
	if i < 0 || i >= len(m.sections) || i == m.active {
		return
	}
	m.releasePointer(true)
	hovered := m.hovered
	m.setHover(false)

	from := m.active
	m.active = i
	if hovered {
		m.setHover(true)
	}

	next := m.sections[i]
	if next.cfg.Kind == config.KindScroll {
		// Entering from below lands on the last step
		if i < from {
			next.scrolled = next.cfg.ScrollRange()
		} else {
			next.scrolled = 0
		}
		m.syncScroll(next)
	}
	m.log.Debug("section switched", "from", m.sections[from].cfg.Name, "to", next.cfg.Name)
}

func (m *Model) syncScroll(s *section) {
	if err := s.ctrl.ScrollTo(s.scrolled, s.cfg.ScrollRange()); err != nil {
		m.log.Warn("scroll sync failed", "section", s.cfg.Name, "err", err)
	}
}

// setDark publishes the theme signal; controllers pick it up from the bus
func (m *Model) setDark(dark bool) {
	m.dark = dark
	if m.bus != nil {
		m.bus.Publish(eventbus.ThemeChangedEvent{Dark: dark})
		return
	}
	for _, s := range m.sections {
		s.ctrl.SetDark(dark)
	}
}

func (m *Model) current() *section {
	return m.sections[m.active]
}

func (m *Model) inBody(y int) bool {
	return y >= views.HeaderHeight && y < m.height-views.FooterHeight
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.helpOps.ShowHelpInPager(helpContent)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if msg.section < len(m.sections) {
			m.sections[msg.section].ctrl.Frame()
		}
		return m, nil

	case snapshotMsg:
		// Redraw only; View reads fresh snapshots
		return m, nil

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case helpPagerMsg:
		if msg.err != nil {
			m.log.Warn("help pager failed", "err", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.statusMessage, m.statusError = "", false
		return m, nil

	default:
		return m, nil
	}
}

func (m *Model) handleEvent(e eventbus.DomainEvent) tea.Cmd {
	switch ev := e.(type) {
	case eventbus.GestureSettledEvent:
		if ev.Committed {
			return nil
		}
		m.statusMessage, m.statusError = fmt.Sprintf("%s: drag of %.0fpx snapped back", ev.Section, ev.Delta), false
	case eventbus.ThemeChangedEvent:
		m.dark = ev.Dark
		return nil
	case eventbus.ErrorEvent:
		m.statusMessage, m.statusError = ev.Message, true
	default:
		return nil
	}
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// Snapshot returns the active section's state
func (m *Model) Snapshot() controller.Snapshot {
	if len(m.sections) == 0 {
		return controller.Snapshot{}
	}
	return m.current().ctrl.Snapshot()
}

// Active returns the name of the active section
func (m *Model) Active() string {
	if len(m.sections) == 0 {
		return ""
	}
	return m.current().cfg.Name
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode || len(m.sections) == 0 {
		return ""
	}

	names := make([]string, len(m.sections))
	for i, s := range m.sections {
		names[i] = s.cfg.Name
	}
	s := m.current()

	return m.renderer.Render(views.ViewState{
		Width:         m.width,
		Height:        m.height,
		SectionNames:  names,
		Active:        m.active,
		Section:       views.SectionView{Kind: s.cfg.Kind, Snapshot: s.ctrl.Snapshot(), Items: s.ctrl.Items()},
		StatusMessage: m.statusMessage,
		StatusError:   m.statusError,
		ShowInspector: m.showInspector,
		ShowHelpBar:   m.config.UISettings.ShowHelpBar,
		HelpModel:     m.help,
		Keys:          m.keys,
		CellWidthPx:   m.config.Input.CellWidthPx,
	})
}
