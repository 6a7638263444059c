// Package preview is a terminal rendition of the landing page state machine.
package preview

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"cultr.xyz/cultr-web/internal/content"
	"cultr.xyz/cultr-web/internal/format"
	"cultr.xyz/cultr-web/internal/landing"
	"cultr.xyz/cultr-web/internal/market"
	"cultr.xyz/cultr-web/internal/nav"
)

const (
	scrollStep = 20
	maxLog     = 6
)

// sectionOffsets places the anchors on a virtual page.
var sectionOffsets = map[landing.Section]float64{
	landing.SectionHome: 0,
	landing.SectionArt:  800,
	landing.SectionFAQ:  1600,
}

// scrollMsg is the deferred scroll firing. It is ignored unless token is current.
type scrollMsg struct {
	token  int
	target landing.Section
}

// Model is the bubbletea model.
type Model struct {
	site   content.Site
	quote  market.Quote
	state  landing.State
	offset float64
	token  int
	events []string
	width  int
}

// New returns a model in the initial page state.
func New(site content.Site, q market.Quote) Model {
	return Model{site: site, quote: q, state: landing.InitialState()}
}

// State returns the current landing state.
func (m Model) State() landing.State { return m.state }

// Offset returns the virtual scroll offset.
func (m Model) Offset() float64 { return m.offset }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case scrollMsg:
		if msg.token != m.token {
			m.logf("stale scroll to %s dropped", msg.target)
			return m, nil
		}
		m.scrollTo(msg.target)
		return m, nil
	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "h":
		return m.navigate(landing.SectionHome)
	case "a":
		return m.navigate(landing.SectionArt)
	case "f":
		return m.navigate(landing.SectionFAQ)
	case "m":
		return m.dispatch(landing.Action{Kind: landing.ActionToggleMenu})
	case "j", "down":
		return m.scrollBy(scrollStep)
	case "k", "up":
		return m.scrollBy(-scrollStep)
	}
	return m, nil
}

func (m Model) navigate(target landing.Section) (tea.Model, tea.Cmd) {
	return m.dispatch(landing.Resolve(m.state, target))
}

func (m Model) scrollBy(delta float64) (tea.Model, tea.Cmd) {
	m.offset += delta
	if m.offset < 0 {
		m.offset = 0
	}
	return m.dispatch(landing.Action{Kind: landing.ActionScroll, Offset: m.offset})
}

func (m Model) dispatch(a landing.Action) (tea.Model, tea.Cmd) {
	next, eff := landing.Reduce(m.state, a)
	m.state = next
	if a.Kind != landing.ActionScroll {
		m.logf("%s", describe(a))
	}
	if eff.CancelPending {
		// Any in-flight tick now carries a stale token.
		m.token++
	}
	req := eff.Scroll
	if req == nil {
		return m, nil
	}
	if req.Delay <= 0 {
		m.scrollTo(req.Target)
		return m, nil
	}
	token, target := m.token, req.Target
	m.logf("scroll to %s in %s", target, req.Delay)
	return m, tea.Tick(req.Delay, func(time.Time) tea.Msg {
		return scrollMsg{token: token, target: target}
	})
}

// scrollTo moves the viewport and feeds the new offset back as a scroll event, as the
// browser's listener would. Unknown targets have no anchor and are skipped.
func (m *Model) scrollTo(target landing.Section) {
	off, ok := sectionOffsets[target]
	if !ok {
		m.logf("no anchor for %s", target)
		return
	}
	m.offset = off
	m.state, _ = landing.Reduce(m.state, landing.Action{Kind: landing.ActionScroll, Offset: off})
	m.logf("scrolled to %s", target)
}

func (m *Model) logf(format string, args ...any) {
	m.events = append(m.events, fmt.Sprintf(format, args...))
	if len(m.events) > maxLog {
		m.events = m.events[len(m.events)-maxLog:]
	}
}

func describe(a landing.Action) string {
	if a.Target != "" {
		return fmt.Sprintf("%s %s", a.Kind, a.Target)
	}
	return string(a.Kind)
}

var (
	colorCyan  = lipgloss.Color("#22d3ee")
	colorMuted = lipgloss.Color("#7f849c")
	colorText  = lipgloss.Color("#cdd6f4")

	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	activeStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
	scrolledBar  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(colorCyan)
	questionLine = lipgloss.NewStyle().Foreground(colorText)
)

func (m Model) View() string {
	var b strings.Builder

	var tabs []string
	for _, it := range nav.Build(m.state) {
		if it.Active {
			tabs = append(tabs, activeStyle.Render(it.Label))
		} else {
			tabs = append(tabs, mutedStyle.Render(it.Label))
		}
	}
	icon := "☰"
	if m.state.MenuOpen {
		icon = "✕"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		brandStyle.Render(m.site.Brand), "   ", strings.Join(tabs, "  "), "   ", icon)
	if m.state.Scrolled {
		header = scrolledBar.Render(header)
	}
	b.WriteString(header + "\n")

	if m.state.MenuOpen {
		var items []string
		for _, it := range nav.Main {
			items = append(items, it.Label)
		}
		b.WriteString(panelStyle.Render(strings.Join(items, "\n")) + "\n")
	}

	price := format.Placeholder
	mcap := format.Placeholder
	if m.quote.Available {
		price = format.USDPrice(m.quote.PriceUSD) + " " + format.Percent(m.quote.Change24h)
		mcap = format.CompactUSD(m.quote.MarketCapUSD)
	}
	b.WriteString(fmt.Sprintf("\n%s %s\n%s\n", m.site.Hero.MarketCapLabel, mcap, price))

	if m.state.FAQVisible {
		var qs []string
		for _, it := range m.site.FAQ.Items {
			qs = append(qs, questionLine.Render("▸ "+it.Question))
		}
		b.WriteString("\n" + panelStyle.Render(activeStyle.Render(m.site.FAQ.Title)+"\n"+strings.Join(qs, "\n")) + "\n")
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("\noffset %.0f  scrolled %v\n", m.offset, m.state.Scrolled)))
	for _, e := range m.events {
		b.WriteString(mutedStyle.Render("· "+e) + "\n")
	}
	b.WriteString(mutedStyle.Render("\nh/a/f navigate · m menu · j/k scroll · q quit"))
	return b.String()
}
