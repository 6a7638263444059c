package preview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"cultr.xyz/cultr-web/internal/content"
	"cultr.xyz/cultr-web/internal/landing"
	"cultr.xyz/cultr-web/internal/market"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func defaultSite(t *testing.T) content.Site {
	t.Helper()
	site, err := content.Default()
	require.NoError(t, err)
	return site
}

func newModel(t *testing.T) Model {
	t.Helper()
	return New(defaultSite(t), market.Quote{Symbol: "CULTR"})
}

func TestNavigateScrollsImmediately(t *testing.T) {
	m := newModel(t)
	m, cmd := send(t, m, key("a"))
	if cmd != nil {
		t.Fatalf("expected no deferred command for a plain navigation")
	}
	if m.State().Active != landing.SectionArt {
		t.Fatalf("active = %s", m.State().Active)
	}
	if m.Offset() != 800 || !m.State().Scrolled {
		t.Fatalf("offset %.0f scrolled %v", m.Offset(), m.State().Scrolled)
	}
}

func TestOpenFAQDefersScroll(t *testing.T) {
	m := newModel(t)
	m, _ = send(t, m, key("m"))
	m, cmd := send(t, m, key("f"))
	if cmd == nil {
		t.Fatalf("expected a deferred scroll")
	}
	st := m.State()
	if !st.FAQVisible || st.MenuOpen || st.Active != landing.SectionFAQ {
		t.Fatalf("state after open = %+v", st)
	}
	if m.Offset() != 0 {
		t.Fatalf("scrolled before the delay: %.0f", m.Offset())
	}

	m, _ = send(t, m, scrollMsg{token: m.token, target: landing.SectionFAQ})
	if m.Offset() != 1600 {
		t.Fatalf("offset = %.0f", m.Offset())
	}
}

func TestStaleScrollIsIgnored(t *testing.T) {
	m := newModel(t)
	m, _ = send(t, m, key("f"))
	stale := m.token
	m, _ = send(t, m, key("f")) // close before the tick
	if m.State().FAQVisible {
		t.Fatalf("faq should be hidden")
	}

	m, _ = send(t, m, scrollMsg{token: stale, target: landing.SectionFAQ})
	if m.Offset() != 0 {
		t.Fatalf("stale tick scrolled to %.0f", m.Offset())
	}
}

func TestScrollKeysCrossThreshold(t *testing.T) {
	m := newModel(t)
	for i := 0; i < 3; i++ {
		m, _ = send(t, m, key("j"))
	}
	if !m.State().Scrolled {
		t.Fatalf("offset %.0f should be past the threshold", m.Offset())
	}
	for i := 0; i < 5; i++ {
		m, _ = send(t, m, key("k"))
	}
	if m.Offset() != 0 || m.State().Scrolled {
		t.Fatalf("offset %.0f scrolled %v", m.Offset(), m.State().Scrolled)
	}
}

func TestViewShowsMenuAndFAQ(t *testing.T) {
	m := newModel(t)
	if !strings.Contains(m.View(), "☰") {
		t.Fatalf("closed menu icon missing")
	}
	m, _ = send(t, m, key("m"))
	if !strings.Contains(m.View(), "✕") {
		t.Fatalf("open menu icon missing")
	}
	m, _ = send(t, m, key("f"))
	site := defaultSite(t)
	if !strings.Contains(m.View(), site.FAQ.Items[0].Question) {
		t.Fatalf("faq questions missing from view")
	}
}

func TestQuitKey(t *testing.T) {
	_, cmd := send(t, newModel(t), key("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
