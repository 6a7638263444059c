package landing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cultr.xyz/cultr-web/internal/clock"
)

type scrollCall struct {
	id       string
	behavior ScrollBehavior
}

type fakeDocument struct {
	mu    sync.Mutex
	ids   map[string]bool
	calls []scrollCall
}

func newFakeDocument(ids ...string) *fakeDocument {
	d := &fakeDocument{ids: map[string]bool{}}
	for _, id := range ids {
		d.ids[id] = true
	}
	return d
}

func (d *fakeDocument) ElementByID(id string) (Element, bool) {
	if !d.ids[id] {
		return nil, false
	}
	return fakeElement{doc: d, id: id}, true
}

func (d *fakeDocument) Calls() []scrollCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]scrollCall(nil), d.calls...)
}

type fakeElement struct {
	doc *fakeDocument
	id  string
}

func (e fakeElement) ScrollIntoView(b ScrollBehavior) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	e.doc.calls = append(e.doc.calls, scrollCall{id: e.id, behavior: b})
}

type fakeWindow struct {
	mu        sync.Mutex
	listeners map[int]func(float64)
	next      int
	released  int
}

func newFakeWindow() *fakeWindow {
	return &fakeWindow{listeners: map[int]func(float64){}}
}

func (w *fakeWindow) OnScroll(fn func(float64)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.next
	w.next++
	w.listeners[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			w.mu.Lock()
			defer w.mu.Unlock()
			delete(w.listeners, id)
			w.released++
		})
	}
}

func (w *fakeWindow) Scroll(y float64) {
	w.mu.Lock()
	fns := make([]func(float64), 0, len(w.listeners))
	for _, fn := range w.listeners {
		fns = append(fns, fn)
	}
	w.mu.Unlock()
	for _, fn := range fns {
		fn(y)
	}
}

func (w *fakeWindow) Listeners() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.listeners)
}

func newTestView(t *testing.T, doc Document, opts ...Option) (*View, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(time.Unix(0, 0))
	v := NewView(doc, append([]Option{WithClock(clk)}, opts...)...)
	t.Cleanup(v.Close)
	return v, clk
}

func TestViewOpenFAQScrollsAfterDelay(t *testing.T) {
	t.Parallel()

	doc := newFakeDocument("home", "art", "faq")
	v, clk := newTestView(t, doc, WithState(State{Active: SectionHome, MenuOpen: true}))

	v.Navigate(SectionFAQ)

	st := v.State()
	require.True(t, st.FAQVisible)
	require.False(t, st.MenuOpen)
	require.Equal(t, SectionFAQ, st.Active)
	require.Empty(t, doc.Calls(), "scroll waits for the expand transition")
	require.True(t, v.HasPendingScroll())

	clk.Advance(FAQExpandDelay - time.Millisecond)
	require.Empty(t, doc.Calls())

	clk.Advance(time.Millisecond)
	require.Equal(t, []scrollCall{{id: "faq", behavior: ScrollSmooth}}, doc.Calls())
	require.False(t, v.HasPendingScroll())
}

func TestViewCloseFAQDoesNotScroll(t *testing.T) {
	t.Parallel()

	doc := newFakeDocument("home", "art", "faq")
	v, clk := newTestView(t, doc, WithState(State{Active: SectionFAQ, FAQVisible: true}))

	v.Navigate(SectionFAQ)

	st := v.State()
	require.False(t, st.FAQVisible)
	require.Equal(t, SectionHome, st.Active)
	clk.Advance(time.Second)
	require.Empty(t, doc.Calls())
}

func TestViewNavigateScrollsImmediately(t *testing.T) {
	t.Parallel()

	doc := newFakeDocument("home", "art", "faq")
	v, _ := newTestView(t, doc, WithState(State{Active: SectionHome, MenuOpen: true}))

	v.Navigate(SectionArt)

	st := v.State()
	require.Equal(t, SectionArt, st.Active)
	require.False(t, st.MenuOpen)
	require.Equal(t, []scrollCall{{id: "art", behavior: ScrollSmooth}}, doc.Calls())
}

func TestViewNavigateToMissingElementIsNoop(t *testing.T) {
	t.Parallel()

	doc := newFakeDocument("home")
	v, clk := newTestView(t, doc)

	require.NotPanics(t, func() {
		v.Navigate(Section("team"))
		v.Navigate(SectionFAQ)
		clk.Advance(time.Second)
	})
	require.Empty(t, doc.Calls())

	bare, _ := newTestView(t, nil)
	require.NotPanics(t, func() { bare.Navigate(SectionArt) })
}

func TestViewRapidFAQToggleCancelsStaleScroll(t *testing.T) {
	t.Parallel()

	doc := newFakeDocument("faq")
	v, clk := newTestView(t, doc)

	v.Navigate(SectionFAQ) // open, schedules
	v.Navigate(SectionFAQ) // close before it fires
	require.False(t, v.HasPendingScroll())
	require.Zero(t, clk.Pending())

	clk.Advance(time.Second)
	require.Empty(t, doc.Calls())

	v.Navigate(SectionFAQ) // reopen schedules a fresh scroll
	clk.Advance(FAQExpandDelay)
	require.Len(t, doc.Calls(), 1)
}

func TestViewCloseCancelsPendingScroll(t *testing.T) {
	t.Parallel()

	doc := newFakeDocument("faq")
	v, clk := newTestView(t, doc)

	v.Navigate(SectionFAQ)
	v.Close()
	clk.Advance(time.Second)
	require.Empty(t, doc.Calls())

	v.Navigate(SectionArt)
	require.Equal(t, SectionFAQ, v.State().Active, "closed views ignore input")
}

func TestViewScrollListenerLifecycle(t *testing.T) {
	t.Parallel()

	doc := newFakeDocument()
	win := newFakeWindow()
	v, _ := newTestView(t, doc)

	v.Mount(context.Background(), win)
	v.Mount(context.Background(), win)
	require.Equal(t, 1, win.Listeners(), "mount subscribes once")

	win.Scroll(51)
	require.True(t, v.State().Scrolled)
	win.Scroll(49)
	require.False(t, v.State().Scrolled)

	v.Close()
	v.Close()
	require.Zero(t, win.Listeners())
	require.Equal(t, 1, win.released)
}

func TestViewContextCancellationTearsDown(t *testing.T) {
	t.Parallel()

	doc := newFakeDocument("faq")
	win := newFakeWindow()
	v, clk := newTestView(t, doc)

	ctx, cancel := context.WithCancel(context.Background())
	v.Mount(ctx, win)
	v.Navigate(SectionFAQ)
	cancel()

	require.Eventually(t, func() bool { return win.Listeners() == 0 }, time.Second, 5*time.Millisecond)
	clk.Advance(time.Second)
	require.Empty(t, doc.Calls())
}

func TestViewChangeFuncSeesEveryTransition(t *testing.T) {
	t.Parallel()

	var kinds []ActionKind
	v, _ := newTestView(t, newFakeDocument(), WithChangeFunc(func(a Action, prev, next State) {
		kinds = append(kinds, a.Kind)
	}))

	v.ToggleMenu()
	v.Navigate(SectionFAQ)
	v.Navigate(SectionFAQ)
	v.Navigate(SectionArt)
	v.HandleScroll(10)
	v.HandleScroll(10)

	require.Equal(t, []ActionKind{
		ActionToggleMenu, ActionOpenFAQ, ActionCloseFAQ, ActionNavigate, ActionScroll, ActionScroll,
	}, kinds)
}
