package landing

import (
	"context"
	"sync"

	"cultr.xyz/cultr-web/internal/clock"
)

// ScrollBehavior mirrors the scrollIntoView behavior option.
type ScrollBehavior string

// ScrollSmooth is the behavior of every scroll the view performs.
const ScrollSmooth ScrollBehavior = "smooth"

// Element is a scroll target on the rendered page.
type Element interface {
	ScrollIntoView(behavior ScrollBehavior)
}

// Document resolves section anchors. Implementations must not call back into the View.
type Document interface {
	ElementByID(id string) (Element, bool)
}

// Window delivers vertical scroll offsets. OnScroll returns a release func that
// removes the listener; it must be safe to call more than once.
type Window interface {
	OnScroll(fn func(offset float64)) (release func())
}

// ChangeFunc observes every transition, including ones that leave the state unchanged.
type ChangeFunc func(action Action, prev, next State)

// Option configures a View.
type Option func(*View)

// WithState sets the state the view starts from.
func WithState(st State) Option {
	return func(v *View) { v.state = st }
}

// WithClock overrides the clock used for deferred scrolls.
func WithClock(c clock.Clock) Option {
	return func(v *View) {
		if c != nil {
			v.clock = c
		}
	}
}

// WithChangeFunc registers fn to be called after each transition, outside the view lock.
func WithChangeFunc(fn ChangeFunc) Option {
	return func(v *View) { v.onChange = fn }
}

// View owns the state of one rendered page and performs the effects Reduce asks for.
// All methods are safe for concurrent use; transitions are applied one at a time.
type View struct {
	mu       sync.Mutex
	state    State
	doc      Document
	clock    clock.Clock
	onChange ChangeFunc

	ctx     context.Context
	cancel  context.CancelFunc
	pending *deferredScroll
	release func()
	stop    func() bool
	mounted bool
	closed  bool
}

type deferredScroll struct {
	timer  clock.Timer
	cancel context.CancelFunc
}

// NewView builds a view over doc. It does not listen for scroll events until Mount.
func NewView(doc Document, opts ...Option) *View {
	ctx, cancel := context.WithCancel(context.Background())
	v := &View{
		state:  InitialState(),
		doc:    doc,
		clock:  clock.Real(),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mount subscribes to win's scroll events. The subscription and any pending deferred
// scroll are released by Close or when ctx is done, whichever happens first.
func (v *View) Mount(ctx context.Context, win Window) {
	v.mu.Lock()
	if v.closed || v.mounted {
		v.mu.Unlock()
		return
	}
	v.mounted = true
	v.mu.Unlock()

	var release func()
	if win != nil {
		release = win.OnScroll(v.HandleScroll)
	}

	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		if release != nil {
			release()
		}
		return
	}
	v.release = release
	if ctx != nil {
		v.stop = context.AfterFunc(ctx, v.Close)
	}
	v.mu.Unlock()
}

// State returns a snapshot of the current state.
func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Navigate handles a click on a navigation target.
func (v *View) Navigate(target Section) {
	v.apply(func(st State) Action { return Resolve(st, target) })
}

// ToggleMenu flips the mobile menu.
func (v *View) ToggleMenu() {
	v.Dispatch(Action{Kind: ActionToggleMenu})
}

// HandleScroll is the window scroll listener.
func (v *View) HandleScroll(offset float64) {
	v.Dispatch(Action{Kind: ActionScroll, Offset: offset})
}

// Dispatch applies a and runs its effects. Dispatching on a closed view is a no-op.
func (v *View) Dispatch(a Action) {
	v.apply(func(State) Action { return a })
}

// apply resolves the action against the state under the same lock that applies it,
// so the decision and the transition always see the same state.
func (v *View) apply(resolve func(State) Action) {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	prev := v.state
	a := resolve(prev)
	next, eff := Reduce(prev, a)
	v.state = next
	if eff.CancelPending {
		v.cancelPendingLocked()
	}
	if req := eff.Scroll; req != nil {
		if req.Delay <= 0 {
			v.scrollLocked(req.Target)
		} else {
			v.scheduleLocked(*req)
		}
	}
	onChange := v.onChange
	v.mu.Unlock()

	if onChange != nil {
		onChange(a, prev, next)
	}
}

// HasPendingScroll reports whether a deferred scroll is waiting to fire.
func (v *View) HasPendingScroll() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pending != nil
}

// Close cancels any deferred scroll and releases the scroll listener. It is idempotent.
func (v *View) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	v.cancelPendingLocked()
	release, stop := v.release, v.stop
	v.release, v.stop = nil, nil
	v.cancel()
	v.mu.Unlock()

	if stop != nil {
		stop()
	}
	if release != nil {
		release()
	}
}

func (v *View) scheduleLocked(req ScrollRequest) {
	// The token is captured here; a later transition or Close cancels it.
	token, cancel := context.WithCancel(v.ctx)
	var pending *deferredScroll
	timer := v.clock.AfterFunc(req.Delay, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if token.Err() != nil {
			return
		}
		if v.pending == pending {
			v.pending = nil
		}
		cancel()
		v.scrollLocked(req.Target)
	})
	pending = &deferredScroll{timer: timer, cancel: cancel}
	v.pending = pending
}

func (v *View) cancelPendingLocked() {
	if v.pending == nil {
		return
	}
	v.pending.cancel()
	v.pending.timer.Stop()
	v.pending = nil
}

func (v *View) scrollLocked(target Section) {
	if v.doc == nil {
		return
	}
	el, ok := v.doc.ElementByID(string(target))
	if !ok || el == nil {
		return
	}
	el.ScrollIntoView(ScrollSmooth)
}
