package landing

import "time"

// ActionKind names a state transition.
type ActionKind string

const (
	ActionOpenFAQ    ActionKind = "OPEN_FAQ"
	ActionCloseFAQ   ActionKind = "CLOSE_FAQ"
	ActionNavigate   ActionKind = "NAVIGATE"
	ActionToggleMenu ActionKind = "TOGGLE_MENU"
	ActionScroll     ActionKind = "SCROLL"
)

// Action is an input to Reduce.
type Action struct {
	Kind   ActionKind
	Target Section // NAVIGATE
	Offset float64 // SCROLL
}

// ScrollRequest asks the view to bring Target into the viewport after Delay.
// A zero Delay means immediately.
type ScrollRequest struct {
	Target Section
	Delay  time.Duration
}

// Effect describes the side effects of a transition. Reduce never performs them.
type Effect struct {
	// CancelPending drops any deferred scroll scheduled by an earlier transition.
	CancelPending bool
	Scroll        *ScrollRequest
}

// Resolve maps a click on a navigation target to the transition it triggers in st.
func Resolve(st State, target Section) Action {
	if target == SectionFAQ {
		if st.FAQVisible {
			return Action{Kind: ActionCloseFAQ}
		}
		return Action{Kind: ActionOpenFAQ}
	}
	return Action{Kind: ActionNavigate, Target: target}
}

// Reduce applies a to st.
func Reduce(st State, a Action) (State, Effect) {
	switch a.Kind {
	case ActionOpenFAQ:
		st.FAQVisible = true
		st.MenuOpen = false
		st.Active = SectionFAQ
		return st, Effect{
			CancelPending: true,
			Scroll:        &ScrollRequest{Target: SectionFAQ, Delay: FAQExpandDelay},
		}
	case ActionCloseFAQ:
		st.FAQVisible = false
		st.MenuOpen = false
		st.Active = SectionHome
		return st, Effect{CancelPending: true}
	case ActionNavigate:
		target := a.Target
		if target == "" {
			target = SectionHome
		}
		st.Active = target
		st.MenuOpen = false
		return st, Effect{
			CancelPending: true,
			Scroll:        &ScrollRequest{Target: target},
		}
	case ActionToggleMenu:
		st.MenuOpen = !st.MenuOpen
		return st, Effect{}
	case ActionScroll:
		st.Scrolled = a.Offset > ScrollThreshold
		return st, Effect{}
	}
	return st, Effect{}
}
