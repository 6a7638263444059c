package landing

import (
	"net/url"
	"time"
)

// ScrollThreshold is the vertical offset past which the header switches to its
// condensed, blurred style.
const ScrollThreshold = 50

// FAQExpandDelay gives the FAQ expand transition time to settle before the page
// scrolls to it.
const FAQExpandDelay = 120 * time.Millisecond

// State is the ephemeral UI state of one rendered page.
type State struct {
	Active     Section
	MenuOpen   bool
	FAQVisible bool
	Scrolled   bool
}

// InitialState is the state of a freshly loaded page.
func InitialState() State {
	return State{Active: SectionHome}
}

// Query encodes the state for links that must work without the live connection.
// Scrolled is a property of the client viewport and is not carried.
func (s State) Query() url.Values {
	q := url.Values{}
	if s.Active != "" && s.Active != SectionHome {
		q.Set("section", string(s.Active))
	}
	if s.MenuOpen {
		q.Set("menu", "1")
	}
	if s.FAQVisible {
		q.Set("faq", "1")
	}
	return q
}

// StateFromQuery is the inverse of Query. Missing keys fall back to InitialState.
func StateFromQuery(q url.Values) State {
	st := InitialState()
	if v := q.Get("section"); v != "" {
		st.Active = ParseSection(v)
	}
	st.MenuOpen = truthy(q.Get("menu"))
	st.FAQVisible = truthy(q.Get("faq"))
	return st
}

func truthy(v string) bool {
	switch v {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
