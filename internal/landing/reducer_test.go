package landing

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolvePicksFAQTransitionFromState(t *testing.T) {
	t.Parallel()

	require.Equal(t, ActionOpenFAQ, Resolve(State{}, SectionFAQ).Kind)
	require.Equal(t, ActionCloseFAQ, Resolve(State{FAQVisible: true}, SectionFAQ).Kind)

	a := Resolve(State{FAQVisible: true}, SectionArt)
	require.Equal(t, ActionNavigate, a.Kind)
	require.Equal(t, SectionArt, a.Target)
}

func TestReduceOpenFAQ(t *testing.T) {
	t.Parallel()

	next, eff := Reduce(State{Active: SectionHome, MenuOpen: true}, Action{Kind: ActionOpenFAQ})
	require.Equal(t, State{Active: SectionFAQ, FAQVisible: true}, next)
	require.True(t, eff.CancelPending)
	require.NotNil(t, eff.Scroll)
	require.Equal(t, SectionFAQ, eff.Scroll.Target)
	require.Equal(t, FAQExpandDelay, eff.Scroll.Delay)
}

func TestReduceCloseFAQ(t *testing.T) {
	t.Parallel()

	next, eff := Reduce(State{Active: SectionFAQ, FAQVisible: true, MenuOpen: true}, Action{Kind: ActionCloseFAQ})
	require.False(t, next.FAQVisible)
	require.False(t, next.MenuOpen)
	require.Equal(t, SectionHome, next.Active)
	require.Nil(t, eff.Scroll, "closing the FAQ never scrolls")
	require.True(t, eff.CancelPending)
}

func TestReduceNavigateScrollsImmediately(t *testing.T) {
	t.Parallel()

	next, eff := Reduce(State{Active: SectionHome, MenuOpen: true, FAQVisible: true}, Action{Kind: ActionNavigate, Target: SectionArt})
	require.Equal(t, SectionArt, next.Active)
	require.False(t, next.MenuOpen)
	require.True(t, next.FAQVisible, "navigating elsewhere leaves the FAQ panel alone")
	require.NotNil(t, eff.Scroll)
	require.Equal(t, SectionArt, eff.Scroll.Target)
	require.Zero(t, eff.Scroll.Delay)
}

func TestReduceScrollThreshold(t *testing.T) {
	t.Parallel()

	cases := []struct {
		offset float64
		want   bool
	}{
		{offset: 0, want: false},
		{offset: 49, want: false},
		{offset: 50, want: false},
		{offset: 51, want: true},
		{offset: 1200, want: true},
	}
	for _, tc := range cases {
		next, eff := Reduce(State{Scrolled: !tc.want}, Action{Kind: ActionScroll, Offset: tc.offset})
		require.Equal(t, tc.want, next.Scrolled, "offset %v", tc.offset)
		require.Nil(t, eff.Scroll)
	}
}

func TestReduceToggleMenuTwiceRestores(t *testing.T) {
	t.Parallel()

	start := InitialState()
	once, _ := Reduce(start, Action{Kind: ActionToggleMenu})
	require.True(t, once.MenuOpen)
	twice, _ := Reduce(once, Action{Kind: ActionToggleMenu})
	require.Equal(t, start, twice)
}

func TestStateQueryRoundTrip(t *testing.T) {
	t.Parallel()

	st := State{Active: SectionFAQ, MenuOpen: true, FAQVisible: true, Scrolled: true}
	got := StateFromQuery(st.Query())
	require.Equal(t, State{Active: SectionFAQ, MenuOpen: true, FAQVisible: true}, got)

	require.Equal(t, InitialState(), StateFromQuery(url.Values{}))
	require.Empty(t, InitialState().Query().Encode())
}

func TestParseSection(t *testing.T) {
	t.Parallel()

	require.Equal(t, SectionArt, ParseSection(" ART "))
	require.Equal(t, SectionHome, ParseSection(""))
	require.Equal(t, Section("team"), ParseSection("team"))
	require.False(t, Section("team").Known())
	require.True(t, SectionFAQ.Known())
}
