package nav

import (
	"net/url"

	"cultr.xyz/cultr-web/internal/landing"
)

// Item represents a top-level navigation item.
type Item struct {
	Section landing.Section
	Label   string
}

// RenderedItem is a view model for the header and mobile panel.
type RenderedItem struct {
	Section landing.Section
	Label   string
	// Href is the no-JS fallback: it applies the navigation server-side and redirects.
	Href   string
	Active bool
}

// Main is the primary navigation definition.
var Main = []Item{
	{Section: landing.SectionHome, Label: "Home"},
	{Section: landing.SectionArt, Label: "Art"},
	{Section: landing.SectionFAQ, Label: "FAQ"},
}

// Build renders navigation items with active state for st.
func Build(st landing.State) []RenderedItem {
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		items = append(items, RenderedItem{
			Section: it.Section,
			Label:   it.Label,
			Href:    Href(st, it.Section),
			Active:  st.Active == it.Section,
		})
	}
	return items
}

// Href returns the no-JS navigation URL for target from state st.
func Href(st landing.State, target landing.Section) string {
	return withQuery("/nav/"+url.PathEscape(string(target)), st)
}

// MenuHref returns the no-JS menu toggle URL from state st.
func MenuHref(st landing.State) string {
	return withQuery("/menu", st)
}

// PageURL returns the page URL that renders st, anchored at fragment when non-empty.
func PageURL(st landing.State, fragment string) string {
	u := withQuery("/", st)
	if fragment != "" {
		u += "#" + url.PathEscape(fragment)
	}
	return u
}

func withQuery(path string, st landing.State) string {
	if q := st.Query().Encode(); q != "" {
		return path + "?" + q
	}
	return path
}
