// Package landing holds the navigation state of the landing page: which section is
// active, whether the mobile menu and FAQ panel are open, and whether the page has
// scrolled past the header threshold.
package landing

import "strings"

// Section names a scrollable region of the page. Its value doubles as the DOM id.
type Section string

const (
	SectionHome Section = "home"
	SectionArt  Section = "art"
	SectionFAQ  Section = "faq"
)

// Sections lists the navigable sections in page order.
var Sections = []Section{SectionHome, SectionArt, SectionFAQ}

// ParseSection normalises a raw identifier. Unknown labels are kept as-is so that a
// navigation to a missing anchor degrades to a no-op scroll instead of an error.
func ParseSection(raw string) Section {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return SectionHome
	}
	return Section(s)
}

// Known reports whether s is one of the page's anchors.
func (s Section) Known() bool {
	for _, k := range Sections {
		if k == s {
			return true
		}
	}
	return false
}

func (s Section) String() string { return string(s) }
