// Package components renders the landing page widgets. Every widget is a pure function
// of its properties; the stateful parts of the page take a landing.State.
package components

import (
	"bytes"

	g "maragu.dev/gomponents"
)

// Element ids replaced by live patches.
const (
	HeaderID    = "site-header"
	FAQID       = "faq"
	PriceCardID = "token-price-card"
)

// Render renders n to a string.
func Render(n g.Node) (string, error) {
	var buf bytes.Buffer
	if err := n.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
