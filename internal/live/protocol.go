// Package live drives a landing.View over a websocket. The browser reports clicks and
// scroll offsets; the server answers with HTML patches and scroll instructions.
package live

import (
	"encoding/json"
	"fmt"
	"math"
)

// Client message types.
const (
	TypeNavigate   = "navigate"
	TypeToggleMenu = "toggle_menu"
	TypeScroll     = "scroll"
)

// Server message types. TypeScroll is shared: from the server it carries a target.
const (
	TypePatch = "patch"
	TypeError = "error"
)

// Message is the single JSON frame used in both directions.
type Message struct {
	Type     string  `json:"type"`
	Target   string  `json:"target,omitempty"`
	Offset   float64 `json:"offset,omitempty"`
	ID       string  `json:"id,omitempty"`
	HTML     string  `json:"html,omitempty"`
	Behavior string  `json:"behavior,omitempty"`
	Error    string  `json:"error,omitempty"`
}

func decodeClient(raw []byte) (Message, error) {
	var m Message
	if err := json.Unmarshal(raw, &m); err != nil {
		return Message{}, fmt.Errorf("live: decode message: %w", err)
	}
	switch m.Type {
	case TypeNavigate:
		if m.Target == "" {
			return Message{}, fmt.Errorf("live: navigate without target")
		}
	case TypeToggleMenu:
	case TypeScroll:
		if math.IsNaN(m.Offset) || math.IsInf(m.Offset, 0) {
			return Message{}, fmt.Errorf("live: invalid scroll offset")
		}
	default:
		return Message{}, fmt.Errorf("live: unknown message type %q", m.Type)
	}
	return m, nil
}
