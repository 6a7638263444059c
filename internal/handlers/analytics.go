package handlers

import "cultr.xyz/cultr-web/internal/config"

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	PlausibleDomain string // e.g. cultr.xyz
}

// Enabled reports whether any analytics script should be rendered.
func (a Analytics) Enabled() bool { return a.PlausibleDomain != "" }

// AnalyticsFromConfig builds Analytics from the loaded configuration.
func AnalyticsFromConfig(c config.AnalyticsConfig) Analytics {
	return Analytics{PlausibleDomain: c.PlausibleDomain}
}
