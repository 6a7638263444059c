package seo

import (
	"encoding/json"

	"cultr.xyz/cultr-web/internal/content"
	"github.com/microcosm-cc/bluemonday"
)

// JSON marshals v to a compact JSON string. It returns an empty string on error.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// Organization returns a minimal Organization schema.
func Organization(name, url, logoURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	if logoURL != "" {
		m["logo"] = logoURL
	}
	return m
}

// WebSite returns a minimal WebSite schema.
func WebSite(name, url string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if url != "" {
		m["url"] = url
	}
	return m
}

var stripTags = bluemonday.StrictPolicy()

// FAQPage returns a FAQPage schema with plain-text answers, or nil when faq is empty.
func FAQPage(faq content.FAQ) map[string]any {
	if len(faq.Items) == 0 {
		return nil
	}
	el := make([]map[string]any, 0, len(faq.Items))
	for _, it := range faq.Items {
		el = append(el, map[string]any{
			"@type": "Question",
			"name":  it.Question,
			"acceptedAnswer": map[string]any{
				"@type": "Answer",
				"text":  stripTags.Sanitize(string(it.Answer)),
			},
		})
	}
	return map[string]any{
		"@context":   "https://schema.org",
		"@type":      "FAQPage",
		"mainEntity": el,
	}
}
