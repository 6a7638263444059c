package seo

import (
	"strings"

	"cultr.xyz/cultr-web/internal/content"
)

type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
}

type Twitter struct {
	Card  string
	Site  string
	Image string
}

type Meta struct {
	Title       string
	Description string
	Canonical   string
	OG          OpenGraph
	Twitter     Twitter
	// JSONLD holds pre-serialised schema.org blocks for the layout.
	JSONLD []string
}

// ForSite builds the landing page meta from the site copy. siteURL is the absolute
// origin (no trailing slash); when empty, canonical and absolute image URLs are omitted.
func ForSite(site content.Site, siteURL string) Meta {
	siteURL = strings.TrimRight(siteURL, "/")
	title := site.SEO.Title
	if title == "" {
		title = site.Brand
	}
	desc := site.SEO.Description
	if desc == "" {
		desc = site.Tagline
	}
	m := Meta{
		Title:       title,
		Description: desc,
		OG: OpenGraph{
			Title:       title,
			Description: desc,
			Image:       absolute(siteURL, site.SEO.OGImage),
			Type:        "website",
		},
		Twitter: Twitter{Card: "summary_large_image", Image: absolute(siteURL, site.SEO.OGImage)},
	}
	if siteURL != "" {
		m.Canonical = siteURL + "/"
		m.OG.URL = m.Canonical
	}
	m.JSONLD = []string{
		JSON(Organization(site.Brand, m.Canonical, absolute(siteURL, site.Logo.Src))),
		JSON(WebSite(site.Brand, m.Canonical)),
	}
	if faq := FAQPage(site.FAQ); faq != nil {
		m.JSONLD = append(m.JSONLD, JSON(faq))
	}
	return m
}

func absolute(base, path string) string {
	if path == "" || base == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return base + "/" + strings.TrimLeft(path, "/")
}
