package handlers

import (
	"html/template"

	"cultr.xyz/cultr-web/internal/components"
	"cultr.xyz/cultr-web/internal/content"
	"cultr.xyz/cultr-web/internal/landing"
	"cultr.xyz/cultr-web/internal/market"
	"cultr.xyz/cultr-web/internal/seo"
)

// HomeData is the view model for the landing page layout.
type HomeData struct {
	Lang      string
	SEO       seo.Meta
	JSONLD    []template.JS
	Analytics Analytics
	// LiveURL is where live.js connects; it carries the rendered state.
	LiveURL string
	Body    template.HTML
}

// BuildHomeData renders the page body for st and assembles the layout model.
func BuildHomeData(st landing.State, site content.Site, q market.Quote, meta seo.Meta, a Analytics) (HomeData, error) {
	body, err := components.Render(components.Page(st, site, q))
	if err != nil {
		return HomeData{}, err
	}
	ld := make([]template.JS, 0, len(meta.JSONLD))
	for _, block := range meta.JSONLD {
		if block != "" {
			ld = append(ld, template.JS(block))
		}
	}
	live := "/live"
	if enc := st.Query().Encode(); enc != "" {
		live += "?" + enc
	}
	return HomeData{
		Lang:      "en",
		SEO:       meta,
		JSONLD:    ld,
		Analytics: a,
		LiveURL:   live,
		Body:      template.HTML(body),
	}, nil
}
