package components

import (
	"fmt"
	"html/template"

	"cultr.xyz/cultr-web/internal/content"
	"cultr.xyz/cultr-web/internal/landing"
	"cultr.xyz/cultr-web/internal/market"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"
)

// ClickableImage opens the full-size image in a new tab.
type ClickableImage struct {
	Src   string
	Alt   string
	Class string
}

func (ci ClickableImage) Node() g.Node {
	return A(
		Class("clickable-image block cursor-zoom-in"),
		Href(ci.Src),
		Target("_blank"),
		Rel("noopener"),
		Img(
			Src(ci.Src),
			Alt(ci.Alt),
			g.If(ci.Class != "", Class(ci.Class)),
			g.Attr("loading", "lazy"),
		),
	)
}

// HomeSection is the hero: logo, title, tagline, the market card and the top art.
func HomeSection(site content.Site, q market.Quote) g.Node {
	return Section(
		ID(string(landing.SectionHome)),
		Class("min-h-screen flex flex-col items-center justify-center px-6 pt-20"),
		Div(
			Class("relative group"),
			ClickableImage{
				Src:   site.Logo.Src,
				Alt:   site.Logo.Alt,
				Class: "relative w-40 h-40 rounded-full object-cover border-4 border-white/10",
			}.Node(),
		),
		H1(Class("mt-8 text-6xl md:text-8xl font-black tracking-tighter text-white"), g.Text(site.Brand)),
		P(Class("text-xl md:text-2xl text-gray-400 mt-4 font-light"), g.Text(site.Tagline)),
		Div(
			Class("mt-16 w-full max-w-2xl space-y-6"),
			PriceCard(site.Hero.MarketCapLabel, q),
			Div(
				Class("text-center"),
				H3(Class("text-2xl font-bold mb-6 text-white"), g.Text(site.Hero.TopArtTitle)),
				Div(
					Class("group relative rounded-2xl transition-all duration-300"),
					ClickableImage{
						Src:   site.Hero.TopArt.Src,
						Alt:   site.Hero.TopArt.Alt,
						Class: "relative w-full rounded-2xl transform transition-transform duration-500",
					}.Node(),
				),
			),
		),
	)
}

// ArtImage returns the image path of carousel item n.
func ArtImage(n int) string {
	return fmt.Sprintf("/assets/images/art/%d.svg", n)
}

// ArtCarousel renders one slide per item as a horizontally scrolling strip.
func ArtCarousel(items []int) g.Node {
	return Div(
		Class("art-carousel flex gap-6 overflow-x-auto snap-x snap-mandatory pb-4"),
		Aria("label", "Art carousel"),
		g.Attr("role", "region"),
		g.Map(items, func(n int) g.Node {
			return Figure(
				Class("snap-center shrink-0 w-72 md:w-96"),
				Data("item", fmt.Sprint(n)),
				ClickableImage{
					Src:   ArtImage(n),
					Alt:   fmt.Sprintf("CULTR art #%d", n),
					Class: "w-full aspect-square rounded-2xl object-cover border border-white/10",
				}.Node(),
			)
		}),
	)
}

// ArtSection is the gallery section.
func ArtSection(site content.Site) g.Node {
	return Section(
		ID(string(landing.SectionArt)),
		Class("min-h-screen flex flex-col items-center justify-center px-6 py-20"),
		H2(Class("text-5xl md:text-6xl font-black mb-4 text-center text-white"), g.Text(site.Art.Title)),
		P(Class("text-gray-400 text-lg mb-16 text-center max-w-2xl"), g.Text(site.Art.Subtitle)),
		Div(Class("w-full max-w-7xl"), ArtCarousel(site.Art.Items)),
	)
}

// FAQSection renders the accordion; it collapses to zero height while hidden.
func FAQSection(st landing.State, faq content.FAQ) g.Node {
	return Section(
		ID(FAQID),
		c.Classes{
			"transition-all duration-500 overflow-hidden": true,
			"min-h-screen flex flex-col items-center justify-center px-6 py-20 opacity-100": st.FAQVisible,
			"max-h-0 px-6 py-0 opacity-0": !st.FAQVisible,
		},
		Data("visible", boolAttr(st.FAQVisible)),
		g.If(!st.FAQVisible, Aria("hidden", "true")),
		H2(Class("text-5xl md:text-6xl font-black mb-16 text-center text-white"), g.Text(faq.Title)),
		Div(
			Class("w-full max-w-3xl space-y-4"),
			g.Map(faq.Items, func(it content.FAQItem) g.Node {
				return Details(
					Class("group bg-white/5 backdrop-blur-sm rounded-xl p-6 transition-all duration-300 hover:shadow-xl"),
					Summary(
						Class("font-bold text-lg cursor-pointer list-none flex items-center justify-between text-gray-200 group-hover:text-cyan-400 transition-colors"),
						g.Text(it.Question),
						Span(Class("ml-4 transform group-open:rotate-180 transition-transform"), Aria("hidden", "true"), g.Text("▼")),
					),
					Div(Class("faq-answer text-gray-400 mt-4 leading-relaxed"), rawHTML(it.Answer)),
				)
			}),
		),
	)
}

// SiteFooter renders the footer note and outbound links.
func SiteFooter(site content.Site) g.Node {
	return Footer(
		Class("border-t border-white/10 py-10 px-6 text-center text-gray-500"),
		Div(
			Class("flex justify-center gap-6 mb-4"),
			g.Map(site.Footer.Links, func(l content.Link) g.Node {
				return A(Class("hover:text-cyan-400 transition-colors"), Href(l.Href), Target("_blank"), Rel("noopener noreferrer"), g.Text(l.Label))
			}),
		),
		g.If(site.Footer.Note != "", P(Class("text-sm"), g.Text(site.Footer.Note))),
	)
}

// Page is the full page body below <body>.
func Page(st landing.State, site content.Site, q market.Quote) g.Node {
	return Div(
		Class("bg-black text-white min-h-screen relative overflow-x-hidden"),
		Div(Class("fixed inset-0 pointer-events-none")),
		SiteHeader(st, site),
		Main(
			Class("relative"),
			HomeSection(site, q),
			ArtSection(site),
			FAQSection(st, site.FAQ),
		),
		SiteFooter(site),
	)
}

func rawHTML(h template.HTML) g.Node {
	return g.Raw(string(h))
}
