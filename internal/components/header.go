package components

import (
	"cultr.xyz/cultr-web/internal/content"
	"cultr.xyz/cultr-web/internal/landing"
	"cultr.xyz/cultr-web/internal/nav"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"
)

// SiteHeader is the fixed top bar: brand, desktop section buttons, menu button and the
// mobile panel.
func SiteHeader(st landing.State, site content.Site) g.Node {
	items := nav.Build(st)
	return Header(
		ID(HeaderID),
		c.Classes{
			"fixed top-0 w-full z-50 transition-all duration-300": true,
			"bg-black/80 backdrop-blur-lg border-b border-white/5": st.Scrolled,
		},
		g.If(st.Scrolled, Data("scrolled", "true")),
		Data("state", st.Query().Encode()),
		Nav(
			Class("container mx-auto px-6 py-4 flex justify-between items-center"),
			A(
				Class("text-2xl font-bold tracking-wider cursor-pointer hover:text-gray-300 transition-colors"),
				Href(nav.Href(st, landing.SectionHome)),
				Data("live-navigate", string(landing.SectionHome)),
				g.Text(site.Brand),
			),
			Div(
				Class("hidden md:flex gap-8"),
				g.Map(items, func(it nav.RenderedItem) g.Node {
					return A(
						c.Classes{
							"capitalize font-medium transition-all hover:text-gray-300": true,
							"text-cyan-400": it.Active,
							"text-gray-400": !it.Active,
						},
						Href(it.Href),
						Data("live-navigate", string(it.Section)),
						g.If(it.Active, Aria("current", "true")),
						g.Text(string(it.Section)),
					)
				}),
			),
			MenuButton(st),
		),
		MobilePanel(st),
	)
}

// MenuButton toggles the mobile panel. Its icon is "x" while the menu is open.
func MenuButton(st landing.State) g.Node {
	icon := menuIcon
	if st.MenuOpen {
		icon = closeIcon
	}
	return A(
		Class("menu-button text-white bg-black/30 p-2 rounded-md hover:bg-black/50 hover:text-gray-300 active:text-gray-300 focus:outline-none focus:ring-2 focus:ring-white/10 transition-colors"),
		Href(nav.MenuHref(st)),
		g.Attr("role", "button"),
		Aria("label", "Toggle menu"),
		Aria("expanded", boolAttr(st.MenuOpen)),
		Data("live-toggle-menu", ""),
		icon(),
	)
}

// MobilePanel lists every section; it is hidden unless the menu is open.
func MobilePanel(st landing.State) g.Node {
	return Div(
		c.Classes{
			"mobile-panel absolute top-full left-0 w-full bg-black/95 backdrop-blur-xl border-b border-white/10 transition-all duration-300": true,
			"opacity-100 visible":                       st.MenuOpen,
			"opacity-0 invisible pointer-events-none": !st.MenuOpen,
		},
		g.Attr("style", "z-index: 60"),
		g.If(!st.MenuOpen, Aria("hidden", "true")),
		Div(
			Class("container mx-auto px-6 py-6 flex flex-col gap-4"),
			g.Map(nav.Build(st), func(it nav.RenderedItem) g.Node {
				return A(
					Class("capitalize text-lg font-medium text-left hover:text-cyan-400 transition-colors"),
					Href(it.Href),
					Data("live-navigate", string(it.Section)),
					g.Text(string(it.Section)),
				)
			}),
		),
	)
}

func menuIcon() g.Node {
	return lucide("menu",
		line("4", "6", "20", "6"),
		line("4", "12", "20", "12"),
		line("4", "18", "20", "18"),
	)
}

func closeIcon() g.Node {
	return lucide("x",
		line("18", "6", "6", "18"),
		line("6", "6", "18", "18"),
	)
}

func lucide(name string, children ...g.Node) g.Node {
	return g.El("svg",
		g.Attr("xmlns", "http://www.w3.org/2000/svg"),
		g.Attr("width", "28"),
		g.Attr("height", "28"),
		g.Attr("viewBox", "0 0 24 24"),
		g.Attr("fill", "none"),
		g.Attr("stroke", "currentColor"),
		g.Attr("stroke-width", "2"),
		g.Attr("stroke-linecap", "round"),
		g.Attr("stroke-linejoin", "round"),
		Class("lucide lucide-"+name),
		Data("icon", name),
		Aria("hidden", "true"),
		g.Group(children),
	)
}

func line(x1, y1, x2, y2 string) g.Node {
	return g.El("line", g.Attr("x1", x1), g.Attr("y1", y1), g.Attr("x2", x2), g.Attr("y2", y2))
}

func boolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
