package components

import (
	"cultr.xyz/cultr-web/internal/format"
	"cultr.xyz/cultr-web/internal/market"
	g "maragu.dev/gomponents"
	c "maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"
)

// TokenPriceProps configures TokenPrice.
type TokenPriceProps struct {
	Quote     market.Quote
	ShowPrice bool
	ShowTrend bool
	Class     string
}

// TokenPrice renders the price and, optionally, the 24h change. An unavailable quote
// renders the placeholder.
func TokenPrice(p TokenPriceProps) g.Node {
	price := format.Placeholder
	if p.Quote.Available {
		price = format.USDPrice(p.Quote.PriceUSD)
	}
	return Span(
		c.Classes{"token-price": true, p.Class: p.Class != ""},
		g.If(p.ShowPrice, Span(Class("token-price-value"), g.Text(price))),
		g.If(p.ShowTrend && p.Quote.Available, Span(
			Class("token-price-change ml-2 "+trendColor(p.Quote.Change24h)),
			g.Text(format.Percent(p.Quote.Change24h)),
		)),
	)
}

// TokenTrendBadge renders an arrow and the 24h change.
func TokenTrendBadge(q market.Quote, class string) g.Node {
	if !q.Available {
		return Span(c.Classes{"token-trend": true, class: class != ""}, Data("trend", "unknown"), g.Text(format.Placeholder))
	}
	trend := format.Trend(q.Change24h)
	arrow := "■"
	switch trend {
	case format.TrendUp:
		arrow = "▲"
	case format.TrendDown:
		arrow = "▼"
	}
	return Span(
		c.Classes{"token-trend": true, trendColor(q.Change24h): true, class: class != ""},
		Data("trend", trend),
		Span(Class("mr-1"), Aria("hidden", "true"), g.Text(arrow)),
		g.Text(format.Percent(q.Change24h)),
	)
}

// MarketCap renders the compact market capitalisation. Inline drops the block wrapper.
func MarketCap(q market.Quote, inline bool) g.Node {
	value := format.Placeholder
	if q.Available && q.MarketCapUSD > 0 {
		value = format.CompactUSD(q.MarketCapUSD)
	}
	if inline {
		return Span(Class("market-cap"), g.Text(value))
	}
	return Div(Class("market-cap text-lg"), g.Text(value))
}

// PriceCard is the home section's market card. It is replaced whole when the quote changes.
func PriceCard(label string, q market.Quote) g.Node {
	return Div(
		ID(PriceCardID),
		Class("group relative bg-white/5 backdrop-blur-sm rounded-2xl p-8 border border-white/10 transition-all duration-300 hover:shadow-2xl"),
		g.If(!q.UpdatedAt.IsZero(), Data("updated", format.Timestamp(q.UpdatedAt))),
		Div(
			Class("relative flex justify-between items-start mb-4"),
			Div(
				Class("flex flex-col"),
				Div(
					Class("flex items-baseline gap-2 whitespace-nowrap"),
					Span(Class("text-base md:text-lg text-gray-300 font-medium"), g.Text(label)),
					Span(Class("text-base md:text-lg"), MarketCap(q, true)),
				),
				Div(Class("mt-1"), TokenPrice(TokenPriceProps{Quote: q, ShowPrice: true, Class: "text-lg md:text-xl"})),
			),
			Div(Class("ml-4"), TokenTrendBadge(q, "text-base md:text-lg font-bold inline-flex items-center bg-black/40 px-2 py-1 rounded-full")),
		),
		H2(Class("relative text-4xl font-bold text-white"), TokenPrice(TokenPriceProps{Quote: q, ShowPrice: true})),
	)
}

func trendColor(change float64) string {
	switch format.Trend(change) {
	case format.TrendUp:
		return "text-green-400"
	case format.TrendDown:
		return "text-red-400"
	}
	return "text-gray-400"
}
