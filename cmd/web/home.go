package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"cultr.xyz/cultr-web/internal/handlers"
	"cultr.xyz/cultr-web/internal/landing"
	"cultr.xyz/cultr-web/internal/market"
	mw "cultr.xyz/cultr-web/internal/middleware"
	"cultr.xyz/cultr-web/internal/nav"
)

// HomeHandler renders the landing page in the state carried by the query string.
func (a *app) HomeHandler(w http.ResponseWriter, r *http.Request) {
	st := landing.StateFromQuery(r.URL.Query())
	q := a.quote(r)
	vm, err := handlers.BuildHomeData(st, a.site, q, a.meta, a.analytics)
	if err != nil {
		mw.LoggerFrom(r.Context()).Error("build home", zap.Error(err))
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}
	render(w, r, vm)
}

// NavHandler applies a navigation click without JavaScript and redirects to the
// resulting page state, anchored at the section the click scrolls to when the page has it.
func (a *app) NavHandler(w http.ResponseWriter, r *http.Request) {
	st := landing.StateFromQuery(r.URL.Query())
	target := landing.ParseSection(chi.URLParam(r, "section"))
	action := landing.Resolve(st, target)
	next, eff := landing.Reduce(st, action)
	a.metrics.ObserveAction(string(action.Kind))

	// Unknown sections stay the active label but have no anchor to jump to.
	fragment := ""
	if eff.Scroll != nil && eff.Scroll.Target.Known() {
		fragment = string(eff.Scroll.Target)
	}
	http.Redirect(w, r, nav.PageURL(next, fragment), http.StatusSeeOther)
}

// MenuHandler toggles the mobile menu without JavaScript.
func (a *app) MenuHandler(w http.ResponseWriter, r *http.Request) {
	st := landing.StateFromQuery(r.URL.Query())
	next, _ := landing.Reduce(st, landing.Action{Kind: landing.ActionToggleMenu})
	a.metrics.ObserveAction(string(landing.ActionToggleMenu))
	http.Redirect(w, r, nav.PageURL(next, ""), http.StatusSeeOther)
}

// quote never fails: the widgets render a placeholder for an unavailable quote.
func (a *app) quote(r *http.Request) market.Quote {
	q, err := a.quotes.Quote(r.Context())
	if err != nil {
		logger := mw.LoggerFrom(r.Context())
		if errors.Is(err, market.ErrUnavailable) {
			logger.Debug("token quote unavailable", zap.Error(err))
		} else {
			logger.Warn("token quote stale", zap.Error(err))
		}
	}
	return q
}
