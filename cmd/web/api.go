package main

import (
	"net/http"

	mw "cultr.xyz/cultr-web/internal/middleware"
)

// QuoteHandler serves the current token quote as JSON.
func (a *app) QuoteHandler(w http.ResponseWriter, r *http.Request) {
	q := a.quote(r)
	if !q.Available {
		mw.WriteError(w, http.StatusServiceUnavailable, "quote unavailable")
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=15")
	mw.WriteJSON(w, http.StatusOK, q)
}
