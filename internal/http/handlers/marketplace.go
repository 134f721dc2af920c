package handlers

import (
	"net/http"

	"fundbridge/internal/service"
)

func (a *App) MarketplaceList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	campaigns, err := a.Service.Marketplace(r.Context(), service.ListQuery{
		Search: q.Get("search"),
		Type:   q.Get("type"),
		Filter: q.Get("filter"),
		Sort:   q.Get("sort"),
	})
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": campaignViews(campaigns, requestLocale(r))})
}

func (a *App) MarketplaceSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := a.Service.MarketplaceSummary(r.Context())
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusOK, summary)
}
