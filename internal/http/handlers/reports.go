package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type revenueReportRequest struct {
	Revenue decimal.Decimal `json:"revenue"`
}

func (a *App) RevenueReportsCreate(w http.ResponseWriter, r *http.Request) {
	var req revenueReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	report, campaign, err := a.Service.ReportRevenue(r.Context(), a.currentUserID(r), chi.URLParam(r, "id"), req.Revenue)
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"report":   report,
		"campaign": newCampaignView(campaign, requestLocale(r)),
	})
}

func (a *App) RevenueReportsList(w http.ResponseWriter, r *http.Request) {
	reports, err := a.Service.CampaignReports(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": reports})
}
