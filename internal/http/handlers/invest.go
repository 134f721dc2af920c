package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type investRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (a *App) InvestmentsCreate(w http.ResponseWriter, r *http.Request) {
	var req investRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	campaign, investment, err := a.Service.Invest(r.Context(), a.currentUserID(r), chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"campaign":   newCampaignView(campaign, requestLocale(r)),
		"investment": investment,
	})
}

func (a *App) MyInvestments(w http.ResponseWriter, r *http.Request) {
	portfolio, err := a.Service.InvestorPortfolio(r.Context(), a.currentUserID(r))
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusOK, portfolio)
}
