package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"fundbridge/internal/domain"
	"fundbridge/internal/finance"
	"fundbridge/internal/service"
)

type foaCreateRequest struct {
	Title                   string          `json:"title"`
	Description             string          `json:"description"`
	FundingGoal             decimal.Decimal `json:"fundingGoal"`
	RepaymentMultiplier     decimal.Decimal `json:"repaymentMultiplier"`
	RepaymentDurationMonths int             `json:"repaymentDurationMonths"`
}

func (a *App) FOACreate(w http.ResponseWriter, r *http.Request) {
	var req foaCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	campaign, err := a.Service.CreateFOA(r.Context(), service.CreateFOAInput{
		OwnerID:                 a.currentUserID(r),
		Title:                   req.Title,
		Description:             req.Description,
		FundingGoal:             req.FundingGoal,
		RepaymentMultiplier:     req.RepaymentMultiplier,
		RepaymentDurationMonths: req.RepaymentDurationMonths,
	})
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusCreated, newCampaignView(campaign, requestLocale(r)))
}

type rsaCreateRequest struct {
	Title                  string          `json:"title"`
	Description            string          `json:"description"`
	FundingGoal            decimal.Decimal `json:"fundingGoal"`
	RevenueSharePercentage decimal.Decimal `json:"revenueSharePercentage"`
	RepaymentCap           decimal.Decimal `json:"repaymentCap"`
}

func (a *App) RSACreate(w http.ResponseWriter, r *http.Request) {
	var req rsaCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	campaign, err := a.Service.CreateRSA(r.Context(), service.CreateRSAInput{
		OwnerID:                a.currentUserID(r),
		Title:                  req.Title,
		Description:            req.Description,
		FundingGoal:            req.FundingGoal,
		RevenueSharePercentage: req.RevenueSharePercentage,
		RepaymentCap:           req.RepaymentCap,
	})
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusCreated, newCampaignView(campaign, requestLocale(r)))
}

func (a *App) CampaignGet(w http.ResponseWriter, r *http.Request) {
	campaign, err := a.Service.GetCampaign(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusOK, newCampaignView(campaign, requestLocale(r)))
}

type verificationRequest struct {
	Status domain.VerificationStatus `json:"status"`
}

func (a *App) VerificationUpdate(w http.ResponseWriter, r *http.Request) {
	var req verificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	campaign, err := a.Service.UpdateVerification(r.Context(), a.currentUserID(r), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		a.serviceError(w, err)
		return
	}
	a.json(w, http.StatusOK, newCampaignView(campaign, requestLocale(r)))
}

// MyCampaigns serves the owner dashboard: the caller's campaigns with
// their average funding progress.
func (a *App) MyCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := a.Service.OwnerCampaigns(r.Context(), a.currentUserID(r))
	if err != nil {
		a.serviceError(w, err)
		return
	}

	avg := decimal.Zero
	if len(campaigns) > 0 {
		for _, c := range campaigns {
			progress, err := finance.FundingProgress(c.AmountRaised, c.FundingGoal)
			if err != nil {
				continue
			}
			avg = avg.Add(progress)
		}
		avg = avg.Div(decimal.NewFromInt(int64(len(campaigns))))
	}

	a.json(w, http.StatusOK, map[string]any{
		"items":              campaignViews(campaigns, requestLocale(r)),
		"avgFundingProgress": avg.Round(1),
	})
}
