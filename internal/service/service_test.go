package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"fundbridge/internal/domain"
	"fundbridge/internal/store"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	st := store.New(store.NewMemoryKV(), zerolog.Nop())
	return New(st, zerolog.Nop())
}

func createFOA(t *testing.T, s *Service, goal string) domain.Campaign {
	t.Helper()
	campaign, err := s.CreateFOA(context.Background(), CreateFOAInput{
		OwnerID:                 "talent-1",
		Title:                   "Bootcamp Graduate Seeking Funding",
		Description:             "Full-stack developer raising for certification costs.",
		FundingGoal:             dec(goal),
		RepaymentMultiplier:     dec("1.5"),
		RepaymentDurationMonths: 18,
	})
	if err != nil {
		t.Fatalf("CreateFOA() error: %v", err)
	}
	return campaign
}

func createRSA(t *testing.T, s *Service, goal, sharePct string) domain.Campaign {
	t.Helper()
	campaign, err := s.CreateRSA(context.Background(), CreateRSAInput{
		OwnerID:                "startup-1",
		Title:                  "DataFlow Analytics",
		Description:            "B2B SaaS scaling its engineering team.",
		FundingGoal:            dec(goal),
		RevenueSharePercentage: dec(sharePct),
		RepaymentCap:           dec("2"),
	})
	if err != nil {
		t.Fatalf("CreateRSA() error: %v", err)
	}
	return campaign
}

func TestCreateFOADerivesRepaymentFigures(t *testing.T) {
	s := newTestService(t)
	campaign := createFOA(t, s, "5000")

	if !campaign.FixedRepaymentTotal.Equal(dec("7500")) {
		t.Fatalf("FixedRepaymentTotal = %s, want 7500", campaign.FixedRepaymentTotal)
	}
	if got := campaign.MonthlyInstallment.Round(2); !got.Equal(dec("416.67")) {
		t.Fatalf("MonthlyInstallment rounded = %s, want 416.67", got)
	}
	if campaign.Status != domain.CampaignStatusActive {
		t.Fatalf("Status = %s, want Active", campaign.Status)
	}
	if campaign.Verification != domain.VerificationNotSubmitted {
		t.Fatalf("Verification = %s, want NotSubmitted", campaign.Verification)
	}
}

func TestCreateFOAValidation(t *testing.T) {
	s := newTestService(t)
	base := CreateFOAInput{
		OwnerID:                 "talent-1",
		Title:                   "Title",
		Description:             "Description",
		FundingGoal:             dec("5000"),
		RepaymentMultiplier:     dec("1.5"),
		RepaymentDurationMonths: 18,
	}

	tests := []struct {
		name   string
		mutate func(*CreateFOAInput)
	}{
		{"empty title", func(in *CreateFOAInput) { in.Title = "  " }},
		{"empty description", func(in *CreateFOAInput) { in.Description = "" }},
		{"goal below minimum", func(in *CreateFOAInput) { in.FundingGoal = dec("999") }},
		{"multiplier too low", func(in *CreateFOAInput) { in.RepaymentMultiplier = dec("1.1") }},
		{"multiplier too high", func(in *CreateFOAInput) { in.RepaymentMultiplier = dec("2.5") }},
		{"zero duration", func(in *CreateFOAInput) { in.RepaymentDurationMonths = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			if _, err := s.CreateFOA(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("CreateFOA() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateRSAValidation(t *testing.T) {
	s := newTestService(t)
	base := CreateRSAInput{
		OwnerID:                "startup-1",
		Title:                  "Title",
		Description:            "Description",
		FundingGoal:            dec("50000"),
		RevenueSharePercentage: dec("5"),
		RepaymentCap:           dec("2"),
	}

	tests := []struct {
		name   string
		mutate func(*CreateRSAInput)
	}{
		{"zero goal", func(in *CreateRSAInput) { in.FundingGoal = dec("0") }},
		{"zero share", func(in *CreateRSAInput) { in.RevenueSharePercentage = dec("0") }},
		{"share at 100", func(in *CreateRSAInput) { in.RevenueSharePercentage = dec("100") }},
		{"zero cap", func(in *CreateRSAInput) { in.RepaymentCap = dec("0") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			if _, err := s.CreateRSA(context.Background(), in); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("CreateRSA() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestInvestRespectsRemainingCapacity(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	campaign := createRSA(t, s, "10000", "5")

	if _, _, err := s.Invest(ctx, "investor-1", campaign.ID, dec("9500")); err != nil {
		t.Fatalf("Invest(9500) error: %v", err)
	}

	// Remaining capacity is 500; 600 must be rejected without state change.
	if _, _, err := s.Invest(ctx, "investor-1", campaign.ID, dec("600")); !errors.Is(err, domain.ErrOverCapacity) {
		t.Fatalf("Invest(600) error = %v, want ErrOverCapacity", err)
	}
	current, err := s.GetCampaign(ctx, campaign.ID)
	if err != nil {
		t.Fatalf("GetCampaign() error: %v", err)
	}
	if !current.AmountRaised.Equal(dec("9500")) {
		t.Fatalf("AmountRaised after rejected investment = %s, want 9500", current.AmountRaised)
	}

	updated, _, err := s.Invest(ctx, "investor-1", campaign.ID, dec("500"))
	if err != nil {
		t.Fatalf("Invest(500) error: %v", err)
	}
	if !updated.AmountRaised.Equal(dec("10000")) {
		t.Fatalf("AmountRaised = %s, want 10000", updated.AmountRaised)
	}
	if updated.Status != domain.CampaignStatusFullyFunded {
		t.Fatalf("Status = %s, want FullyFunded", updated.Status)
	}
}

func TestInvestRejectsNonPositiveAmount(t *testing.T) {
	s := newTestService(t)
	campaign := createRSA(t, s, "10000", "5")

	for _, amount := range []string{"0", "-100"} {
		if _, _, err := s.Invest(context.Background(), "investor-1", campaign.ID, dec(amount)); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("Invest(%s) error = %v, want ErrValidation", amount, err)
		}
	}
}

func TestInvestUnknownCampaign(t *testing.T) {
	s := newTestService(t)
	if _, _, err := s.Invest(context.Background(), "investor-1", "rsa_missing", dec("100")); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Invest() error = %v, want ErrNotFound", err)
	}
}

func TestInvestIsMonotonicAndCapped(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	campaign := createFOA(t, s, "5000")

	previous := decimal.Zero
	for _, amount := range []string{"1200", "1800", "2000"} {
		updated, _, err := s.Invest(ctx, "investor-1", campaign.ID, dec(amount))
		if err != nil {
			t.Fatalf("Invest(%s) error: %v", amount, err)
		}
		if updated.AmountRaised.LessThan(previous) {
			t.Fatalf("AmountRaised decreased: %s -> %s", previous, updated.AmountRaised)
		}
		if updated.AmountRaised.GreaterThan(updated.FundingGoal) {
			t.Fatalf("AmountRaised %s exceeds goal %s", updated.AmountRaised, updated.FundingGoal)
		}
		previous = updated.AmountRaised
	}
}

func TestInvestRecordsExpectedReturn(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	foa := createFOA(t, s, "5000")

	// 2500 of 5000 is half the campaign; half of the 7500 repayment total.
	_, investment, err := s.Invest(ctx, "investor-1", foa.ID, dec("2500"))
	if err != nil {
		t.Fatalf("Invest() error: %v", err)
	}
	if !investment.ExpectedReturn.Equal(dec("3750")) {
		t.Fatalf("FOA ExpectedReturn = %s, want 3750", investment.ExpectedReturn)
	}

	rsa := createRSA(t, s, "10000", "5")
	// 2500 of 10000 with a 2x cap: quarter of 20000.
	_, investment, err = s.Invest(ctx, "investor-1", rsa.ID, dec("2500"))
	if err != nil {
		t.Fatalf("Invest() error: %v", err)
	}
	if !investment.ExpectedReturn.Equal(dec("5000")) {
		t.Fatalf("RSA ExpectedReturn = %s, want 5000", investment.ExpectedReturn)
	}
}

func TestReportRevenueAccruesShareOnce(t *testing.T) {
	s := newTestService(t).WithClock(func() time.Time {
		return time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	})
	ctx := context.Background()
	campaign := createRSA(t, s, "50000", "5")

	report, updated, err := s.ReportRevenue(ctx, "startup-1", campaign.ID, dec("20000"))
	if err != nil {
		t.Fatalf("ReportRevenue() error: %v", err)
	}
	if report.Status != domain.ReportStatusPending {
		t.Fatalf("report status = %s, want Pending", report.Status)
	}
	if report.Month != "2026-08" {
		t.Fatalf("report month = %s, want 2026-08", report.Month)
	}
	if !updated.MonthlyRevenue.Equal(dec("20000")) {
		t.Fatalf("MonthlyRevenue = %s, want 20000", updated.MonthlyRevenue)
	}
	if !updated.TotalRevenuePaid.Equal(dec("1000")) {
		t.Fatalf("TotalRevenuePaid = %s, want 1000", updated.TotalRevenuePaid)
	}

	// Second report within the same month must be rejected and leave state alone.
	if _, _, err := s.ReportRevenue(ctx, "startup-1", campaign.ID, dec("25000")); !errors.Is(err, domain.ErrDuplicateReport) {
		t.Fatalf("second ReportRevenue() error = %v, want ErrDuplicateReport", err)
	}
	current, err := s.GetCampaign(ctx, campaign.ID)
	if err != nil {
		t.Fatalf("GetCampaign() error: %v", err)
	}
	if !current.TotalRevenuePaid.Equal(dec("1000")) {
		t.Fatalf("TotalRevenuePaid after rejected report = %s, want 1000", current.TotalRevenuePaid)
	}

	reports, err := s.CampaignReports(ctx, campaign.ID)
	if err != nil {
		t.Fatalf("CampaignReports() error: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("CampaignReports() returned %d reports, want 1", len(reports))
	}
}

func TestReportRevenueNextMonthAllowed(t *testing.T) {
	current := time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
	s := newTestService(t).WithClock(func() time.Time { return current })
	ctx := context.Background()
	campaign := createRSA(t, s, "50000", "5")

	if _, _, err := s.ReportRevenue(ctx, "startup-1", campaign.ID, dec("20000")); err != nil {
		t.Fatalf("ReportRevenue() error: %v", err)
	}

	current = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	_, updated, err := s.ReportRevenue(ctx, "startup-1", campaign.ID, dec("30000"))
	if err != nil {
		t.Fatalf("ReportRevenue() next month error: %v", err)
	}
	if !updated.TotalRevenuePaid.Equal(dec("2500")) {
		t.Fatalf("TotalRevenuePaid = %s, want 2500", updated.TotalRevenuePaid)
	}
	if !updated.MonthlyRevenue.Equal(dec("30000")) {
		t.Fatalf("MonthlyRevenue = %s, want 30000", updated.MonthlyRevenue)
	}
}

func TestReportRevenueGuards(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	rsa := createRSA(t, s, "50000", "5")
	foa := createFOA(t, s, "5000")

	if _, _, err := s.ReportRevenue(ctx, "someone-else", rsa.ID, dec("20000")); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("ReportRevenue() by non-owner error = %v, want ErrUnauthorized", err)
	}
	if _, _, err := s.ReportRevenue(ctx, "talent-1", foa.ID, dec("20000")); !errors.Is(err, domain.ErrWrongCampaignType) {
		t.Fatalf("ReportRevenue() on FOA error = %v, want ErrWrongCampaignType", err)
	}
	if _, _, err := s.ReportRevenue(ctx, "startup-1", rsa.ID, dec("-1")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("ReportRevenue() with negative revenue error = %v, want ErrValidation", err)
	}
}

func TestUpdateVerificationTransitions(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	campaign := createFOA(t, s, "5000")

	updated, err := s.UpdateVerification(ctx, "talent-1", campaign.ID, domain.VerificationPending)
	if err != nil {
		t.Fatalf("UpdateVerification(Pending) error: %v", err)
	}
	if updated.Verification != domain.VerificationPending {
		t.Fatalf("Verification = %s, want Pending", updated.Verification)
	}

	if _, err := s.UpdateVerification(ctx, "talent-1", campaign.ID, domain.VerificationNotSubmitted); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("backward transition error = %v, want ErrValidation", err)
	}
	if _, err := s.UpdateVerification(ctx, "someone-else", campaign.ID, domain.VerificationVerified); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("non-owner transition error = %v, want ErrUnauthorized", err)
	}

	if _, err := s.UpdateVerification(ctx, "talent-1", campaign.ID, domain.VerificationVerified); err != nil {
		t.Fatalf("UpdateVerification(Verified) error: %v", err)
	}
}

func TestSuggestedInvestment(t *testing.T) {
	c := domain.Campaign{FundingGoal: dec("10000"), AmountRaised: dec("9700")}
	if got := SuggestedInvestment(c); !got.Equal(dec("300")) {
		t.Fatalf("SuggestedInvestment() = %s, want 300 (remaining capacity)", got)
	}
	c.AmountRaised = dec("2000")
	if got := SuggestedInvestment(c); !got.Equal(dec("1000")) {
		t.Fatalf("SuggestedInvestment() = %s, want 1000 (default)", got)
	}
}

func TestInvestorPortfolio(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	foa := createFOA(t, s, "5000")
	rsa := createRSA(t, s, "10000", "5")

	if _, _, err := s.Invest(ctx, "investor-1", foa.ID, dec("2500")); err != nil {
		t.Fatalf("Invest() error: %v", err)
	}
	if _, _, err := s.Invest(ctx, "investor-1", rsa.ID, dec("2500")); err != nil {
		t.Fatalf("Invest() error: %v", err)
	}
	if _, _, err := s.Invest(ctx, "investor-2", rsa.ID, dec("1000")); err != nil {
		t.Fatalf("Invest() error: %v", err)
	}

	portfolio, err := s.InvestorPortfolio(ctx, "investor-1")
	if err != nil {
		t.Fatalf("InvestorPortfolio() error: %v", err)
	}
	if len(portfolio.Investments) != 2 {
		t.Fatalf("portfolio has %d investments, want 2", len(portfolio.Investments))
	}
	if !portfolio.TotalInvested.Equal(dec("5000")) {
		t.Fatalf("TotalInvested = %s, want 5000", portfolio.TotalInvested)
	}
	if !portfolio.TotalExpectedReturn.Equal(dec("8750")) {
		t.Fatalf("TotalExpectedReturn = %s, want 8750", portfolio.TotalExpectedReturn)
	}
}

func TestMarketplaceFilterAndSort(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	current := base
	s := newTestService(t).WithClock(func() time.Time { return current })
	ctx := context.Background()

	foa := createFOA(t, s, "5000")
	current = base.Add(24 * time.Hour)
	rsaSmall := createRSA(t, s, "10000", "5")
	current = base.Add(48 * time.Hour)
	rsaLarge := createRSA(t, s, "150000", "6")

	if _, _, err := s.Invest(ctx, "investor-1", rsaSmall.ID, dec("10000")); err != nil {
		t.Fatalf("Invest() error: %v", err)
	}
	if _, _, err := s.Invest(ctx, "investor-1", rsaLarge.ID, dec("30000")); err != nil {
		t.Fatalf("Invest() error: %v", err)
	}

	newest, err := s.Marketplace(ctx, ListQuery{Sort: "newest"})
	if err != nil {
		t.Fatalf("Marketplace() error: %v", err)
	}
	if len(newest) != 3 || newest[0].ID != rsaLarge.ID || newest[2].ID != foa.ID {
		t.Fatalf("newest order wrong: %v", campaignIDs(newest))
	}

	funded, err := s.Marketplace(ctx, ListQuery{Filter: "funded"})
	if err != nil {
		t.Fatalf("Marketplace(funded) error: %v", err)
	}
	if len(funded) != 1 || funded[0].ID != rsaSmall.ID {
		t.Fatalf("funded filter wrong: %v", campaignIDs(funded))
	}

	partial, err := s.Marketplace(ctx, ListQuery{Filter: "partial"})
	if err != nil {
		t.Fatalf("Marketplace(partial) error: %v", err)
	}
	if len(partial) != 1 || partial[0].ID != rsaLarge.ID {
		t.Fatalf("partial filter wrong: %v", campaignIDs(partial))
	}

	byType, err := s.Marketplace(ctx, ListQuery{Type: string(domain.CampaignTypeFOA)})
	if err != nil {
		t.Fatalf("Marketplace(type) error: %v", err)
	}
	if len(byType) != 1 || byType[0].ID != foa.ID {
		t.Fatalf("type filter wrong: %v", campaignIDs(byType))
	}

	search, err := s.Marketplace(ctx, ListQuery{Search: "dataflow"})
	if err != nil {
		t.Fatalf("Marketplace(search) error: %v", err)
	}
	if len(search) != 2 {
		t.Fatalf("search returned %d campaigns, want 2", len(search))
	}

	byProgress, err := s.Marketplace(ctx, ListQuery{Sort: "progress"})
	if err != nil {
		t.Fatalf("Marketplace(progress) error: %v", err)
	}
	if byProgress[0].ID != rsaSmall.ID {
		t.Fatalf("progress sort wrong: %v", campaignIDs(byProgress))
	}

	byGoal, err := s.Marketplace(ctx, ListQuery{Sort: "funding_high"})
	if err != nil {
		t.Fatalf("Marketplace(funding_high) error: %v", err)
	}
	if byGoal[0].ID != rsaLarge.ID {
		t.Fatalf("funding_high sort wrong: %v", campaignIDs(byGoal))
	}
}

func TestMarketplaceSummary(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	createFOA(t, s, "5000")
	rsa := createRSA(t, s, "10000", "5")
	if _, _, err := s.Invest(ctx, "investor-1", rsa.ID, dec("10000")); err != nil {
		t.Fatalf("Invest() error: %v", err)
	}

	summary, err := s.MarketplaceSummary(ctx)
	if err != nil {
		t.Fatalf("MarketplaceSummary() error: %v", err)
	}
	if summary.Campaigns != 2 {
		t.Fatalf("Campaigns = %d, want 2", summary.Campaigns)
	}
	if !summary.TotalOpportunity.Equal(dec("15000")) {
		t.Fatalf("TotalOpportunity = %s, want 15000", summary.TotalOpportunity)
	}
	if summary.FullyFunded != 1 {
		t.Fatalf("FullyFunded = %d, want 1", summary.FullyFunded)
	}
}

func TestOwnerCampaigns(t *testing.T) {
	s := newTestService(t)
	createFOA(t, s, "5000")
	createRSA(t, s, "10000", "5")

	owned, err := s.OwnerCampaigns(context.Background(), "startup-1")
	if err != nil {
		t.Fatalf("OwnerCampaigns() error: %v", err)
	}
	if len(owned) != 1 || owned[0].OwnerID != "startup-1" {
		t.Fatalf("OwnerCampaigns() wrong: %v", campaignIDs(owned))
	}
}

func campaignIDs(campaigns []domain.Campaign) []string {
	ids := make([]string, len(campaigns))
	for i, c := range campaigns {
		ids[i] = c.ID
	}
	return ids
}
