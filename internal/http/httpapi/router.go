package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"fundbridge/internal/http/handlers"
	"fundbridge/internal/infra"
	"fundbridge/internal/middleware"
)

// NewRouter assembles the HTTP surface: public marketplace reads, and
// authenticated campaign mutations with the user-triggered ones rate
// limited.
func NewRouter(app *handlers.App, cfg *infra.Config, countryLookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.I18N(cfg.DefaultLocale, countryLookup),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/marketplace", func(r chi.Router) {
		r.Get("/", app.MarketplaceList)
		r.Get("/summary", app.MarketplaceSummary)
	})

	r.Route("/v1/campaigns", func(r chi.Router) {
		r.Get("/{id}", app.CampaignGet)
		r.Get("/{id}/revenue-reports", app.RevenueReportsList)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthJWT(cfg.JWTSecret))
			r.Post("/foa", app.FOACreate)
			r.Post("/rsa", app.RSACreate)
			r.Post("/{id}/verification", app.VerificationUpdate)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute))
				r.Post("/{id}/investments", app.InvestmentsCreate)
				r.Post("/{id}/revenue-reports", app.RevenueReportsCreate)
			})
		})
	})

	r.Route("/v1/me", func(r chi.Router) {
		r.Use(middleware.AuthJWT(cfg.JWTSecret))
		r.Get("/campaigns", app.MyCampaigns)
		r.Get("/investments", app.MyInvestments)
	})

	return r
}
