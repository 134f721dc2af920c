package handlers

import "net/http"

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health reports process liveness for load balancers and uptime checks.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, healthResponse{Status: "ok", Service: "fundbridge-api"})
}
