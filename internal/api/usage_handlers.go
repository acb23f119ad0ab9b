// internal/api/usage_handlers.go
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tenant-portal/internal/idgen"
	"tenant-portal/internal/model"
)

const topUsersLimit = 10

// @Summary Record a usage event
// @Tags Usage
// @Accept json
// @Produce json
// @Success 200 {object} map[string]bool
// @Router /api/usage [post]
func (a *API) RecordUsage(w http.ResponseWriter, r *http.Request) {
	var sub model.UsageSubmission
	if err := decodeJSON(r, &sub); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if sub.TeamID == "" {
		writeError(w, http.StatusBadRequest, "Team ID required")
		return
	}

	event := &model.UsageEvent{
		ID:        idgen.New("usage"),
		TeamID:    sub.TeamID,
		Email:     sub.Email,
		TokensIn:  sub.TokensIn,
		TokensOut: sub.TokensOut,
		Cost:      sub.Cost,
		Model:     sub.Model,
		Timestamp: time.Now(),
	}

	if err := a.Store.InsertUsage(event); err != nil {
		serverError(w, err, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// @Summary Aggregated usage report for a tenant
// @Tags Usage
// @Param id path string true "Tenant ID"
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /tenants/{id}/usage [get]
func (a *API) TenantUsage(w http.ResponseWriter, r *http.Request) {
	tenantID := chi.URLParam(r, "id")

	teamUsage, err := a.Store.TeamUsage(tenantID)
	if err != nil {
		serverError(w, err, "Database error")
		return
	}
	userUsage, err := a.Store.TopUserUsage(tenantID, topUsersLimit)
	if err != nil {
		serverError(w, err, "Database error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"teamUsage": teamUsage,
		"userUsage": userUsage,
	})
}
