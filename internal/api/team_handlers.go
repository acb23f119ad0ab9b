// internal/api/team_handlers.go
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"tenant-portal/internal/idgen"
	"tenant-portal/internal/model"
	"tenant-portal/internal/storage"
)

type CreateTeamRequest struct {
	Name     string  `json:"name"`
	Provider string  `json:"provider"`
	APIKey   *string `json:"apiKey"` // LLM provider key
	Model    string  `json:"model"`
}

// @Summary List teams of a tenant
// @Tags Teams
// @Param id path string true "Tenant ID"
// @Produce json
// @Success 200 {array} model.Team
// @Router /tenants/{id}/teams [get]
func (a *API) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := a.Store.ListTeams(chi.URLParam(r, "id"))
	if err != nil {
		serverError(w, err, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// @Summary Create team
// @Tags Teams
// @Param id path string true "Tenant ID"
// @Accept json
// @Produce json
// @Success 200 {object} model.Team
// @Router /tenants/{id}/teams [post]
func (a *API) CreateTeam(w http.ResponseWriter, r *http.Request) {
	var req CreateTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" || req.Provider == "" {
		writeError(w, http.StatusBadRequest, "Name and Provider required")
		return
	}

	tenantID := chi.URLParam(r, "id")
	exists, err := a.Store.TenantExists(tenantID)
	if err != nil {
		serverError(w, err, "Database error")
		return
	}
	if !exists {
		writeError(w, http.StatusNotFound, "Tenant not found")
		return
	}

	if req.Model == "" {
		req.Model = "default"
	}

	// The team key is always minted server-side; clients only supply the
	// LLM provider key.
	team := &model.Team{
		ID:        idgen.New("team"),
		TenantID:  tenantID,
		Name:      req.Name,
		Provider:  req.Provider,
		APIKey:    req.APIKey,
		TeamKey:   idgen.New("tkey"),
		Model:     req.Model,
		CreatedAt: time.Now(),
		Styles:    map[string]any{},
	}

	if err := a.Store.CreateTeam(team); err != nil {
		serverError(w, err, "Failed to create team")
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// @Summary Patch team
// @Tags Teams
// @Param id path string true "Tenant ID"
// @Param teamId path string true "Team ID"
// @Accept json
// @Produce json
// @Success 200 {object} model.Team
// @Router /tenants/{id}/teams/{teamId} [patch]
func (a *API) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	var patch model.TeamPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// An empty patch returns the team unchanged; storage handles that.
	team, err := a.Store.UpdateTeam(chi.URLParam(r, "id"), chi.URLParam(r, "teamId"), patch)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Team not found")
		return
	}
	if err != nil {
		serverError(w, err, "Failed to update team")
		return
	}
	writeJSON(w, http.StatusOK, team)
}
