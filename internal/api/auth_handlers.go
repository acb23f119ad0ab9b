// internal/api/auth_handlers.go
package api

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"tenant-portal/internal/auth"
	"tenant-portal/internal/model"
	"tenant-portal/internal/storage"
)

type AdminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TenantLoginRequest struct {
	TenantID string `json:"tenantId"`
}

// SSOLoginRequest reuses the tenantId field for tenant and team ids;
// apiKey is only consulted on the team branch.
type SSOLoginRequest struct {
	TenantID string `json:"tenantId"`
	APIKey   string `json:"apiKey"`
}

type loginUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type llmConfig struct {
	APIProvider string  `json:"apiProvider"`
	APIKey      *string `json:"apiKey"`
	APIModelID  string  `json:"apiModelId"`
}

// @Summary Admin login
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /login/admin [post]
func (a *API) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(a.Cfg.Auth.AdminUser))
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(a.Cfg.Auth.AdminPass))
	if userOK&passOK != 1 {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := auth.GenerateToken("admin", auth.SubjectAdmin)
	if err != nil {
		serverError(w, err, "Failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"user":    loginUser{ID: "admin", Name: "Master Admin"},
	})
}

// @Summary Tenant login
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /login/tenant [post]
func (a *API) LoginTenant(w http.ResponseWriter, r *http.Request) {
	var req TenantLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tenant, err := a.Store.GetTenant(req.TenantID)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "Invalid tenant ID")
		return
	}
	if err != nil {
		serverError(w, err, "Database connection failed")
		return
	}

	if tenant.Status == model.TenantStatusDisabled {
		writeError(w, http.StatusForbidden, "Account is disabled")
		return
	}

	token, err := auth.GenerateToken(tenant.ID, auth.SubjectTenant)
	if err != nil {
		serverError(w, err, "Failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"user":    loginUser{ID: tenant.ID, Name: tenant.Name},
	})
}

// @Summary Unified SSO login
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /login/sso [post]
func (a *API) LoginSSO(w http.ResponseWriter, r *http.Request) {
	var req SSOLoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Tenant ids win over team ids; the disabled check applies before
	// anything else and ignores the supplied key.
	tenant, err := a.Store.GetTenant(req.TenantID)
	if err == nil {
		if tenant.Status == model.TenantStatusDisabled {
			writeError(w, http.StatusForbidden, "Account is disabled")
			return
		}

		token, err := auth.GenerateToken(tenant.ID, auth.SubjectTenant)
		if err != nil {
			serverError(w, err, "Failed to issue token")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"type":    "tenant",
			"token":   token,
			"user":    loginUser{ID: tenant.ID, Name: tenant.Name},
			"config": llmConfig{
				APIProvider: tenant.Provider,
				APIKey:      tenant.LLMAPIKey,
				APIModelID:  tenant.Model,
			},
			"styles": tenant.Settings,
		})
		return
	}
	if !errors.Is(err, storage.ErrNotFound) {
		serverError(w, err, "Database error")
		return
	}

	team, err := a.Store.GetTeamByID(req.TenantID)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, "Invalid ID")
		return
	}
	if err != nil {
		serverError(w, err, "Database error")
		return
	}

	if subtle.ConstantTimeCompare([]byte(team.TeamKey), []byte(req.APIKey)) != 1 {
		writeError(w, http.StatusUnauthorized, "Invalid Team Key")
		return
	}

	token, err := auth.GenerateToken(team.ID, auth.SubjectTeam)
	if err != nil {
		serverError(w, err, "Failed to issue token")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"type":    "team",
		"token":   token,
		"user":    loginUser{ID: team.ID, Name: team.Name},
		"config": llmConfig{
			APIProvider: team.Provider,
			APIKey:      team.APIKey, // the LLM provider key, not the team key
			APIModelID:  team.Model,
		},
		"styles": team.Styles,
	})
}
