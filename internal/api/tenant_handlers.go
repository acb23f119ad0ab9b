// internal/api/tenant_handlers.go
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

// Defaults applied when a tenant is created without an LLM config.
const (
	defaultProvider = "gemini"
	defaultModel    = "gemini-2.0-flash-001"
)

type CreateTenantRequest struct {
	Name     string  `json:"name"`
	Provider string  `json:"provider"`
	Model    string  `json:"model"`
	APIKey   *string `json:"apiKey"` // LLM provider key
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type BrandingRequest struct {
	BrandColor string `json:"brandColor"`
	Font       string `json:"font"`
}

// @Summary List tenants
// @Tags Tenants
// @Produce json
// @Success 200 {array} model.Tenant
// @Router /tenants [get]
func (a *API) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := a.Store.ListTenants()
	if err != nil {
		serverError(w, err, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, tenants)
}

// @Summary Get tenant
// @Tags Tenants
// @Param id path string true "Tenant ID"
// @Produce json
// @Success 200 {object} model.Tenant
// @Router /tenants/{id} [get]
func (a *API) GetTenant(w http.ResponseWriter, r *http.Request) {
	tenant, err := a.Store.GetTenant(chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		serverError(w, err, "Database error")
		return
	}
	writeJSON(w, http.StatusOK, tenant)
}

// @Summary Create tenant
// @Tags Tenants
// @Accept json
// @Produce json
// @Success 200 {object} model.Tenant
// @Router /tenants [post]
func (a *API) CreateTenant(w http.ResponseWriter, r *http.Request) {
	var req CreateTenantRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name required")
		return
	}

	if req.Provider == "" {
		req.Provider = defaultProvider
	}
	if req.Model == "" {
		req.Model = defaultModel
	}

	tenant := &model.Tenant{
		ID:        idgen.New("tnt"),
		Name:      req.Name,
		Status:    model.TenantStatusActive,
		CreatedAt: time.Now(),
		APIKey:    idgen.New("ak"),
		Provider:  req.Provider,
		Model:     req.Model,
		LLMAPIKey: req.APIKey,
		Settings:  map[string]any{},
	}

	if err := a.Store.CreateTenant(tenant); err != nil {
		serverError(w, err, "Failed to create tenant")
		return
	}
	writeJSON(w, http.StatusOK, tenant)
}

// @Summary Patch tenant
// @Tags Tenants
// @Param id path string true "Tenant ID"
// @Accept json
// @Produce json
// @Success 200 {object} model.Tenant
// @Router /tenants/{id} [patch]
func (a *API) UpdateTenant(w http.ResponseWriter, r *http.Request) {
	var patch model.TenantPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if patch.Empty() {
		writeError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	tenant, err := a.Store.UpdateTenant(chi.URLParam(r, "id"), patch)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		serverError(w, err, "Failed to update tenant")
		return
	}
	writeJSON(w, http.StatusOK, tenant)
}

// @Summary Set tenant status
// @Tags Tenants
// @Param id path string true "Tenant ID"
// @Accept json
// @Produce json
// @Success 200 {object} model.Tenant
// @Router /tenants/{id}/status [patch]
func (a *API) UpdateTenantStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Status != model.TenantStatusActive && req.Status != model.TenantStatusDisabled {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	tenant, err := a.Store.UpdateTenantStatus(chi.URLParam(r, "id"), req.Status)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		serverError(w, err, "Failed to update status")
		return
	}
	writeJSON(w, http.StatusOK, tenant)
}

// @Summary Patch tenant branding
// @Tags Tenants
// @Param id path string true "Tenant ID"
// @Accept json
// @Produce json
// @Success 200 {object} model.Tenant
// @Router /tenants/{id}/branding [patch]
func (a *API) UpdateTenantBranding(w http.ResponseWriter, r *http.Request) {
	var req BrandingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := chi.URLParam(r, "id")
	tenant, err := a.Store.GetTenant(id)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		serverError(w, err, "Database error")
		return
	}

	// Merge into the stored settings; unrelated keys stay untouched.
	settings := tenant.Settings
	if settings == nil {
		settings = map[string]any{}
	}
	if req.BrandColor != "" {
		settings["brandColor"] = req.BrandColor
	}
	if req.Font != "" {
		settings["font"] = req.Font
	}

	updated, err := a.Store.UpdateTenantSettings(id, settings)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		serverError(w, err, "Failed to update branding")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
