// internal/api/api.go
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"tenant-portal/internal/auth"
	"tenant-portal/internal/config"
	"tenant-portal/internal/metrics"
	"tenant-portal/internal/model"
)

// Store is what the handlers need from the persistence layer.
// *storage.Storage satisfies it; tests use an in-memory fake.
type Store interface {
	Ping() error

	ListTenants() ([]model.Tenant, error)
	GetTenant(id string) (*model.Tenant, error)
	TenantExists(id string) (bool, error)
	CreateTenant(t *model.Tenant) error
	UpdateTenant(id string, p model.TenantPatch) (*model.Tenant, error)
	UpdateTenantStatus(id, status string) (*model.Tenant, error)
	UpdateTenantSettings(id string, settings map[string]any) (*model.Tenant, error)

	ListTeams(tenantID string) ([]model.Team, error)
	GetTeamByID(id string) (*model.Team, error)
	CreateTeam(t *model.Team) error
	UpdateTeam(tenantID, teamID string, p model.TeamPatch) (*model.Team, error)

	AddMember(m *model.TeamMember) error
	ListMembers(teamID string) ([]model.TeamMember, error)

	InsertFile(f *model.File) error
	ListFiles(tenantID string) ([]model.File, error)
	DeleteFile(tenantID, fileID string) error

	InsertUsage(u *model.UsageEvent) error
	TeamUsage(tenantID string) ([]model.TeamUsageRow, error)
	TopUserUsage(tenantID string, limit int) ([]model.UserUsageRow, error)
}

type API struct {
	Store Store
	Cfg   *config.Config
}

func NewAPI(store Store, cfg *config.Config) *API {
	return &API{
		Store: store,
		Cfg:   cfg,
	}
}

func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(metrics.Middleware)

	// Public
	r.Get("/", a.Root)
	r.Get("/health", a.Health)
	r.Handle("/metrics", metrics.Handler())

	r.Post("/login/admin", a.LoginAdmin)
	r.Post("/login/tenant", a.LoginTenant)
	r.Post("/login/sso", a.LoginSSO)
	r.Post("/auth/login", a.LoginSSO)

	// Gateways report usage without a portal session.
	r.Post("/api/usage", a.RecordUsage)

	// Admin surface. Token enforcement is config-gated: the portal
	// frontend predates verifiable tokens.
	r.Group(func(r chi.Router) {
		if a.Cfg.Auth.RequireToken {
			r.Use(auth.JWTAuthMiddleware)
		}

		r.Get("/tenants", a.ListTenants)
		r.Post("/tenants", a.CreateTenant)
		r.Get("/tenants/{id}", a.GetTenant)
		r.Patch("/tenants/{id}", a.UpdateTenant)
		r.Patch("/tenants/{id}/status", a.UpdateTenantStatus)
		r.Patch("/tenants/{id}/branding", a.UpdateTenantBranding)

		r.Get("/tenants/{id}/teams", a.ListTeams)
		r.Post("/tenants/{id}/teams", a.CreateTeam)
		r.Patch("/tenants/{id}/teams/{teamId}", a.UpdateTeam)

		r.Post("/tenants/{id}/teams/{teamId}/members", a.AddTeamMember)
		r.Get("/tenants/{id}/teams/{teamId}/members", a.ListTeamMembers)

		r.Get("/tenants/{id}/files", a.ListFiles)
		r.Post("/tenants/{id}/files", a.UploadFile)
		r.Delete("/tenants/{id}/files/{fileId}", a.DeleteFile)

		r.Get("/tenants/{id}/usage", a.TenantUsage)
	})

	return r
}

// @Summary Service banner
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (a *API) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "tenant-portal-backend",
	})
}

// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (a *API) Health(w http.ResponseWriter, r *http.Request) {
	if err := a.Store.Ping(); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status": "error",
			"db":     "disconnected",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"db":     "connected",
	})
}
