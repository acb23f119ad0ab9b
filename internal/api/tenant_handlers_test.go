package api

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateTenant(t *testing.T) {
	fs := newFakeStore()
	router := newTestRouter(fs)

	rec := doJSON(t, router, http.MethodPost, "/tenants", map[string]any{"name": "Acme"})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Regexp(t, regexp.MustCompile(`^tnt_[a-z0-9]{8}$`), body["id"])
	require.Regexp(t, regexp.MustCompile(`^ak_[a-z0-9]{8}$`), body["apiKey"])
	require.Equal(t, "Acme", body["name"])
	require.Equal(t, "active", body["status"])
	require.Equal(t, "gemini", body["provider"])
	require.Equal(t, "gemini-2.0-flash-001", body["model"])
	require.NotEmpty(t, body["createdAt"])

	// persisted
	require.Len(t, fs.tenants, 1)
}

func TestCreateTenantRequiresName(t *testing.T) {
	fs := newFakeStore()
	router := newTestRouter(fs)

	rec := doJSON(t, router, http.MethodPost, "/tenants", map[string]any{"provider": "openai"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Name required", decodeBody(t, rec)["error"])
	require.Empty(t, fs.tenants)
}

func TestGetTenant(t *testing.T) {
	fs := newFakeStore()
	seedTenant(fs, "tnt_aaaaaaaa", "Acme", "active")
	router := newTestRouter(fs)

	rec := doJSON(t, router, http.MethodGet, "/tenants/tnt_aaaaaaaa", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Acme", decodeBody(t, rec)["name"])

	rec = doJSON(t, router, http.MethodGet, "/tenants/tnt_missing0", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Not found", decodeBody(t, rec)["error"])
}

func TestListTenants(t *testing.T) {
	fs := newFakeStore()
	seedTenant(fs, "tnt_aaaaaaaa", "Acme", "active")
	seedTenant(fs, "tnt_bbbbbbbb", "Globex", "disabled")
	router := newTestRouter(fs)

	rec := doJSON(t, router, http.MethodGet, "/tenants", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 2)
}

func TestUpdateTenant(t *testing.T) {
	fs := newFakeStore()
	seedTenant(fs, "tnt_aaaaaaaa", "Acme", "active")
	router := newTestRouter(fs)

	rec := doJSON(t, router, http.MethodPatch, "/tenants/tnt_aaaaaaaa", map[string]any{
		"name":   "Acme Corp",
		"apiKey": "sk-new-llm-key",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "Acme Corp", body["name"])
	require.Equal(t, "sk-new-llm-key", body["llm_api_key"])

	// empty patch body
	rec = doJSON(t, router, http.MethodPatch, "/tenants/tnt_aaaaaaaa", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "No fields to update", decodeBody(t, rec)["error"])

	// unknown tenant
	rec = doJSON(t, router, http.MethodPatch, "/tenants/tnt_missing0", map[string]any{"name": "X"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTenantStatus(t *testing.T) {
	fs := newFakeStore()
	seedTenant(fs, "tnt_aaaaaaaa", "Acme", "active")
	router := newTestRouter(fs)

	rec := doJSON(t, router, http.MethodPatch, "/tenants/tnt_aaaaaaaa/status", map[string]any{"status": "disabled"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "disabled", decodeBody(t, rec)["status"])

	// only the two enum values are accepted, and a rejected value must
	// leave the stored status untouched
	rec = doJSON(t, router, http.MethodPatch, "/tenants/tnt_aaaaaaaa/status", map[string]any{"status": "archived"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid status", decodeBody(t, rec)["error"])
	require.Equal(t, "disabled", fs.tenants["tnt_aaaaaaaa"].Status)

	rec = doJSON(t, router, http.MethodPatch, "/tenants/tnt_missing0/status", map[string]any{"status": "active"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBrandingPatchMerges(t *testing.T) {
	fs := newFakeStore()
	tenant := seedTenant(fs, "tnt_aaaaaaaa", "Acme", "active")
	tenant.Settings = map[string]any{"brandColor": "#ff0000", "locale": "en"}
	router := newTestRouter(fs)

	// patching font alone keeps brandColor and unrelated keys
	rec := doJSON(t, router, http.MethodPatch, "/tenants/tnt_aaaaaaaa/branding", map[string]any{"font": "Inter"})
	require.Equal(t, http.StatusOK, rec.Code)

	settings := decodeBody(t, rec)["settings"].(map[string]any)
	require.Equal(t, "#ff0000", settings["brandColor"])
	require.Equal(t, "Inter", settings["font"])
	require.Equal(t, "en", settings["locale"])

	rec = doJSON(t, router, http.MethodPatch, "/tenants/tnt_missing0/branding", map[string]any{"font": "Inter"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}
