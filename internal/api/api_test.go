package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tenant-portal/internal/auth"
	"tenant-portal/internal/config"
	"tenant-portal/internal/model"
	"tenant-portal/internal/storage"
)

var errDB = errors.New("db down")

// fakeStore is an in-memory Store with the same semantics the SQL layer
// provides: sentinel errors, scoped updates, uniqueness, left-join
// aggregation.
type fakeStore struct {
	pingErr error
	tenants map[string]*model.Tenant
	teams   map[string]*model.Team
	members []model.TeamMember
	files   map[string]*model.File
	usage   []model.UsageEvent
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tenants: map[string]*model.Tenant{},
		teams:   map[string]*model.Team{},
		files:   map[string]*model.File{},
	}
}

func (f *fakeStore) Ping() error { return f.pingErr }

func (f *fakeStore) ListTenants() ([]model.Tenant, error) {
	out := []model.Tenant{}
	for _, t := range f.tenants {
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeStore) GetTenant(id string) (*model.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeStore) TenantExists(id string) (bool, error) {
	_, ok := f.tenants[id]
	return ok, nil
}

func (f *fakeStore) CreateTenant(t *model.Tenant) error {
	if _, ok := f.tenants[t.ID]; ok {
		return storage.ErrDuplicate
	}
	cp := *t
	f.tenants[t.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateTenant(id string, p model.TenantPatch) (*model.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Provider != nil {
		t.Provider = *p.Provider
	}
	if p.Model != nil {
		t.Model = *p.Model
	}
	if p.LLMAPIKey != nil {
		t.LLMAPIKey = p.LLMAPIKey
	}
	if p.Settings != nil {
		m := map[string]any{}
		if err := json.Unmarshal(p.Settings, &m); err != nil {
			return nil, err
		}
		t.Settings = m
	}
	cp := *t
	return &cp, nil
}

func (f *fakeStore) UpdateTenantStatus(id, status string) (*model.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	t.Status = status
	cp := *t
	return &cp, nil
}

func (f *fakeStore) UpdateTenantSettings(id string, settings map[string]any) (*model.Tenant, error) {
	t, ok := f.tenants[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	t.Settings = settings
	cp := *t
	return &cp, nil
}

func (f *fakeStore) ListTeams(tenantID string) ([]model.Team, error) {
	out := []model.Team{}
	for _, tm := range f.teams {
		if tm.TenantID == tenantID {
			out = append(out, *tm)
		}
	}
	return out, nil
}

func (f *fakeStore) GetTeamByID(id string) (*model.Team, error) {
	tm, ok := f.teams[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *tm
	return &cp, nil
}

func (f *fakeStore) CreateTeam(t *model.Team) error {
	if _, ok := f.teams[t.ID]; ok {
		return storage.ErrDuplicate
	}
	cp := *t
	f.teams[t.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateTeam(tenantID, teamID string, p model.TeamPatch) (*model.Team, error) {
	tm, ok := f.teams[teamID]
	if !ok || tm.TenantID != tenantID {
		return nil, storage.ErrNotFound
	}
	if p.Name != nil {
		tm.Name = *p.Name
	}
	if p.Provider != nil {
		tm.Provider = *p.Provider
	}
	if p.APIKey != nil {
		tm.APIKey = p.APIKey
	}
	if p.Model != nil {
		tm.Model = *p.Model
	}
	if p.Styles != nil {
		m := map[string]any{}
		if err := json.Unmarshal(p.Styles, &m); err != nil {
			return nil, err
		}
		tm.Styles = m
	}
	cp := *tm
	return &cp, nil
}

func (f *fakeStore) AddMember(m *model.TeamMember) error {
	for _, existing := range f.members {
		if existing.TeamID == m.TeamID && existing.Email == m.Email {
			return storage.ErrDuplicate
		}
	}
	f.members = append(f.members, *m)
	return nil
}

func (f *fakeStore) ListMembers(teamID string) ([]model.TeamMember, error) {
	out := []model.TeamMember{}
	for _, m := range f.members {
		if m.TeamID == teamID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (f *fakeStore) InsertFile(file *model.File) error {
	cp := *file
	f.files[file.ID] = &cp
	return nil
}

func (f *fakeStore) ListFiles(tenantID string) ([]model.File, error) {
	out := []model.File{}
	for _, fl := range f.files {
		if fl.TenantID == tenantID {
			out = append(out, *fl)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out, nil
}

func (f *fakeStore) DeleteFile(tenantID, fileID string) error {
	fl, ok := f.files[fileID]
	if !ok || fl.TenantID != tenantID {
		return storage.ErrNotFound
	}
	delete(f.files, fileID)
	return nil
}

func (f *fakeStore) InsertUsage(u *model.UsageEvent) error {
	f.usage = append(f.usage, *u)
	return nil
}

func (f *fakeStore) TeamUsage(tenantID string) ([]model.TeamUsageRow, error) {
	out := []model.TeamUsageRow{}
	for _, tm := range f.teams {
		if tm.TenantID != tenantID {
			continue
		}
		row := model.TeamUsageRow{TeamName: tm.Name, TeamID: tm.ID}
		for _, u := range f.usage {
			if u.TeamID == tm.ID {
				row.TotalTokensIn += u.TokensIn
				row.TotalTokensOut += u.TokensOut
				row.TotalCost += u.Cost
			}
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out, nil
}

func (f *fakeStore) TopUserUsage(tenantID string, limit int) ([]model.UserUsageRow, error) {
	type key struct{ email, teamName string }
	sums := map[key]*model.UserUsageRow{}
	for _, u := range f.usage {
		if u.Email == nil {
			continue
		}
		tm, ok := f.teams[u.TeamID]
		if !ok || tm.TenantID != tenantID {
			continue
		}
		k := key{*u.Email, tm.Name}
		row, ok := sums[k]
		if !ok {
			row = &model.UserUsageRow{Email: k.email, TeamName: k.teamName}
			sums[k] = row
		}
		row.TotalCost += u.Cost
		row.TotalTokens += u.TokensIn + u.TokensOut
	}
	out := []model.UserUsageRow{}
	for _, row := range sums {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TotalCost > out[j].TotalCost })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ---- helpers ----

func newTestConfig() *config.Config {
	auth.Configure("test-secret", time.Hour)
	cfg := &config.Config{}
	cfg.Auth.AdminUser = "admin"
	cfg.Auth.AdminPass = "admin123"
	return cfg
}

func newTestRouter(fs *fakeStore) http.Handler {
	return NewAPI(fs, newTestConfig()).Router()
}

func doAuthed(t *testing.T, h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func seedTenant(fs *fakeStore, id, name, status string) *model.Tenant {
	t := &model.Tenant{
		ID:        id,
		Name:      name,
		Status:    status,
		CreatedAt: time.Now(),
		APIKey:    "ak_" + id,
		Provider:  "gemini",
		Model:     "gemini-2.0-flash-001",
		Settings:  map[string]any{},
	}
	fs.tenants[id] = t
	return t
}

func seedTeam(fs *fakeStore, id, tenantID, name, teamKey string) *model.Team {
	tm := &model.Team{
		ID:        id,
		TenantID:  tenantID,
		Name:      name,
		Provider:  "openai",
		TeamKey:   teamKey,
		Model:     "default",
		CreatedAt: time.Now(),
		Styles:    map[string]any{},
	}
	fs.teams[id] = tm
	return tm
}

func TestHealth(t *testing.T) {
	fs := newFakeStore()
	router := newTestRouter(fs)

	rec := doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "connected", decodeBody(t, rec)["db"])

	fs.pingErr = errDB
	rec = doJSON(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "disconnected", decodeBody(t, rec)["db"])
}

func TestRoot(t *testing.T) {
	router := newTestRouter(newFakeStore())
	rec := doJSON(t, router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "tenant-portal-backend", decodeBody(t, rec)["service"])
}
