// internal/storage/tenants.go
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tenant-portal/internal/model"
)

// Legacy rows may hold NULL in columns the API treats as plain strings.
const tenantCols = `id, name, COALESCE(status, ''), created_at,
	COALESCE(api_key, ''), COALESCE(provider, ''), COALESCE(model, ''),
	llm_api_key, settings`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTenant(sc rowScanner) (*model.Tenant, error) {
	var t model.Tenant
	var created sql.NullTime
	var settings []byte
	err := sc.Scan(&t.ID, &t.Name, &t.Status, &created, &t.APIKey,
		&t.Provider, &t.Model, &t.LLMAPIKey, &settings)
	if err != nil {
		return nil, err
	}
	t.CreatedAt = created.Time
	t.Settings = decodeJSONMap(settings)
	return &t, nil
}

func decodeJSONMap(raw []byte) map[string]any {
	m := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &m)
	}
	return m
}

func (s *Storage) ListTenants() ([]model.Tenant, error) {
	rows, err := s.DB.Query(`SELECT ` + tenantCols + ` FROM tenants`)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	tenants := []model.Tenant{}
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		tenants = append(tenants, *t)
	}
	return tenants, rows.Err()
}

func (s *Storage) GetTenant(id string) (*model.Tenant, error) {
	row := s.DB.QueryRow(`SELECT `+tenantCols+` FROM tenants WHERE id = $1`, id)
	t, err := scanTenant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return t, nil
}

func (s *Storage) TenantExists(id string) (bool, error) {
	var one int
	err := s.DB.QueryRow(`SELECT 1 FROM tenants WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *Storage) CreateTenant(t *model.Tenant) error {
	settings, err := json.Marshal(t.Settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	_, err = s.DB.Exec(`
		INSERT INTO tenants (id, name, status, created_at, api_key, provider, model, llm_api_key, settings)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.Name, t.Status, t.CreatedAt, t.APIKey, t.Provider, t.Model, t.LLMAPIKey, settings)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// UpdateTenant applies the present patch fields in one statement. The
// SET list is assembled from this fixed column mapping only; client
// input never names a column.
func (s *Storage) UpdateTenant(id string, p model.TenantPatch) (*model.Tenant, error) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Status != nil {
		add("status", *p.Status)
	}
	if p.Provider != nil {
		add("provider", *p.Provider)
	}
	if p.Model != nil {
		add("model", *p.Model)
	}
	if p.LLMAPIKey != nil {
		add("llm_api_key", *p.LLMAPIKey)
	}
	if p.Settings != nil {
		add("settings", []byte(p.Settings))
	}
	if len(sets) == 0 {
		return s.GetTenant(id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE tenants SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), tenantCols)

	t, err := scanTenant(s.DB.QueryRow(query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update tenant: %w", err)
	}
	return t, nil
}

func (s *Storage) UpdateTenantStatus(id, status string) (*model.Tenant, error) {
	row := s.DB.QueryRow(`UPDATE tenants SET status = $1 WHERE id = $2 RETURNING `+tenantCols,
		status, id)
	t, err := scanTenant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update tenant status: %w", err)
	}
	return t, nil
}

func (s *Storage) UpdateTenantSettings(id string, settings map[string]any) (*model.Tenant, error) {
	raw, err := json.Marshal(settings)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	row := s.DB.QueryRow(`UPDATE tenants SET settings = $1 WHERE id = $2 RETURNING `+tenantCols,
		raw, id)
	t, err := scanTenant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update tenant settings: %w", err)
	}
	return t, nil
}
