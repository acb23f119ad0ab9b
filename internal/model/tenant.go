// internal/model/tenant.go
package model

import (
	"encoding/json"
	"time"
)

// Tenant statuses. The status column only ever holds one of these two.
const (
	TenantStatusActive   = "active"
	TenantStatusDisabled = "disabled"
)

type Tenant struct {
	ID        string         `json:"id" db:"id"`
	Name      string         `json:"name" db:"name"`
	Status    string         `json:"status" db:"status"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	APIKey    string         `json:"apiKey" db:"api_key"`
	Provider  string         `json:"provider" db:"provider"`
	Model     string         `json:"model" db:"model"`
	LLMAPIKey *string        `json:"llm_api_key" db:"llm_api_key"`
	Settings  map[string]any `json:"settings" db:"settings"`
}

// TenantPatch carries the updatable subset of tenant fields. Nil means
// "not supplied"; the storage layer only touches present fields, drawn
// from a fixed column list.
type TenantPatch struct {
	Name      *string         `json:"name"`
	Status    *string         `json:"status"`
	Provider  *string         `json:"provider"`
	Model     *string         `json:"model"`
	LLMAPIKey *string         `json:"apiKey"`
	Settings  json.RawMessage `json:"settings"`
}

func (p TenantPatch) Empty() bool {
	return p.Name == nil && p.Status == nil && p.Provider == nil &&
		p.Model == nil && p.LLMAPIKey == nil && p.Settings == nil
}
