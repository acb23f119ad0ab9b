// internal/model/team.go
package model

import (
	"encoding/json"
	"time"
)

// Team is a sub-organization under a tenant with its own LLM provider
// configuration. APIKey is the LLM provider key; TeamKey is the
// server-generated secret members use to log in as the team.
type Team struct {
	ID        string         `json:"id" db:"id"`
	TenantID  string         `json:"-" db:"tenant_id"`
	Name      string         `json:"name" db:"name"`
	Provider  string         `json:"provider" db:"provider"`
	APIKey    *string        `json:"apiKey" db:"api_key"`
	TeamKey   string         `json:"teamKey" db:"team_key"`
	Model     string         `json:"model" db:"model"`
	CreatedAt time.Time      `json:"createdAt" db:"created_at"`
	Styles    map[string]any `json:"styles" db:"styles"`
}

type TeamPatch struct {
	Name     *string         `json:"name"`
	Provider *string         `json:"provider"`
	APIKey   *string         `json:"apiKey"`
	Model    *string         `json:"model"`
	Styles   json.RawMessage `json:"styles"`
}

func (p TeamPatch) Empty() bool {
	return p.Name == nil && p.Provider == nil && p.APIKey == nil &&
		p.Model == nil && p.Styles == nil
}
