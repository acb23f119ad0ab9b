// internal/storage/usage.go
package storage

import (
	"fmt"

	"tenant-portal/internal/model"
)

// InsertUsage appends one usage event. No team existence check: the
// table carries no FK and gateways may report for teams deleted since.
func (s *Storage) InsertUsage(u *model.UsageEvent) error {
	_, err := s.DB.Exec(`
		INSERT INTO token_usage (id, team_id, email, tokens_in, tokens_out, cost, model, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.TeamID, u.Email, u.TokensIn, u.TokensOut, u.Cost, u.Model, u.Timestamp)
	return err
}

// TeamUsage sums tokens and cost per team of the tenant. LEFT JOIN keeps
// teams with zero events in the report.
func (s *Storage) TeamUsage(tenantID string) ([]model.TeamUsageRow, error) {
	rows, err := s.DB.Query(`
		SELECT
			t.name AS team_name,
			t.id AS team_id,
			COALESCE(SUM(u.tokens_in), 0) AS total_tokens_in,
			COALESCE(SUM(u.tokens_out), 0) AS total_tokens_out,
			COALESCE(SUM(u.cost), 0) AS total_cost
		FROM teams t
		LEFT JOIN token_usage u ON t.id = u.team_id
		WHERE t.tenant_id = $1
		GROUP BY t.id, t.name`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("team usage: %w", err)
	}
	defer rows.Close()

	report := []model.TeamUsageRow{}
	for rows.Next() {
		var r model.TeamUsageRow
		if err := rows.Scan(&r.TeamName, &r.TeamID, &r.TotalTokensIn, &r.TotalTokensOut, &r.TotalCost); err != nil {
			return nil, fmt.Errorf("scan team usage: %w", err)
		}
		report = append(report, r)
	}
	return report, rows.Err()
}

// TopUserUsage ranks emails by total cost across the tenant's teams.
// Events without an email are excluded.
func (s *Storage) TopUserUsage(tenantID string, limit int) ([]model.UserUsageRow, error) {
	rows, err := s.DB.Query(`
		SELECT
			u.email,
			t.name AS team_name,
			SUM(u.cost) AS total_cost,
			SUM(u.tokens_in + u.tokens_out) AS total_tokens
		FROM token_usage u
		JOIN teams t ON u.team_id = t.id
		WHERE t.tenant_id = $1 AND u.email IS NOT NULL
		GROUP BY u.email, t.name
		ORDER BY total_cost DESC
		LIMIT $2`, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("user usage: %w", err)
	}
	defer rows.Close()

	report := []model.UserUsageRow{}
	for rows.Next() {
		var r model.UserUsageRow
		if err := rows.Scan(&r.Email, &r.TeamName, &r.TotalCost, &r.TotalTokens); err != nil {
			return nil, fmt.Errorf("scan user usage: %w", err)
		}
		report = append(report, r)
	}
	return report, rows.Err()
}
