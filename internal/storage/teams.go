// internal/storage/teams.go
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"tenant-portal/internal/model"
)

const teamCols = `id, tenant_id, name, COALESCE(provider, ''), api_key,
	COALESCE(team_key, ''), COALESCE(model, ''), created_at, styles`

func scanTeam(sc rowScanner) (*model.Team, error) {
	var t model.Team
	var created sql.NullTime
	var styles []byte
	err := sc.Scan(&t.ID, &t.TenantID, &t.Name, &t.Provider, &t.APIKey,
		&t.TeamKey, &t.Model, &created, &styles)
	if err != nil {
		return nil, err
	}
	t.CreatedAt = created.Time
	t.Styles = decodeJSONMap(styles)
	return &t, nil
}

func (s *Storage) ListTeams(tenantID string) ([]model.Team, error) {
	rows, err := s.DB.Query(`SELECT `+teamCols+` FROM teams WHERE tenant_id = $1`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := []model.Team{}
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		teams = append(teams, *t)
	}
	return teams, rows.Err()
}

// GetTeamByID looks a team up without tenant scoping. Used by SSO login,
// where the caller only holds the team id.
func (s *Storage) GetTeamByID(id string) (*model.Team, error) {
	row := s.DB.QueryRow(`SELECT `+teamCols+` FROM teams WHERE id = $1`, id)
	t, err := scanTeam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	return t, nil
}

func (s *Storage) GetTeam(tenantID, teamID string) (*model.Team, error) {
	row := s.DB.QueryRow(`SELECT `+teamCols+` FROM teams WHERE id = $1 AND tenant_id = $2`,
		teamID, tenantID)
	t, err := scanTeam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	return t, nil
}

func (s *Storage) CreateTeam(t *model.Team) error {
	styles, err := json.Marshal(t.Styles)
	if err != nil {
		return fmt.Errorf("encode styles: %w", err)
	}
	_, err = s.DB.Exec(`
		INSERT INTO teams (id, tenant_id, name, provider, api_key, team_key, model, created_at, styles)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.TenantID, t.Name, t.Provider, t.APIKey, t.TeamKey, t.Model, t.CreatedAt, styles)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// UpdateTeam patches a team scoped to its tenant in a single statement;
// a team id under the wrong tenant updates nothing and reports
// ErrNotFound.
func (s *Storage) UpdateTeam(tenantID, teamID string, p model.TeamPatch) (*model.Team, error) {
	var sets []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Provider != nil {
		add("provider", *p.Provider)
	}
	if p.APIKey != nil {
		add("api_key", *p.APIKey)
	}
	if p.Model != nil {
		add("model", *p.Model)
	}
	if p.Styles != nil {
		add("styles", []byte(p.Styles))
	}
	if len(sets) == 0 {
		return s.GetTeam(tenantID, teamID)
	}

	args = append(args, teamID, tenantID)
	query := fmt.Sprintf(`UPDATE teams SET %s WHERE id = $%d AND tenant_id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args)-1, len(args), teamCols)

	t, err := scanTeam(s.DB.QueryRow(query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update team: %w", err)
	}
	return t, nil
}
