// internal/storage/members.go
package storage

import (
	"fmt"

	"tenant-portal/internal/model"
)

// AddMember inserts a membership row. The UNIQUE(team_id, email)
// constraint decides conflicts; concurrent duplicate submissions both
// reach the insert and exactly one wins.
func (s *Storage) AddMember(m *model.TeamMember) error {
	_, err := s.DB.Exec(`
		INSERT INTO team_members (id, team_id, email, created_at)
		VALUES ($1, $2, $3, $4)`,
		m.ID, m.TeamID, m.Email, m.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func (s *Storage) ListMembers(teamID string) ([]model.TeamMember, error) {
	rows, err := s.DB.Query(`
		SELECT id, team_id, email, created_at
		FROM team_members
		WHERE team_id = $1
		ORDER BY created_at DESC`, teamID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	members := []model.TeamMember{}
	for rows.Next() {
		var m model.TeamMember
		if err := rows.Scan(&m.ID, &m.TeamID, &m.Email, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
