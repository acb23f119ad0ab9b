// internal/storage/schema.go
package storage

import "fmt"

// Migrate creates the schema if it does not exist. Idempotent; runs at
// every startup. token_usage deliberately carries no foreign key so
// events survive team deletion.
func (s *Storage) Migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS tenants (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			status VARCHAR(50) DEFAULT 'active',
			created_at TIMESTAMPTZ,
			api_key VARCHAR(100),
			provider VARCHAR(100),
			model VARCHAR(100),
			llm_api_key VARCHAR(255),
			settings JSONB
		)`,
		`CREATE TABLE IF NOT EXISTS teams (
			id VARCHAR(50) PRIMARY KEY,
			tenant_id VARCHAR(50) REFERENCES tenants(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			provider VARCHAR(100),
			api_key VARCHAR(255),
			team_key VARCHAR(100),
			model VARCHAR(100),
			created_at TIMESTAMPTZ,
			styles JSONB
		)`,
		`CREATE TABLE IF NOT EXISTS team_members (
			id VARCHAR(50) PRIMARY KEY,
			team_id VARCHAR(50) REFERENCES teams(id) ON DELETE CASCADE,
			email VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ,
			UNIQUE (team_id, email)
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			id VARCHAR(50) PRIMARY KEY,
			tenant_id VARCHAR(50) REFERENCES tenants(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			size BIGINT,
			content TEXT,
			uploaded_at TIMESTAMPTZ,
			url TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS token_usage (
			id VARCHAR(50) PRIMARY KEY,
			team_id VARCHAR(50) NOT NULL,
			email VARCHAR(255),
			tokens_in BIGINT DEFAULT 0,
			tokens_out BIGINT DEFAULT 0,
			cost DOUBLE PRECISION DEFAULT 0,
			model VARCHAR(100),
			timestamp TIMESTAMPTZ
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.DB.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
