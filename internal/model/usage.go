// internal/model/usage.go
package model

import "time"

// UsageEvent is an append-only record of LLM token consumption. team_id
// carries no foreign key: events may outlive their team and inserts do
// not verify the team exists.
type UsageEvent struct {
	ID        string    `db:"id"`
	TeamID    string    `db:"team_id"`
	Email     *string   `db:"email"`
	TokensIn  int64     `db:"tokens_in"`
	TokensOut int64     `db:"tokens_out"`
	Cost      float64   `db:"cost"`
	Model     *string   `db:"model"`
	Timestamp time.Time `db:"timestamp"`
}

// UsageSubmission is the wire shape accepted by POST /api/usage and by
// the AMQP usage queue. Both ingest paths decode the same body.
type UsageSubmission struct {
	TeamID    string  `json:"teamId"`
	Email     *string `json:"email"`
	TokensIn  int64   `json:"tokensIn"`
	TokensOut int64   `json:"tokensOut"`
	Cost      float64 `json:"cost"`
	Model     *string `json:"model"`
}

// TeamUsageRow is one line of the per-team aggregation. Key names match
// the SQL aliases the report has always exposed.
type TeamUsageRow struct {
	TeamName       string  `json:"team_name" db:"team_name"`
	TeamID         string  `json:"team_id" db:"team_id"`
	TotalTokensIn  int64   `json:"total_tokens_in" db:"total_tokens_in"`
	TotalTokensOut int64   `json:"total_tokens_out" db:"total_tokens_out"`
	TotalCost      float64 `json:"total_cost" db:"total_cost"`
}

// UserUsageRow is one line of the top-spenders list.
type UserUsageRow struct {
	Email       string  `json:"email" db:"email"`
	TeamName    string  `json:"team_name" db:"team_name"`
	TotalCost   float64 `json:"total_cost" db:"total_cost"`
	TotalTokens int64   `json:"total_tokens" db:"total_tokens"`
}
