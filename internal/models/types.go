package models

import "time"

// User is an account that can own assessments. It authenticates either via
// PasswordHash or via the (OAuthProvider, OAuthID) pair; both are empty only
// while the record is being assembled.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	OAuthProvider string    `json:"oauth_provider,omitempty"`
	OAuthID       string    `json:"oauth_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Assessment is one persisted scoring run. Responses hold the raw answer set
// as an arbitrary JSON-serializable mapping; UserID is empty for anonymous
// runs. Rows are write-once: created on completion, never mutated.
type Assessment struct {
	ID          string         `json:"id"`
	ProjectName string         `json:"project_name"`
	UserID      string         `json:"user_id,omitempty"`
	Responses   map[string]any `json:"responses"`
	CreatedAt   time.Time      `json:"created_at"`
}

// AssessmentFilter narrows an assessment listing. Zero values match
// everything; ProjectPattern is a SQL LIKE pattern.
type AssessmentFilter struct {
	UserID         string
	ProjectPattern string
}
