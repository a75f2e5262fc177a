// Package db provides the SQLite-backed persistence layer for users and
// assessments.
package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/openmaturity/maturity/internal/models"
)

// SQLiteStore persists users and assessments. Every operation is a single
// SQL statement executed in its own implicit transaction, so a constraint
// failure never leaves the connection in a poisoned state.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

// Open opens (or creates) the SQLite database at path and returns a store.
func Open(path string) (*SQLiteStore, error) {
	dsn := fmt.Sprintf("file:%s?cache=shared&_busy_timeout=5000", filepath.ToSlash(path))
	sqliteDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return NewSQLiteStore(sqliteDB)
}

// InitSchema creates all tables if absent. Safe to call repeatedly.
func (s *SQLiteStore) InitSchema() error {
	return RunMigrations(s.db, "")
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

func toNullString(v string) sql.NullString {
	if strings.TrimSpace(v) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

func encodeResponses(m map[string]any) (string, error) {
	if m == nil {
		m = map[string]any{}
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode responses: %w", err)
	}
	return string(b), nil
}

func decodeResponses(raw string) map[string]any {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		log.Printf("sqlite store: decode responses: %v", err)
		return nil
	}
	return out
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func newID(prefix string) string {
	return prefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// InsertUser stores a new user. An empty id gets a generated surrogate key;
// a zero CreatedAt gets the current UTC time. Username/email collisions and
// duplicate OAuth identities surface as IntegrityError.
func (s *SQLiteStore) InsertUser(u *models.User) (*models.User, error) {
	if u == nil {
		return nil, errors.New("nil user")
	}
	rec := *u
	if strings.TrimSpace(rec.Username) == "" {
		return nil, NewIntegrityError("users.username", "username is required")
	}
	if strings.TrimSpace(rec.Email) == "" {
		return nil, NewIntegrityError("users.email", "email is required")
	}
	if rec.ID == "" {
		rec.ID = newID("u")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`INSERT INTO users (id, username, email, password_hash, oauth_provider, oauth_id, created_at)
      VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Username, rec.Email,
		toNullString(rec.PasswordHash), toNullString(rec.OAuthProvider), toNullString(rec.OAuthID),
		rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	return &rec, nil
}

const userColumns = `id, username, email, COALESCE(password_hash, ''), COALESCE(oauth_provider, ''), COALESCE(oauth_id, ''), created_at`

func (s *SQLiteStore) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var created string
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.OAuthProvider, &u.OAuthID, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.CreatedAt = parseTime(created)
	return &u, nil
}

func (s *SQLiteStore) GetUser(id string) (*models.User, error) {
	return s.scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

// FindUserByEmail returns nil without error when no user matches.
func (s *SQLiteStore) FindUserByEmail(email string) (*models.User, error) {
	return s.scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (s *SQLiteStore) FindUserByUsername(username string) (*models.User, error) {
	return s.scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE username = ?`, username))
}

func (s *SQLiteStore) FindUserByOAuth(provider, oauthID string) (*models.User, error) {
	return s.scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE oauth_provider = ? AND oauth_id = ?`, provider, oauthID))
}

// InsertAssessment stores one completed scoring run. The project name is
// required; responses round-trip through JSON unchanged.
func (s *SQLiteStore) InsertAssessment(a *models.Assessment) (*models.Assessment, error) {
	if a == nil {
		return nil, errors.New("nil assessment")
	}
	rec := *a
	if strings.TrimSpace(rec.ProjectName) == "" {
		return nil, NewIntegrityError("assessments.project_name", "project name is required")
	}
	if rec.ID == "" {
		rec.ID = newID("a")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	responses, err := encodeResponses(rec.Responses)
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(`INSERT INTO assessments (id, project_name, user_id, responses, created_at)
      VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.ProjectName, toNullString(rec.UserID), responses,
		rec.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, mapSQLiteError(err)
	}
	return &rec, nil
}

func (s *SQLiteStore) GetAssessment(id string) (*models.Assessment, error) {
	row := s.db.QueryRow(`SELECT id, project_name, COALESCE(user_id, ''), responses, created_at
      FROM assessments WHERE id = ?`, id)
	var a models.Assessment
	var responses, created string
	err := row.Scan(&a.ID, &a.ProjectName, &a.UserID, &responses, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.Responses = decodeResponses(responses)
	a.CreatedAt = parseTime(created)
	return &a, nil
}

// ListAssessments returns assessments matching the filter, oldest first with
// id as tiebreaker so the order is stable across calls.
func (s *SQLiteStore) ListAssessments(f models.AssessmentFilter) ([]*models.Assessment, error) {
	query := `SELECT id, project_name, COALESCE(user_id, ''), responses, created_at FROM assessments`
	var conds []string
	var args []any
	if f.UserID != "" {
		conds = append(conds, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.ProjectPattern != "" {
		conds = append(conds, "project_name LIKE ?")
		args = append(args, f.ProjectPattern)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at ASC, id ASC"
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			log.Printf("sqlite store: ListAssessments: rows.Close: %v", cerr)
		}
	}()
	out := []*models.Assessment{}
	for rows.Next() {
		var a models.Assessment
		var responses, created string
		if err := rows.Scan(&a.ID, &a.ProjectName, &a.UserID, &responses, &created); err != nil {
			return nil, err
		}
		a.Responses = decodeResponses(responses)
		a.CreatedAt = parseTime(created)
		out = append(out, &a)
	}
	return out, rows.Err()
}
