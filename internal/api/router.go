// Package api exposes the core operations over HTTP. It owns no business
// logic: handlers decode requests, call the services, and map error types to
// status codes.
package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/openmaturity/maturity/internal/badge"
	"github.com/openmaturity/maturity/internal/catalog"
	"github.com/openmaturity/maturity/internal/db"
	"github.com/openmaturity/maturity/internal/middleware"
	"github.com/openmaturity/maturity/internal/models"
	"github.com/openmaturity/maturity/internal/services"
)

type Router struct {
	auth        *services.AuthService
	assessments *services.AssessmentService
}

func NewRouter(auth *services.AuthService, assessments *services.AssessmentService) *Router {
	return &Router{auth: auth, assessments: assessments}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/auth/register", rt.handleRegister)       // POST
	mux.HandleFunc("/api/auth/login", rt.handleLogin)             // POST
	mux.HandleFunc("/api/catalog", rt.handleCatalog)              // GET
	mux.HandleFunc("/api/assessments", rt.handleAssessments)      // POST run+persist, GET list
	mux.HandleFunc("/api/assessments/export", rt.handleExport)    // GET
	mux.HandleFunc("/api/badge/", rt.handleBadge)                 // GET /api/badge/{tier}.svg
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses so clients can tell
// a bad submission from a constraint collision.
func writeError(w http.ResponseWriter, err error) {
	if se, ok := services.AsServiceError(err); ok {
		status := http.StatusBadRequest
		switch se.Code {
		case services.ErrorUnauthorized:
			status = http.StatusUnauthorized
		case services.ErrorNotFound:
			status = http.StatusNotFound
		case services.ErrorConflict:
			status = http.StatusConflict
		}
		writeJSON(w, status, map[string]string{"error": se.Message, "code": string(se.Code)})
		return
	}
	if ie, ok := db.AsIntegrityError(err); ok {
		writeJSON(w, http.StatusConflict, map[string]string{"error": ie.Message, "code": "integrity_error"})
		return
	}
	if ce, ok := catalog.AsConfigError(err); ok {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": ce.Message, "code": string(ce.Code)})
		return
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// POST /api/auth/register
func (rt *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Register(req.Username, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": res.Token, "user_id": res.UserID, "username": res.Username})
}

// POST /api/auth/login
func (rt *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := rt.auth.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": res.Token, "user_id": res.UserID, "username": res.Username})
}

// GET /api/catalog
func (rt *Router) handleCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, rt.assessments.Catalog())
}

func (rt *Router) handleAssessments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.handleSubmitAssessment(w, r)
	case http.MethodGet:
		rt.handleListAssessments(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// POST /api/assessments
// { project_name: string, responses: {criterion_id: bool} }
// The owner comes from the bearer token when present; anonymous otherwise.
func (rt *Router) handleSubmitAssessment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectName string          `json:"project_name"`
		Responses   map[string]bool `json:"responses"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	raw := make(map[string]any, len(req.Responses))
	for k, v := range req.Responses {
		raw[k] = v
	}
	responses := services.ResponsesFromMap(raw)
	userID, _ := middleware.UserIDFromContext(r.Context())
	result, rec, err := rt.assessments.RunAndPersist(req.ProjectName, responses, userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":           rec.ID,
		"project_name": rec.ProjectName,
		"score":        result.Score,
		"tier":         result.Tier,
		"badge_url":    result.BadgeURL,
		"categories":   result.Categories,
		"created_at":   rec.CreatedAt,
	})
}

// GET /api/assessments?project=pattern&mine=1
func (rt *Router) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	filter := models.AssessmentFilter{ProjectPattern: r.URL.Query().Get("project")}
	if r.URL.Query().Get("mine") == "1" {
		uid, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		filter.UserID = uid
	}
	list, err := rt.assessments.List(filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assessments": list})
}

// GET /api/assessments/export?project=pattern&mine=1
func (rt *Router) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	filter := models.AssessmentFilter{ProjectPattern: r.URL.Query().Get("project")}
	if r.URL.Query().Get("mine") == "1" {
		uid, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		filter.UserID = uid
	}
	out, err := rt.assessments.ExportCSV(filter)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=assessments.csv")
	_, _ = w.Write(out)
}

// GET /api/badge/{tier}.svg
// Tier resolution is total, so this always serves an image; unknown tiers
// get the WIP badge.
func (rt *Router) handleBadge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	tier := strings.TrimPrefix(r.URL.Path, "/api/badge/")
	tier = strings.TrimSuffix(tier, ".svg")
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(badge.RenderSVG("maturity", tier))
}
