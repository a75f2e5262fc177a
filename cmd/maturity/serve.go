package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/openmaturity/maturity/internal/api"
	"github.com/openmaturity/maturity/internal/db"
	"github.com/openmaturity/maturity/internal/middleware"
	"github.com/openmaturity/maturity/internal/scoring"
	"github.com/openmaturity/maturity/internal/services"
	"github.com/openmaturity/maturity/internal/utils"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP assessment service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	addr := utils.SafeEnv("MATURITY_ADDR", ":8080")
	dbPath := utils.SafeEnv("MATURITY_DB_PATH", "maturity.db")
	policyName := utils.SafeEnv("MATURITY_TIER_POLICY", "")

	cat, err := loadCatalog(utils.SafeEnv("MATURITY_CATALOG", ""))
	if err != nil {
		return err
	}
	policy, ok := scoring.PolicyByName(policyName)
	if !ok {
		return fmt.Errorf("unknown tier policy %q", policyName)
	}

	store, err := db.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			log.Printf("warning: failed to close store: %v", cerr)
		}
	}()
	if err := store.InitSchema(); err != nil {
		return err
	}

	auth := services.NewAuthService(store, middleware.SignToken)
	assessments := services.NewAssessmentService(cat, policy, store)

	mux := http.NewServeMux()
	api.NewRouter(auth, assessments).Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":     true,
			"name":   "Maturity API",
			"policy": policy.Name,
		})
	})

	handler := middleware.CORS(middleware.SecureHeaders(middleware.WithAuth(mux)))

	log.Printf("maturity server listening on %s (db=%s, policy=%s)", addr, dbPath, policy.Name)
	return http.ListenAndServe(addr, handler)
}
