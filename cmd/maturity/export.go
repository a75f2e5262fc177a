package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openmaturity/maturity/internal/db"
	"github.com/openmaturity/maturity/internal/models"
	"github.com/openmaturity/maturity/internal/scoring"
	"github.com/openmaturity/maturity/internal/services"
	"github.com/openmaturity/maturity/internal/utils"
)

func newExportCmd() *cobra.Command {
	var (
		dbPath      string
		catalogPath string
		policyName  string
		project     string
		out         string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored assessments as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(catalogPath)
			if err != nil {
				return err
			}
			policy, ok := scoring.PolicyByName(policyName)
			if !ok {
				return fmt.Errorf("unknown tier policy %q", policyName)
			}
			if dbPath == "" {
				dbPath = utils.SafeEnv("MATURITY_DB_PATH", "maturity.db")
			}
			store, err := db.Open(dbPath)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			if err := store.InitSchema(); err != nil {
				return err
			}

			svc := services.NewAssessmentService(cat, policy, store)
			data, err := svc.ExportCSV(models.AssessmentFilter{ProjectPattern: project})
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(out, data, 0o644)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&dbPath, "db", "", "SQLite database path (default: $MATURITY_DB_PATH or maturity.db)")
	flags.StringVar(&catalogPath, "catalog", "", "Criteria catalog path (default: ./criteria.yaml, then built-in)")
	flags.StringVar(&policyName, "policy", "", "Tier policy: standard or legacy")
	flags.StringVar(&project, "project", "", "Project name LIKE pattern filter")
	flags.StringVar(&out, "out", "", "Output file (default: stdout)")

	return cmd
}
