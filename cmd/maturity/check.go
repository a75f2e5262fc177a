package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openmaturity/maturity/internal/badge"
	"github.com/openmaturity/maturity/internal/db"
	"github.com/openmaturity/maturity/internal/scoring"
	"github.com/openmaturity/maturity/internal/services"
	"github.com/openmaturity/maturity/internal/utils"
)

type checkFlags struct {
	catalogPath string
	policyName  string
	project     string
	badgePath   string
	save        bool
	dbPath      string
}

func newCheckCmd() *cobra.Command {
	f := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the maturity assessment interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.InOrStdin(), cmd.OutOrStdout(), f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.catalogPath, "catalog", "", "Criteria catalog path (default: ./criteria.yaml, then built-in)")
	flags.StringVar(&f.policyName, "policy", "", "Tier policy: standard or legacy")
	flags.StringVar(&f.project, "project", "", "Project name (required with --save)")
	flags.StringVar(&f.badgePath, "badge", "maturity-badge.svg", "Badge output path (empty to skip)")
	flags.BoolVar(&f.save, "save", false, "Persist the assessment")
	flags.StringVar(&f.dbPath, "db", "", "SQLite database path (default: $MATURITY_DB_PATH or maturity.db)")

	return cmd
}

func runCheck(in io.Reader, out io.Writer, f *checkFlags) error {
	cat, err := loadCatalog(f.catalogPath)
	if err != nil {
		return err
	}
	policy, ok := scoring.PolicyByName(f.policyName)
	if !ok {
		return fmt.Errorf("unknown tier policy %q", f.policyName)
	}

	reader := bufio.NewReader(in)
	var responses []scoring.Response
	for _, category := range cat.Categories {
		criteria := cat.ByCategory(category)
		if len(criteria) == 0 {
			continue
		}
		fmt.Fprintf(out, "\n%s\n", category)
		for _, c := range criteria {
			fmt.Fprintf(out, "  %s [y/N]: ", c.Criteria)
			answer, err := readYesNo(reader)
			if err != nil {
				return err
			}
			responses = append(responses, scoring.Response{CriterionID: c.ID, Answer: answer})
		}
	}

	score := scoring.Score(cat.Criteria, responses)
	tier := policy.Classify(score)
	fmt.Fprintf(out, "\nYour score is %.1f%% -> Level: %s\n", score, tier)

	if f.badgePath != "" {
		if err := badge.WriteSVG(f.badgePath, "maturity", string(tier)); err != nil {
			return fmt.Errorf("write badge: %w", err)
		}
		fmt.Fprintf(out, "Badge saved to %s\n", f.badgePath)
	}

	if !f.save {
		return nil
	}
	dbPath := f.dbPath
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
	rec, err := svc.Persist(f.project, responses, "")
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Assessment %s saved for project %q\n", rec.ID, rec.ProjectName)
	return nil
}

func readYesNo(r *bufio.Reader) (bool, error) {
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		if err == io.EOF {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
