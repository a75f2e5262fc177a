package services

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/openmaturity/maturity/internal/models"
)

// AssessmentRow is one CSV line of an assessment export.
type AssessmentRow struct {
	ID          string
	ProjectName string
	UserID      string
	Score       float64
	Tier        string
	CreatedAt   string // RFC3339
}

// ExportAssessmentsCSV renders assessment rows into CSV.
func ExportAssessmentsCSV(rows []AssessmentRow) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	_ = w.Write([]string{"assessment_id", "project_name", "user_id", "score", "tier", "created_at"})
	for _, r := range rows {
		rec := []string{
			r.ID,
			r.ProjectName,
			r.UserID,
			strconv.FormatFloat(r.Score, 'f', 1, 64),
			r.Tier,
			r.CreatedAt,
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// ExportCSV lists assessments matching the filter and renders them as CSV.
// Scores and tiers are recomputed from the stored answers against the
// service's catalog and policy.
func (s *AssessmentService) ExportCSV(f models.AssessmentFilter) ([]byte, error) {
	assessments, err := s.store.ListAssessments(f)
	if err != nil {
		return nil, err
	}
	rows := make([]AssessmentRow, 0, len(assessments))
	for _, a := range assessments {
		result := s.Run(ResponsesFromMap(a.Responses))
		rows = append(rows, AssessmentRow{
			ID:          a.ID,
			ProjectName: a.ProjectName,
			UserID:      a.UserID,
			Score:       result.Score,
			Tier:        string(result.Tier),
			CreatedAt:   a.CreatedAt.Format(time.RFC3339),
		})
	}
	return ExportAssessmentsCSV(rows)
}
