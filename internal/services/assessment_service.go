package services

import (
	"sort"
	"time"

	"github.com/openmaturity/maturity/internal/badge"
	"github.com/openmaturity/maturity/internal/catalog"
	"github.com/openmaturity/maturity/internal/models"
	"github.com/openmaturity/maturity/internal/scoring"
)

// AssessmentStore abstracts the persistence operations the assessment
// workflow needs.
type AssessmentStore interface {
	InsertAssessment(a *models.Assessment) (*models.Assessment, error)
	ListAssessments(f models.AssessmentFilter) ([]*models.Assessment, error)
}

// AssessmentService runs scoring over a fixed catalog and persists the
// results. The catalog and tier policy are set at construction so tests and
// multi-tenant callers can substitute their own without touching globals.
type AssessmentService struct {
	catalog *catalog.Catalog
	policy  scoring.Policy
	store   AssessmentStore
	now     func() time.Time
}

// RunResult is the outcome of one scoring run.
type RunResult struct {
	Score      float64                 `json:"score"`
	Tier       scoring.Tier            `json:"tier"`
	BadgeURL   string                  `json:"badge_url"`
	Categories []scoring.CategoryScore `json:"categories"`
}

func NewAssessmentService(cat *catalog.Catalog, policy scoring.Policy, store AssessmentStore) *AssessmentService {
	return &AssessmentService{
		catalog: cat,
		policy:  policy,
		store:   store,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *AssessmentService) Catalog() *catalog.Catalog { return s.catalog }

// Run scores responses against the catalog. Pure; it never fails.
func (s *AssessmentService) Run(responses []scoring.Response) *RunResult {
	score := scoring.Score(s.catalog.Criteria, responses)
	tier := s.policy.Classify(score)
	return &RunResult{
		Score:      score,
		Tier:       tier,
		BadgeURL:   badge.URL(string(tier)),
		Categories: scoring.CategoryScores(s.catalog, responses),
	}
}

// Persist stores one completed run. The raw answer set is captured as a
// mapping with the same last-write-wins collapse the scorer applies, so the
// stored record and the computed score always agree.
func (s *AssessmentService) Persist(projectName string, responses []scoring.Response, userID string) (*models.Assessment, error) {
	answers := scoring.AnswerMap(responses)
	raw := make(map[string]any, len(answers))
	for id, answer := range answers {
		raw[id] = answer
	}
	return s.store.InsertAssessment(&models.Assessment{
		ProjectName: projectName,
		UserID:      userID,
		Responses:   raw,
		CreatedAt:   s.now(),
	})
}

// RunAndPersist is the combined operation both adapters call: score,
// classify, resolve the badge, then record the run.
func (s *AssessmentService) RunAndPersist(projectName string, responses []scoring.Response, userID string) (*RunResult, *models.Assessment, error) {
	result := s.Run(responses)
	rec, err := s.Persist(projectName, responses, userID)
	if err != nil {
		return nil, nil, err
	}
	return result, rec, nil
}

func (s *AssessmentService) List(f models.AssessmentFilter) ([]*models.Assessment, error) {
	return s.store.ListAssessments(f)
}

// ResponsesFromMap converts a stored (or submitted) answer mapping back into
// responses. Only boolean values count as answers; keys are sorted so the
// conversion is deterministic.
func ResponsesFromMap(m map[string]any) []scoring.Response {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]scoring.Response, 0, len(keys))
	for _, k := range keys {
		if b, ok := m[k].(bool); ok {
			out = append(out, scoring.Response{CriterionID: k, Answer: b})
		}
	}
	return out
}
