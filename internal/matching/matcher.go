package matching

import (
	"context"
	"sort"

	"talentgigs/internal/models"
	"talentgigs/internal/store"

	"go.uber.org/zap"
)

const scoreThreshold = 0.3

// Matcher computes matching candidates for a job listing against a bounded
// internal employee pool. It only reads the pool and is safe for concurrent
// invocation.
type Matcher struct {
	employees     store.EmployeeSource
	scorer        Scorer
	logger        *zap.Logger
	poolSize      int
	maxCandidates int
}

func NewMatcher(employees store.EmployeeSource, scorer Scorer, logger *zap.Logger, poolSize, maxCandidates int) *Matcher {
	if poolSize <= 0 {
		poolSize = 50
	}
	if maxCandidates <= 0 {
		maxCandidates = 5
	}
	return &Matcher{
		employees:     employees,
		scorer:        scorer,
		logger:        logger,
		poolSize:      poolSize,
		maxCandidates: maxCandidates,
	}
}

// FindCandidates scores every employee in the pool against the job, drops
// candidates at or below the threshold and returns at most maxCandidates
// ordered by descending score, employee id breaking ties.
func (m *Matcher) FindCandidates(ctx context.Context, job *models.AggregatedJobListing) ([]models.MatchingCandidate, error) {
	pool, err := m.employees.GetPage(ctx, 1, m.poolSize)
	if err != nil {
		return nil, err
	}

	var candidates []models.MatchingCandidate
	for i := range pool {
		emp := &pool[i]
		score, skills := m.scorer.Score(job, emp)
		if score <= scoreThreshold {
			continue
		}
		candidates = append(candidates, models.MatchingCandidate{
			EmployeeID:      emp.ID,
			FullName:        emp.FullName(),
			Email:           emp.Email,
			MatchScore:      score,
			MatchingSkills:  skills,
			CurrentPosition: emp.PositionTitle,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].MatchScore != candidates[j].MatchScore {
			return candidates[i].MatchScore > candidates[j].MatchScore
		}
		return candidates[i].EmployeeID < candidates[j].EmployeeID
	})

	if len(candidates) > m.maxCandidates {
		candidates = candidates[:m.maxCandidates]
	}
	return candidates, nil
}
