package matching

import (
	"hash/fnv"
	"strings"

	"talentgigs/internal/models"
)

// Scorer rates how well an employee matches a job listing. Implementations
// must be safe for concurrent use.
type Scorer interface {
	Score(job *models.AggregatedJobListing, candidate *models.Employee) (float64, []string)
}

// HeuristicScorer scores on title and department overlap plus a small
// per-pair perturbation. The perturbation is derived from a hash of the
// (job, employee) pair instead of a random source, so rankings are
// reproducible across calls.
type HeuristicScorer struct{}

func NewHeuristicScorer() *HeuristicScorer {
	return &HeuristicScorer{}
}

func (s *HeuristicScorer) Score(job *models.AggregatedJobListing, candidate *models.Employee) (float64, []string) {
	var score float64
	var skills []string

	if candidate.PositionTitle != "" &&
		strings.Contains(strings.ToLower(job.Title), strings.ToLower(candidate.PositionTitle)) {
		score += 0.4
		skills = append(skills, candidate.PositionTitle)
	}

	if candidate.DepartmentName != "" &&
		strings.Contains(strings.ToLower(job.Department), strings.ToLower(candidate.DepartmentName)) {
		score += 0.3
		skills = append(skills, candidate.DepartmentName)
	}

	score += perturbation(job.ID, candidate.ID)

	if score > 1.0 {
		score = 1.0
	}
	return score, skills
}

// perturbation maps the pair deterministically into [0.1, 0.3].
func perturbation(jobID, employeeID string) float64 {
	h := fnv.New64a()
	h.Write([]byte(jobID))
	h.Write([]byte{'|'})
	h.Write([]byte(employeeID))
	return 0.1 + float64(h.Sum64()%2001)/10000.0
}
