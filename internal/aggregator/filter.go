package aggregator

import (
	"strings"

	"talentgigs/internal/models"
)

// matchesFilter is the shared filter predicate, applied per branch before the
// merge. Unset criteria never exclude a listing.
func matchesFilter(listing *models.AggregatedJobListing, req *models.JobSearchRequest) bool {
	if req.MinSalary != nil && listing.Salary.MaxSalary < *req.MinSalary {
		return false
	}
	if req.MaxSalary != nil && listing.Salary.MaxSalary > *req.MaxSalary {
		return false
	}

	if len(req.JobTypes) > 0 {
		found := false
		for _, jobType := range req.JobTypes {
			if listing.JobType == jobType {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if req.IsRemote != nil && listing.IsRemote != *req.IsRemote {
		return false
	}

	if req.PostedAfter != nil && listing.PostedDate.Before(*req.PostedAfter) {
		return false
	}

	if len(req.RequiredSkills) > 0 && !anySkillMatch(listing, req.RequiredSkills) {
		return false
	}

	return true
}

// anySkillMatch reports whether at least one requested skill appears,
// case-insensitively, in the listing's skills or keywords.
func anySkillMatch(listing *models.AggregatedJobListing, requested []string) bool {
	for _, want := range requested {
		want = strings.ToLower(want)
		for _, have := range listing.RequiredSkills {
			if strings.Contains(strings.ToLower(have), want) {
				return true
			}
		}
		for _, have := range listing.Keywords {
			if strings.Contains(have, want) {
				return true
			}
		}
	}
	return false
}

// matchesKeywords applies the free-text keyword criterion to an internal
// listing. The external API does keyword matching server-side, so only the
// internal branch calls this.
func matchesKeywords(listing *models.AggregatedJobListing, keywords string) bool {
	keywords = strings.ToLower(strings.TrimSpace(keywords))
	if keywords == "" {
		return true
	}
	haystack := strings.ToLower(listing.Title + " " + listing.Description + " " + listing.Department)
	for _, word := range strings.Fields(keywords) {
		if strings.Contains(haystack, word) {
			return true
		}
	}
	return false
}
