package aggregator

import (
	"sort"
	"strings"

	"talentgigs/internal/models"
)

// sortListings orders listings by the requested field and direction. Unknown
// fields fall back to posted-date; the default direction is descending. The
// sort is stable so equal keys keep their pre-sort relative order.
func sortListings(listings []models.AggregatedJobListing, sortBy, sortOrder string) {
	ascending := strings.EqualFold(sortOrder, "asc")

	var less func(a, b *models.AggregatedJobListing) bool
	switch strings.ToLower(sortBy) {
	case "title":
		less = func(a, b *models.AggregatedJobListing) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case "salary", "salarymax":
		less = func(a, b *models.AggregatedJobListing) bool {
			return a.Salary.MaxSalary < b.Salary.MaxSalary
		}
	case "organization":
		less = func(a, b *models.AggregatedJobListing) bool {
			return strings.ToLower(a.Organization) < strings.ToLower(b.Organization)
		}
	default:
		less = func(a, b *models.AggregatedJobListing) bool {
			return a.PostedDate.Before(b.PostedDate)
		}
	}

	sort.SliceStable(listings, func(i, j int) bool {
		if ascending {
			return less(&listings[i], &listings[j])
		}
		return less(&listings[j], &listings[i])
	})
}

// paginate returns the requested page slice of listings.
func paginate(listings []models.AggregatedJobListing, page, pageSize int) []models.AggregatedJobListing {
	start := (page - 1) * pageSize
	if start >= len(listings) {
		return nil
	}
	end := start + pageSize
	if end > len(listings) {
		end = len(listings)
	}
	return listings[start:end]
}
