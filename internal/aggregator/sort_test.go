package aggregator

import (
	"testing"
	"time"

	"talentgigs/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestSortListings(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	build := func() []models.AggregatedJobListing {
		return []models.AggregatedJobListing{
			{ID: "a", Title: "Zoologist", Organization: "Interior", PostedDate: base.Add(time.Hour), Salary: models.SalaryInfo{MaxSalary: 80000}},
			{ID: "b", Title: "Analyst", Organization: "Treasury", PostedDate: base.Add(3 * time.Hour), Salary: models.SalaryInfo{MaxSalary: 120000}},
			{ID: "c", Title: "Engineer", Organization: "Defense", PostedDate: base.Add(2 * time.Hour), Salary: models.SalaryInfo{MaxSalary: 95000}},
		}
	}

	ids := func(listings []models.AggregatedJobListing) []string {
		out := make([]string, len(listings))
		for i, l := range listings {
			out[i] = l.ID
		}
		return out
	}

	tests := []struct {
		name      string
		sortBy    string
		sortOrder string
		want      []string
	}{
		{"default is posted date descending", "", "", []string{"b", "c", "a"}},
		{"posted date ascending", "posteddate", "asc", []string{"a", "c", "b"}},
		{"title ascending", "title", "asc", []string{"b", "c", "a"}},
		{"title descending by default", "title", "", []string{"a", "c", "b"}},
		{"salary descending", "salary", "desc", []string{"b", "c", "a"}},
		{"salarymax is an alias", "salarymax", "asc", []string{"a", "c", "b"}},
		{"organization ascending", "organization", "ASC", []string{"c", "a", "b"}},
		{"unknown field falls back to posted date", "relevance", "", []string{"b", "c", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listings := build()
			sortListings(listings, tt.sortBy, tt.sortOrder)
			assert.Equal(t, tt.want, ids(listings))
		})
	}
}

func TestSortListings_StableOnEqualKeys(t *testing.T) {
	listings := []models.AggregatedJobListing{
		{ID: "first", Salary: models.SalaryInfo{MaxSalary: 90000}},
		{ID: "second", Salary: models.SalaryInfo{MaxSalary: 90000}},
		{ID: "third", Salary: models.SalaryInfo{MaxSalary: 90000}},
	}
	sortListings(listings, "salary", "asc")
	assert.Equal(t, "first", listings[0].ID)
	assert.Equal(t, "second", listings[1].ID)
	assert.Equal(t, "third", listings[2].ID)

	when := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	byDate := []models.AggregatedJobListing{
		{ID: "first", PostedDate: when},
		{ID: "second", PostedDate: when},
	}
	sortListings(byDate, "", "")
	assert.Equal(t, "first", byDate[0].ID)
	assert.Equal(t, "second", byDate[1].ID)
}

func TestPaginate(t *testing.T) {
	listings := make([]models.AggregatedJobListing, 25)
	for i := range listings {
		listings[i].ID = string(rune('a' + i))
	}

	page := paginate(listings, 1, 10)
	assert.Len(t, page, 10)
	assert.Equal(t, listings[0].ID, page[0].ID)

	page = paginate(listings, 3, 10)
	assert.Len(t, page, 5)
	assert.Equal(t, listings[20].ID, page[0].ID)

	assert.Nil(t, paginate(listings, 4, 10))
	assert.Nil(t, paginate(nil, 1, 10))
}
