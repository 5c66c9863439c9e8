package usajobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"talentgigs/internal/config"
	domainerrors "talentgigs/internal/errors"
	"talentgigs/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		USAJobsBaseURL:   baseURL,
		USAJobsAPIKey:    "test-key",
		USAJobsUserAgent: "talentgigs-test",
		USAJobsTimeout:   5 * time.Second,
	}
}

const searchResponseBody = `{
	"LanguageCode": "EN",
	"SearchResult": {
		"SearchResultCount": 2,
		"SearchResultCountAll": 2,
		"SearchResultItems": [
			{
				"MatchedObjectId": "ABC123",
				"MatchedObjectDescriptor": {
					"PositionID": "ABC123",
					"PositionTitle": "Software Engineer",
					"PositionURI": "https://example.test/job/ABC123",
					"OrganizationName": "Forest Service",
					"DepartmentName": "Department of Agriculture",
					"PositionRemuneration": [
						{"MinimumRange": "$82,830.00", "MaximumRange": "$107,680.00", "RateIntervalCode": "PA"}
					]
				}
			},
			{
				"MatchedObjectId": "DEF456",
				"MatchedObjectDescriptor": {
					"PositionID": "DEF456",
					"PositionTitle": "Data Engineer"
				}
			}
		]
	}
}`

func TestSearchJobs_Success(t *testing.T) {
	var gotAuth, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization-Key")
		gotAgent = r.Header.Get("User-Agent")
		w.Write([]byte(searchResponseBody))
	}))
	defer server.Close()

	c := NewClient(zap.NewNop(), testConfig(server.URL))
	resp, err := c.SearchJobs(context.Background(), &models.SearchRequest{Keyword: "engineer"})
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.NotNil(t, resp.SearchResult)

	assert.Equal(t, 2, resp.SearchResult.SearchResultCount)
	assert.Len(t, resp.SearchResult.SearchResultItems, 2)
	assert.Equal(t, "Software Engineer", resp.SearchResult.SearchResultItems[0].MatchedObjectDescriptor.PositionTitle)
	assert.Equal(t, "test-key", gotAuth)
	assert.Equal(t, "talentgigs-test", gotAgent)
}

func TestSearchJobs_NonSuccessStatusIsAbsentNotError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c := NewClient(zap.NewNop(), testConfig(server.URL))
	resp, err := c.SearchJobs(context.Background(), &models.SearchRequest{Keyword: "engineer"})
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestSearchJobs_EmptyBodyIsAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 200 with no payload
	}))
	defer server.Close()

	c := NewClient(zap.NewNop(), testConfig(server.URL))
	resp, err := c.SearchJobs(context.Background(), &models.SearchRequest{Keyword: "engineer"})
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestSearchJobs_MalformedPayloadIsParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"SearchResult": not-json`))
	}))
	defer server.Close()

	c := NewClient(zap.NewNop(), testConfig(server.URL))
	_, err := c.SearchJobs(context.Background(), &models.SearchRequest{Keyword: "engineer"})
	require.Error(t, err)
	assert.True(t, domainerrors.IsType(err, domainerrors.ErrTypeParse))
}

func TestSearchJobs_ConnectionRefusedIsTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening any more

	c := NewClient(zap.NewNop(), testConfig(server.URL))
	_, err := c.SearchJobs(context.Background(), &models.SearchRequest{Keyword: "engineer"})
	require.Error(t, err)
	assert.True(t, domainerrors.IsType(err, domainerrors.ErrTypeUnavailable))
}

func TestBuildQuery_OmitsEmptyFields(t *testing.T) {
	query := buildQuery(&models.SearchRequest{
		Keyword:        "software engineer",
		Page:           2,
		ResultsPerPage: 25,
	})

	assert.Contains(t, query, "Keyword=software+engineer")
	assert.Contains(t, query, "Page=2")
	assert.Contains(t, query, "ResultsPerPage=25")
	assert.NotContains(t, query, "LocationName")
	assert.NotContains(t, query, "Organization")
	assert.NotContains(t, query, "DatePosted")
}

func TestGetJobDetails_ReturnsMatchingDescriptor(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "DEF456", r.URL.Query().Get("PositionID"))
		w.Write([]byte(searchResponseBody))
	}))
	defer server.Close()

	c := NewClient(zap.NewNop(), testConfig(server.URL))
	descriptor, err := c.GetJobDetails(context.Background(), "DEF456")
	require.NoError(t, err)
	require.NotNil(t, descriptor)
	assert.Equal(t, "Data Engineer", descriptor.PositionTitle)
}

func TestGetJobDetails_NoMatchIsAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"SearchResult": {"SearchResultCount": 0, "SearchResultItems": []}}`))
	}))
	defer server.Close()

	c := NewClient(zap.NewNop(), testConfig(server.URL))
	descriptor, err := c.GetJobDetails(context.Background(), "MISSING")
	require.NoError(t, err)
	assert.Nil(t, descriptor)
}

func TestValidateConnection(t *testing.T) {
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("ResultsPerPage"))
		w.Write([]byte(`{"SearchResult": {"SearchResultCount": 1, "SearchResultItems": []}}`))
	}))
	defer healthy.Close()

	c := NewClient(zap.NewNop(), testConfig(healthy.URL))
	assert.True(t, c.ValidateConnection(context.Background()))

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	c = NewClient(zap.NewNop(), testConfig(broken.URL))
	assert.False(t, c.ValidateConnection(context.Background()))
}
