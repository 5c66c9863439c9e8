package usajobs

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"talentgigs/common/cache"
	"talentgigs/common/cache/memory"
	"talentgigs/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const occupationalSeriesBody = `{
	"CodeList": [
		{
			"ValidValue": [
				{"Code": "2210", "Value": "Information Technology Management", "IsDisabled": "No"},
				{"Code": "0801", "Value": "General Engineering", "IsDisabled": "No"},
				{"Code": "0854", "Value": "Computer Engineering", "IsDisabled": "No"}
			],
			"id": "OccupationalSeries"
		},
		{
			"ValidValue": [
				{"Code": "1550", "Value": "Computer Science", "IsDisabled": "No"},
				{"Code": "0855", "Value": "Electronics Engineering", "IsDisabled": "Yes"}
			],
			"id": "OccupationalSeriesLegacy"
		}
	]
}`

func newCodeListFixture(t *testing.T, handler http.Handler) (*CodeListService, cache.Cache) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := memory.New(cache.Options{DefaultTTL: time.Hour, CleanupInterval: time.Minute})
	t.Cleanup(func() { _ = c.Close() })

	svc := NewCodeListService(c, zap.NewNop(), &config.Config{
		USAJobsCodeListURL: server.URL,
		USAJobsUserAgent:   "talentgigs-test",
		USAJobsTimeout:     5 * time.Second,
		CodeListCacheTTL:   time.Hour,
	})
	return svc, c
}

func TestGetOccupationalSeries_FlattensGroups(t *testing.T) {
	svc, _ := newCodeListFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(occupationalSeriesBody))
	}))

	items := svc.GetOccupationalSeries(context.Background())
	assert.Len(t, items, 5, "both ValidValue groups must be flattened into one list")
}

func TestList_FetchFailureYieldsEmptyNotError(t *testing.T) {
	var calls int32
	svc, _ := newCodeListFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))

	items := svc.GetPayPlans(context.Background())
	assert.Nil(t, items)

	// Failures are not cached; the next read retries the endpoint.
	svc.GetPayPlans(context.Background())
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetByCode_CaseInsensitive(t *testing.T) {
	svc, _ := newCodeListFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(occupationalSeriesBody))
	}))

	item := svc.GetByCode(context.Background(), "occupationalseries", "2210")
	require.NotNil(t, item)
	assert.Equal(t, "Information Technology Management", item.Value)

	assert.Nil(t, svc.GetByCode(context.Background(), "occupationalseries", "9999"))
}

func TestSearchOccupationalSeries(t *testing.T) {
	svc, _ := newCodeListFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(occupationalSeriesBody))
	}))

	matched := svc.SearchOccupationalSeries(context.Background(), "engineering")
	require.Len(t, matched, 2, "disabled items must be excluded")
	assert.Equal(t, "0801", matched[0].Code, "results ordered by code")
	assert.Equal(t, "0854", matched[1].Code)

	byCode := svc.SearchOccupationalSeries(context.Background(), "2210")
	require.Len(t, byCode, 1)
	assert.Equal(t, "Information Technology Management", byCode[0].Value)
}

func TestRefreshAll_EvictsAllKeysAndRewarmsHotLists(t *testing.T) {
	svc, c := newCodeListFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(occupationalSeriesBody))
	}))
	ctx := context.Background()

	// Populate a hot list and a cold list.
	require.NotEmpty(t, svc.GetOccupationalSeries(ctx))
	require.NotEmpty(t, svc.GetCountries(ctx))

	svc.RefreshAll(ctx)

	// Hot lists are warm again, cold lists repopulate lazily.
	for _, hot := range []string{
		"usajobs:codelist:occupationalseries",
		"usajobs:codelist:payplans",
		"usajobs:codelist:hiringpaths",
		"usajobs:codelist:positionscheduletypes",
	} {
		exists, err := c.Exists(ctx, hot)
		require.NoError(t, err)
		assert.True(t, exists, "hot list %s must be re-warmed", hot)
	}

	exists, err := c.Exists(ctx, "usajobs:codelist:countries")
	require.NoError(t, err)
	assert.False(t, exists, "cold lists stay evicted until next access")
}

func TestIsAvailable(t *testing.T) {
	healthy, _ := newCodeListFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(occupationalSeriesBody))
	}))
	assert.True(t, healthy.IsAvailable(context.Background()))

	broken, _ := newCodeListFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	assert.False(t, broken.IsAvailable(context.Background()))
}

func TestKnownLists_CoversAllEndpoints(t *testing.T) {
	svc, _ := newCodeListFixture(t, http.NotFoundHandler())
	names := svc.KnownLists()
	assert.GreaterOrEqual(t, len(names), 35)
	assert.Contains(t, names, "occupationalseries")
	assert.Contains(t, names, "payplans")
}
