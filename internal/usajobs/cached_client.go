package usajobs

import (
	"context"
	"net/url"
	"strconv"
	"strings"
	"time"

	"talentgigs/common/cache"
	"talentgigs/internal/config"
	"talentgigs/internal/models"

	"go.uber.org/zap"
)

const (
	searchKeyPrefix = "usajobs:search"
	detailKeyPrefix = "usajobs:job"
)

// CachedClient decorates a raw Client with the cache abstraction. Cache-layer
// failures are invisible to callers; failures from the wrapped client are
// logged and re-raised so a broken upstream stays visible to the aggregation
// engine.
type CachedClient struct {
	inner     Client
	cache     cache.Cache
	logger    *zap.Logger
	searchTTL time.Duration
	detailTTL time.Duration
}

func NewCachedClient(inner Client, c cache.Cache, logger *zap.Logger, cfg *config.Config) *CachedClient {
	return &CachedClient{
		inner:     inner,
		cache:     c,
		logger:    logger,
		searchTTL: cfg.SearchCacheTTL,
		detailTTL: cfg.DetailCacheTTL,
	}
}

func (c *CachedClient) SearchJobs(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
	key := SearchCacheKey(req)

	resp, err := cache.GetOrSet(ctx, c.cache, c.logger, key, c.searchTTL,
		func(ctx context.Context) (*models.SearchResponse, error) {
			return c.inner.SearchJobs(ctx, req)
		})
	if err != nil {
		c.logger.Error("external search failed",
			zap.String("cache_key", key),
			zap.Error(err))
		return nil, err
	}
	return resp, nil
}

func (c *CachedClient) GetJobDetails(ctx context.Context, positionID string) (*models.JobDescriptor, error) {
	key := DetailCacheKey(positionID)

	descriptor, err := cache.GetOrSet(ctx, c.cache, c.logger, key, c.detailTTL,
		func(ctx context.Context) (*models.JobDescriptor, error) {
			return c.inner.GetJobDetails(ctx, positionID)
		})
	if err != nil {
		c.logger.Error("external detail lookup failed",
			zap.String("position_id", positionID),
			zap.Error(err))
		return nil, err
	}
	return descriptor, nil
}

// ValidateConnection always bypasses the cache.
func (c *CachedClient) ValidateConnection(ctx context.Context) bool {
	return c.inner.ValidateConnection(ctx)
}

// SearchCacheKey derives a deterministic key from every discriminating field
// of the request. Fields appear in a fixed order with short prefixes and are
// lower-cased, so structurally equal requests always produce byte-identical
// keys. Values are escaped before joining so a value containing the key's
// own delimiters can never collide with a different request.
func SearchCacheKey(req *models.SearchRequest) string {
	parts := []string{searchKeyPrefix}

	appendPart := func(prefix, value string) {
		if value != "" {
			parts = append(parts, prefix+"="+url.QueryEscape(strings.ToLower(value)))
		}
	}

	appendPart("kw", req.Keyword)
	appendPart("pid", req.PositionID)
	appendPart("loc", req.LocationName)
	appendPart("org", req.Organization)
	appendPart("pgl", req.PayGradeLow)
	appendPart("pgh", req.PayGradeHigh)
	appendPart("sched", req.PositionScheduleTypeCode)
	appendPart("offer", req.PositionOfferingTypeCode)
	if req.DatePosted > 0 {
		appendPart("dp", strconv.Itoa(req.DatePosted))
	}
	if req.Page > 0 {
		appendPart("pg", strconv.Itoa(req.Page))
	}
	if req.ResultsPerPage > 0 {
		appendPart("num", strconv.Itoa(req.ResultsPerPage))
	}
	appendPart("sf", req.SortField)
	appendPart("sd", req.SortDirection)

	return strings.Join(parts, ":")
}

// DetailCacheKey uses the raw position id; ids are already canonical.
func DetailCacheKey(positionID string) string {
	return detailKeyPrefix + ":" + positionID
}
