package aggregator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"talentgigs/common/cache"
	"talentgigs/common/telemetry"
	"talentgigs/internal/config"
	"talentgigs/internal/events"
	"talentgigs/internal/matching"
	"talentgigs/internal/models"
	"talentgigs/internal/store"
	"talentgigs/internal/usajobs"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("talentgigs/aggregator")

const (
	defaultPageSize = 10
	// Each branch pulls a fixed first page of up to sourcePageLimit results
	// as its pre-filter candidate pool. For the internal branch this caps
	// visibility at the first sourcePageLimit positions.
	sourcePageLimit = 100

	positionPageCacheKey = "internal:positions:page"
)

// Service is the job aggregation engine: it fans out to the internal position
// source and the external client, normalizes both into the canonical listing
// shape and merges, sorts, paginates and enriches the result. A failed source
// degrades the result with a warning; it never fails the call.
type Service struct {
	positions store.PositionSource
	employees store.EmployeeSource
	external  usajobs.Client
	matcher   *matching.Matcher
	cache     cache.Cache
	publisher events.Publisher
	logger    *zap.Logger
	config    *config.Config
}

func NewService(
	positions store.PositionSource,
	employees store.EmployeeSource,
	external usajobs.Client,
	matcher *matching.Matcher,
	c cache.Cache,
	publisher events.Publisher,
	logger *zap.Logger,
	cfg *config.Config,
) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		positions: positions,
		employees: employees,
		external:  external,
		matcher:   matcher,
		cache:     c,
		publisher: publisher,
		logger:    logger,
		config:    cfg,
	}
}

type branchResult struct {
	source   models.JobSource
	listings []models.AggregatedJobListing
	err      error
}

func (s *Service) SearchJobs(ctx context.Context, req *models.JobSearchRequest) (*models.JobSearchResult, error) {
	ctx, span := tracer.Start(ctx, "SearchJobs")
	defer span.End()

	start := time.Now()
	normalizeRequest(req)

	span.SetAttributes(
		telemetry.String("search.keywords", req.Keywords),
		telemetry.Int("search.page", req.Page),
		telemetry.Int("search.page_size", req.PageSize),
	)

	results := make([]branchResult, len(req.Sources))
	var wg sync.WaitGroup
	for i, source := range req.Sources {
		wg.Add(1)
		go func(i int, source models.JobSource) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = branchResult{source: source, err: fmt.Errorf("source panicked: %v", r)}
				}
			}()
			listings, err := s.searchBranch(ctx, source, req)
			results[i] = branchResult{source: source, listings: listings, err: err}
		}(i, source)
	}
	wg.Wait()

	// Branch failures degrade the result; a cancelled top-level call fails it.
	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		return nil, err
	}

	var warnings []models.SearchWarning
	var merged []models.AggregatedJobListing
	var internalCount, externalCount int
	sourcesSearched := make([]string, 0, len(req.Sources))

	for _, branch := range results {
		sourcesSearched = append(sourcesSearched, string(branch.source))
		if branch.err != nil {
			s.logger.Warn("source lookup failed",
				zap.String("source", string(branch.source)),
				zap.Error(branch.err))
			warnings = append(warnings, models.SearchWarning{
				Source:  string(branch.source),
				Message: fmt.Sprintf("source unavailable: %v", branch.err),
				Type:    models.WarningServiceUnavailable,
			})
			continue
		}
		switch branch.source {
		case models.SourceInternal:
			internalCount = len(branch.listings)
		case models.SourceExternalAPI:
			externalCount = len(branch.listings)
		}
		merged = append(merged, branch.listings...)
	}

	sortListings(merged, req.SortBy, req.SortOrder)

	totalCount := len(merged)
	page := paginate(merged, req.Page, req.PageSize)

	// Enrichment is page-scoped for cost control.
	for i := range page {
		candidates, err := s.matcher.FindCandidates(ctx, &page[i])
		if err != nil {
			s.logger.Warn("candidate matching failed",
				zap.String("job_id", page[i].ID),
				zap.Error(err))
			warnings = appendWarningOnce(warnings, models.SearchWarning{
				Source:  string(models.SourceInternal),
				Message: "candidate matching unavailable",
				Type:    models.WarningDataIncomplete,
			})
			continue
		}
		page[i].MatchingCandidates = candidates
	}

	duration := time.Since(start)
	result := &models.JobSearchResult{
		TotalCount: totalCount,
		Page:       req.Page,
		PageSize:   req.PageSize,
		Jobs:       page,
		Metadata: models.JobSearchMetadata{
			SearchTimestamp:   start,
			SearchDuration:    duration,
			InternalJobsCount: internalCount,
			ExternalJobsCount: externalCount,
			SourcesSearched:   sourcesSearched,
			HasMoreResults:    totalCount > req.Page*req.PageSize,
			Warnings:          warnings,
		},
	}

	s.logger.Info("aggregated job search completed",
		zap.String("keywords", req.Keywords),
		zap.Int("total_count", totalCount),
		zap.Int("internal_count", internalCount),
		zap.Int("external_count", externalCount),
		zap.Int("warnings", len(warnings)),
		zap.Duration("duration", duration))

	s.publishAudit(ctx, req, result)

	return result, nil
}

// GetJobDetails dispatches by source tag. Errors and missing jobs both yield
// nil; the distinction is visible only in logs.
func (s *Service) GetJobDetails(ctx context.Context, id string, source models.JobSource) *models.AggregatedJobListing {
	ctx, span := tracer.Start(ctx, "GetJobDetails")
	defer span.End()
	span.SetAttributes(
		telemetry.String("job.id", id),
		telemetry.String("job.source", string(source)),
	)

	switch source {
	case models.SourceInternal:
		position, err := s.positions.GetByID(ctx, id)
		if err != nil {
			s.logger.Warn("internal position lookup failed",
				zap.String("id", id),
				zap.Error(err))
			return nil
		}
		if position == nil {
			return nil
		}
		listing := mapInternalPosition(*position)
		return &listing

	case models.SourceExternalAPI:
		descriptor, err := s.external.GetJobDetails(ctx, id)
		if err != nil {
			s.logger.Warn("external job lookup failed",
				zap.String("id", id),
				zap.Error(err))
			return nil
		}
		if descriptor == nil {
			return nil
		}
		listing := mapJobDescriptor(descriptor)
		return &listing

	default:
		s.logger.Warn("job detail lookup for unknown source",
			zap.String("id", id),
			zap.String("source", string(source)))
		return nil
	}
}

// FindMatchingCandidates returns the candidates for a job, or an empty list
// when the job does not exist.
func (s *Service) FindMatchingCandidates(ctx context.Context, id string, source models.JobSource) []models.MatchingCandidate {
	job := s.GetJobDetails(ctx, id, source)
	if job == nil {
		return nil
	}
	candidates, err := s.matcher.FindCandidates(ctx, job)
	if err != nil {
		s.logger.Warn("candidate matching failed",
			zap.String("job_id", id),
			zap.Error(err))
		return nil
	}
	return candidates
}

// GetRecommendedJobs searches both sources using the employee's current
// position title as keyword. A missing employee yields an empty result.
func (s *Service) GetRecommendedJobs(ctx context.Context, employeeID string, pageSize int) (*models.JobSearchResult, error) {
	ctx, span := tracer.Start(ctx, "GetRecommendedJobs")
	defer span.End()
	span.SetAttributes(telemetry.String("employee.id", employeeID))

	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		s.logger.Warn("employee lookup failed",
			zap.String("employee_id", employeeID),
			zap.Error(err))
	}
	if employee == nil {
		return &models.JobSearchResult{
			Page:     1,
			PageSize: pageSize,
			Metadata: models.JobSearchMetadata{SearchTimestamp: time.Now()},
		}, nil
	}

	return s.SearchJobs(ctx, &models.JobSearchRequest{
		Keywords: employee.PositionTitle,
		Sources:  []models.JobSource{models.SourceInternal, models.SourceExternalAPI},
		Page:     1,
		PageSize: pageSize,
	})
}

func (s *Service) searchBranch(ctx context.Context, source models.JobSource, req *models.JobSearchRequest) ([]models.AggregatedJobListing, error) {
	switch source {
	case models.SourceInternal:
		return s.searchInternal(ctx, req)
	case models.SourceExternalAPI:
		return s.searchExternal(ctx, req)
	default:
		return nil, nil
	}
}

func (s *Service) searchInternal(ctx context.Context, req *models.JobSearchRequest) ([]models.AggregatedJobListing, error) {
	ctx, span := tracer.Start(ctx, "searchInternal")
	defer span.End()

	pageSize := s.config.SourcePageSize
	if pageSize <= 0 {
		pageSize = sourcePageLimit
	}

	key := fmt.Sprintf("%s:1:%d", positionPageCacheKey, pageSize)
	positions, err := cache.GetOrSet(ctx, s.cache, s.logger, key, s.config.PositionCacheTTL,
		func(ctx context.Context) ([]models.InternalPosition, error) {
			return s.positions.GetPage(ctx, 1, pageSize)
		})
	if err != nil {
		return nil, err
	}

	var listings []models.AggregatedJobListing
	for _, position := range positions {
		listing := mapInternalPosition(position)
		if !matchesKeywords(&listing, req.Keywords) {
			continue
		}
		if !matchesFilter(&listing, req) {
			continue
		}
		listings = append(listings, listing)
	}

	span.SetAttributes(telemetry.Int("internal.filtered_count", len(listings)))
	return listings, nil
}

func (s *Service) searchExternal(ctx context.Context, req *models.JobSearchRequest) ([]models.AggregatedJobListing, error) {
	ctx, span := tracer.Start(ctx, "searchExternal")
	defer span.End()

	// A fixed first page maximizes the candidate pool before filtering.
	resp, err := s.external.SearchJobs(ctx, &models.SearchRequest{
		Keyword:        req.Keywords,
		LocationName:   req.Location,
		Page:           1,
		ResultsPerPage: sourcePageLimit,
		SortField:      "closedate",
		SortDirection:  "desc",
	})
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.SearchResult == nil {
		return nil, nil
	}

	var listings []models.AggregatedJobListing
	for _, item := range resp.SearchResult.SearchResultItems {
		if item.MatchedObjectDescriptor == nil {
			continue
		}
		listing := mapJobDescriptor(item.MatchedObjectDescriptor)
		if !matchesFilter(&listing, req) {
			continue
		}
		listings = append(listings, listing)
	}

	span.SetAttributes(telemetry.Int("external.filtered_count", len(listings)))
	return listings, nil
}

func (s *Service) publishAudit(ctx context.Context, req *models.JobSearchRequest, result *models.JobSearchResult) {
	audit := &events.SearchAudit{
		Keywords:      req.Keywords,
		Sources:       result.Metadata.SourcesSearched,
		TotalCount:    result.TotalCount,
		InternalCount: result.Metadata.InternalJobsCount,
		ExternalCount: result.Metadata.ExternalJobsCount,
		DurationMS:    result.Metadata.SearchDuration.Milliseconds(),
		WarningCount:  len(result.Metadata.Warnings),
		Timestamp:     result.Metadata.SearchTimestamp,
	}
	if err := s.publisher.PublishSearchAudit(ctx, audit); err != nil {
		s.logger.Warn("failed to publish search audit", zap.Error(err))
	}
}

func normalizeRequest(req *models.JobSearchRequest) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize <= 0 {
		req.PageSize = defaultPageSize
	}
	if len(req.Sources) == 0 {
		req.Sources = []models.JobSource{models.SourceInternal, models.SourceExternalAPI}
	}
}

func appendWarningOnce(warnings []models.SearchWarning, warning models.SearchWarning) []models.SearchWarning {
	for _, existing := range warnings {
		if existing.Type == warning.Type && existing.Source == warning.Source {
			return warnings
		}
	}
	return append(warnings, warning)
}
