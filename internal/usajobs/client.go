package usajobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"talentgigs/common/telemetry"
	"talentgigs/internal/config"
	domainerrors "talentgigs/internal/errors"
	"talentgigs/internal/models"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("talentgigs/usajobs")

// Client talks to the external job-posting API. A nil, nil return from
// SearchJobs or GetJobDetails means "no data", which is an expected outcome
// and never an error.
type Client interface {
	SearchJobs(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error)
	GetJobDetails(ctx context.Context, positionID string) (*models.JobDescriptor, error)
	ValidateConnection(ctx context.Context) bool
}

type client struct {
	http   *http.Client
	logger *zap.Logger
	config *config.Config
}

func NewClient(logger *zap.Logger, cfg *config.Config) Client {
	return &client{
		http: &http.Client{
			Timeout: cfg.USAJobsTimeout,
		},
		logger: logger,
		config: cfg,
	}
}

func (c *client) SearchJobs(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
	ctx, span := tracer.Start(ctx, "SearchJobs")
	defer span.End()

	searchURL := fmt.Sprintf("%s/search?%s", c.config.USAJobsBaseURL, buildQuery(req))
	span.SetAttributes(telemetry.String("http.url", searchURL))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		span.RecordError(err)
		return nil, domainerrors.Internal("creating search request", err)
	}
	c.setHeaders(httpReq)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		span.RecordError(err)
		return nil, c.transportError("executing search request", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	span.SetAttributes(telemetry.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("external search returned non-success status",
			zap.Int("status_code", resp.StatusCode),
			zap.String("keyword", req.Keyword))
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return nil, c.transportError("reading search response", err)
	}
	if len(body) == 0 {
		c.logger.Debug("external search returned empty body")
		return nil, nil
	}

	var searchResp models.SearchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		span.RecordError(err)
		c.logger.Error("failed to decode search response", zap.Error(err))
		return nil, domainerrors.Parse("decoding search response", err)
	}

	if searchResp.SearchResult != nil {
		c.logger.Debug("external search completed",
			zap.String("keyword", req.Keyword),
			zap.Int("result_count", searchResp.SearchResult.SearchResultCount))
	}

	return &searchResp, nil
}

func (c *client) GetJobDetails(ctx context.Context, positionID string) (*models.JobDescriptor, error) {
	ctx, span := tracer.Start(ctx, "GetJobDetails")
	defer span.End()
	span.SetAttributes(telemetry.String("position.id", positionID))

	resp, err := c.SearchJobs(ctx, &models.SearchRequest{
		PositionID:     positionID,
		ResultsPerPage: 10,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil || resp.SearchResult == nil {
		return nil, nil
	}

	for _, item := range resp.SearchResult.SearchResultItems {
		d := item.MatchedObjectDescriptor
		if d == nil {
			continue
		}
		if d.PositionID == positionID || item.MatchedObjectID == positionID {
			return d, nil
		}
	}

	// No exact id match; fall back to the first descriptor if any.
	if len(resp.SearchResult.SearchResultItems) > 0 {
		return resp.SearchResult.SearchResultItems[0].MatchedObjectDescriptor, nil
	}

	return nil, nil
}

func (c *client) ValidateConnection(ctx context.Context) bool {
	resp, err := c.SearchJobs(ctx, &models.SearchRequest{ResultsPerPage: 1})
	if err != nil {
		c.logger.Warn("connectivity check failed", zap.Error(err))
		return false
	}
	return resp != nil
}

func (c *client) setHeaders(req *http.Request) {
	req.Header.Set("Host", "data.usajobs.gov")
	req.Header.Set("User-Agent", c.config.USAJobsUserAgent)
	if c.config.USAJobsAPIKey != "" {
		req.Header.Set("Authorization-Key", c.config.USAJobsAPIKey)
	}
	req.Header.Set("Accept", "application/json")
}

// transportError classifies a transport failure as timeout vs unavailable.
func (c *client) transportError(message string, err error) error {
	var urlErr *url.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &urlErr) && urlErr.Timeout()) {
		c.logger.Error("external request timed out", zap.Error(err))
		return domainerrors.Timeout(message, err)
	}
	c.logger.Error("external request failed", zap.Error(err))
	return domainerrors.Unavailable(message, err)
}

// buildQuery serializes only the non-empty fields of the request. Optional
// fields that are absent are omitted entirely rather than sent empty.
func buildQuery(req *models.SearchRequest) string {
	params := url.Values{}
	if req.Keyword != "" {
		params.Set("Keyword", req.Keyword)
	}
	if req.PositionID != "" {
		params.Set("PositionID", req.PositionID)
	}
	if req.LocationName != "" {
		params.Set("LocationName", req.LocationName)
	}
	if req.Organization != "" {
		params.Set("Organization", req.Organization)
	}
	if req.PayGradeLow != "" {
		params.Set("PayGradeLow", req.PayGradeLow)
	}
	if req.PayGradeHigh != "" {
		params.Set("PayGradeHigh", req.PayGradeHigh)
	}
	if req.PositionScheduleTypeCode != "" {
		params.Set("PositionScheduleTypeCode", req.PositionScheduleTypeCode)
	}
	if req.PositionOfferingTypeCode != "" {
		params.Set("PositionOfferingTypeCode", req.PositionOfferingTypeCode)
	}
	if req.DatePosted > 0 {
		params.Set("DatePosted", strconv.Itoa(req.DatePosted))
	}
	if req.Page > 0 {
		params.Set("Page", strconv.Itoa(req.Page))
	}
	if req.ResultsPerPage > 0 {
		params.Set("ResultsPerPage", strconv.Itoa(req.ResultsPerPage))
	}
	if req.SortField != "" {
		params.Set("SortField", strings.ToLower(req.SortField))
	}
	if req.SortDirection != "" {
		params.Set("SortDirection", strings.ToLower(req.SortDirection))
	}
	return params.Encode()
}
