package usajobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"

	"talentgigs/common/cache"
	"talentgigs/internal/config"
	"talentgigs/internal/models"

	"go.uber.org/zap"
)

const codeListKeyPrefix = "usajobs:codelist"

// codeListEndpoints maps each reference list name to its endpoint path. The
// name doubles as the cache-key suffix.
var codeListEndpoints = map[string]string{
	"academichonors":               "/academichonors",
	"actioncodes":                  "/actioncodes",
	"agencysubelements":            "/agencysubelements",
	"announcementclosingtypes":     "/announcementclosingtypes",
	"applicantsuppliers":           "/applicantsuppliers",
	"applicationstatuses":          "/applicationstatuses",
	"countries":                    "/countries",
	"countrysubdivisions":          "/countrysubdivisions",
	"cyberworkgroupings":           "/cyberworkgroupings",
	"cyberworkroles":               "/cyberworkroles",
	"degreetypecodes":              "/degreetypecodes",
	"disabilities":                 "/disabilities",
	"documentations":               "/documentations",
	"documentformats":              "/documentformats",
	"ethnicities":                  "/ethnicities",
	"federalemploymentstatuses":    "/federalemploymentstatuses",
	"geoloccodes":                  "/geoloccodes",
	"gsageoloccodes":               "/gsageoloccodes",
	"hiringpaths":                  "/hiringpaths",
	"keystandardrequirements":      "/keystandardrequirements",
	"languagecodes":                "/languagecodes",
	"languageproficiencies":        "/languageproficiencies",
	"locationexpansions":           "/locationexpansions",
	"militarystatuscodes":          "/militarystatuscodes",
	"missioncriticalcodes":         "/missioncriticalcodes",
	"occupationalseries":           "/occupationalseries",
	"payplans":                     "/payplans",
	"positionofferingtypes":        "/positionofferingtypes",
	"positionopeningstatuses":      "/positionopeningstatuses",
	"positionscheduletypes":        "/positionscheduletypes",
	"postalcodes":                  "/postalcodes",
	"racecodes":                    "/racecodes",
	"refereetypecodes":             "/refereetypecodes",
	"remunerationrateintervals":    "/remunerationrateintervalcodes",
	"requiredstandarddocuments":    "/requiredstandarddocuments",
	"securityclearances":           "/securityclearances",
	"servicetypes":                 "/servicetypes",
	"specialhirings":               "/specialhirings",
	"travelpercentages":            "/travelpercentages",
	"whomayapply":                  "/whomayapply",
}

// hotLists are re-populated eagerly during RefreshAll; the rest repopulate
// lazily on next access.
var hotLists = []string{
	"occupationalseries",
	"payplans",
	"hiringpaths",
	"positionscheduletypes",
}

// CodeListService fetches and caches the provider's reference lists. Code
// lists are nice to have, never blocking: every failure on the fetch path
// yields an empty result, logged but not raised.
type CodeListService struct {
	http   *http.Client
	cache  cache.Cache
	logger *zap.Logger
	config *config.Config
}

func NewCodeListService(c cache.Cache, logger *zap.Logger, cfg *config.Config) *CodeListService {
	return &CodeListService{
		http: &http.Client{
			Timeout: cfg.USAJobsTimeout,
		},
		cache:  c,
		logger: logger,
		config: cfg,
	}
}

func (s *CodeListService) GetAcademicHonors(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "academichonors")
}

func (s *CodeListService) GetActionCodes(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "actioncodes")
}

func (s *CodeListService) GetAgencySubElements(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "agencysubelements")
}

func (s *CodeListService) GetAnnouncementClosingTypes(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "announcementclosingtypes")
}

func (s *CodeListService) GetApplicantSuppliers(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "applicantsuppliers")
}

func (s *CodeListService) GetApplicationStatuses(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "applicationstatuses")
}

func (s *CodeListService) GetCountries(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "countries")
}

func (s *CodeListService) GetCountrySubdivisions(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "countrysubdivisions")
}

func (s *CodeListService) GetCyberWorkGroupings(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "cyberworkgroupings")
}

func (s *CodeListService) GetCyberWorkRoles(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "cyberworkroles")
}

func (s *CodeListService) GetDegreeTypeCodes(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "degreetypecodes")
}

func (s *CodeListService) GetDisabilities(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "disabilities")
}

func (s *CodeListService) GetDocumentations(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "documentations")
}

func (s *CodeListService) GetDocumentFormats(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "documentformats")
}

func (s *CodeListService) GetEthnicities(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "ethnicities")
}

func (s *CodeListService) GetFederalEmploymentStatuses(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "federalemploymentstatuses")
}

func (s *CodeListService) GetGeoLocCodes(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "geoloccodes")
}

func (s *CodeListService) GetGSAGeoLocCodes(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "gsageoloccodes")
}

func (s *CodeListService) GetHiringPaths(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "hiringpaths")
}

func (s *CodeListService) GetKeyStandardRequirements(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "keystandardrequirements")
}

func (s *CodeListService) GetLanguageCodes(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "languagecodes")
}

func (s *CodeListService) GetLanguageProficiencies(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "languageproficiencies")
}

func (s *CodeListService) GetLocationExpansions(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "locationexpansions")
}

func (s *CodeListService) GetMilitaryStatusCodes(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "militarystatuscodes")
}

func (s *CodeListService) GetMissionCriticalCodes(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "missioncriticalcodes")
}

func (s *CodeListService) GetOccupationalSeries(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "occupationalseries")
}

func (s *CodeListService) GetPayPlans(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "payplans")
}

func (s *CodeListService) GetPositionOfferingTypes(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "positionofferingtypes")
}

func (s *CodeListService) GetPositionOpeningStatuses(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "positionopeningstatuses")
}

func (s *CodeListService) GetPositionScheduleTypes(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "positionscheduletypes")
}

func (s *CodeListService) GetPostalCodes(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "postalcodes")
}

func (s *CodeListService) GetRaceCodes(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "racecodes")
}

func (s *CodeListService) GetRefereeTypeCodes(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "refereetypecodes")
}

func (s *CodeListService) GetRemunerationRateIntervals(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "remunerationrateintervals")
}

func (s *CodeListService) GetRequiredStandardDocuments(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "requiredstandarddocuments")
}

func (s *CodeListService) GetSecurityClearances(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "securityclearances")
}

func (s *CodeListService) GetServiceTypes(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "servicetypes")
}

func (s *CodeListService) GetSpecialHirings(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "specialhirings")
}

func (s *CodeListService) GetTravelPercentages(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "travelpercentages")
}

func (s *CodeListService) GetWhoMayApply(ctx context.Context) []models.CodeListItem {
	return s.list(ctx, "whomayapply")
}

// GetByCode returns the item with the given code from the named list,
// matching case-insensitively, or nil.
func (s *CodeListService) GetByCode(ctx context.Context, listName, code string) *models.CodeListItem {
	for _, item := range s.list(ctx, listName) {
		if strings.EqualFold(item.Code, code) {
			return &item
		}
	}
	return nil
}

// SearchOccupationalSeries finds active series whose code or value contains
// the keyword, case-insensitively, ordered by code.
func (s *CodeListService) SearchOccupationalSeries(ctx context.Context, keyword string) []models.CodeListItem {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil
	}

	var matched []models.CodeListItem
	for _, item := range s.list(ctx, "occupationalseries") {
		if !item.IsActive() {
			continue
		}
		if strings.Contains(strings.ToLower(item.Code), keyword) ||
			strings.Contains(strings.ToLower(item.Value), keyword) {
			matched = append(matched, item)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].Code < matched[j].Code
	})
	return matched
}

// RefreshAll evicts every known cache key, then eagerly re-populates the hot
// lists in parallel. The remaining lists repopulate lazily on next access.
func (s *CodeListService) RefreshAll(ctx context.Context) {
	for name := range codeListEndpoints {
		if err := s.cache.Delete(ctx, cacheKeyFor(name)); err != nil {
			s.logger.Warn("failed to evict code list",
				zap.String("list", name),
				zap.Error(err))
		}
	}
	s.logger.Info("evicted all code list cache entries",
		zap.Int("count", len(codeListEndpoints)))

	var wg sync.WaitGroup
	for _, name := range hotLists {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			items := s.list(ctx, name)
			s.logger.Debug("re-warmed hot code list",
				zap.String("list", name),
				zap.Int("items", len(items)))
		}(name)
	}
	wg.Wait()
}

// IsAvailable performs a lightweight GET against one canonical endpoint.
func (s *CodeListService) IsAvailable(ctx context.Context) bool {
	items, err := s.fetch(ctx, "payplans")
	if err != nil {
		return false
	}
	return items != nil
}

// KnownLists returns the names of every tracked code list.
func (s *CodeListService) KnownLists() []string {
	names := make([]string, 0, len(codeListEndpoints))
	for name := range codeListEndpoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *CodeListService) list(ctx context.Context, name string) []models.CodeListItem {
	items, err := cache.GetOrSet(ctx, s.cache, s.logger, cacheKeyFor(name), s.config.CodeListCacheTTL,
		func(ctx context.Context) ([]models.CodeListItem, error) {
			return s.fetch(ctx, name)
		})
	if err != nil {
		s.logger.Warn("code list unavailable",
			zap.String("list", name),
			zap.Error(err))
		return nil
	}
	return items
}

func (s *CodeListService) fetch(ctx context.Context, name string) ([]models.CodeListItem, error) {
	path, ok := codeListEndpoints[name]
	if !ok {
		return nil, fmt.Errorf("unknown code list: %s", name)
	}

	listURL := s.config.USAJobsCodeListURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating code list request: %w", err)
	}
	req.Header.Set("User-Agent", s.config.USAJobsUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching code list %s: %w", name, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			s.logger.Warn("failed to close response body", zap.Error(cerr))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("code list %s returned status %d", name, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading code list %s: %w", name, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("code list %s returned empty body", name)
	}

	var envelope models.CodeListResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding code list %s: %w", name, err)
	}

	return envelope.Flatten(), nil
}

func cacheKeyFor(name string) string {
	return codeListKeyPrefix + ":" + name
}
