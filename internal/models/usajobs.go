package models

// SearchRequest carries the parameters for one external job search. Only
// non-zero fields end up in the query string, and the full set of
// discriminating fields feeds the cache key.
type SearchRequest struct {
	Keyword                  string
	PositionID               string
	LocationName             string
	Organization             string
	PayGradeLow              string
	PayGradeHigh             string
	PositionScheduleTypeCode string
	PositionOfferingTypeCode string
	DatePosted               int
	Page                     int
	ResultsPerPage           int
	SortField                string
	SortDirection            string
}

// Wire models below mirror the provider's JSON schema verbatim. They are read
// and projected, never mutated.

type SearchResponse struct {
	LanguageCode string        `json:"LanguageCode"`
	SearchResult *SearchResult `json:"SearchResult"`
}

type SearchResult struct {
	SearchResultCount    int                `json:"SearchResultCount"`
	SearchResultCountAll int                `json:"SearchResultCountAll"`
	SearchResultItems    []SearchResultItem `json:"SearchResultItems"`
}

type SearchResultItem struct {
	MatchedObjectID         string         `json:"MatchedObjectId"`
	MatchedObjectDescriptor *JobDescriptor `json:"MatchedObjectDescriptor"`
	RelevanceRank           float64        `json:"RelevanceRank"`
}

type JobDescriptor struct {
	PositionID                   string                 `json:"PositionID"`
	PositionTitle                string                 `json:"PositionTitle"`
	PositionURI                  string                 `json:"PositionURI"`
	ApplyURI                     []string               `json:"ApplyURI"`
	OrganizationName             string                 `json:"OrganizationName"`
	DepartmentName               string                 `json:"DepartmentName"`
	PositionLocationDisplay      string                 `json:"PositionLocationDisplay"`
	PositionLocation             []PositionLocation     `json:"PositionLocation"`
	JobCategory                  []CodeName             `json:"JobCategory"`
	JobGrade                     []JobGrade             `json:"JobGrade"`
	PositionSchedule             []CodeName             `json:"PositionSchedule"`
	PositionOfferingType         []CodeName             `json:"PositionOfferingType"`
	PositionRemuneration         []Remuneration         `json:"PositionRemuneration"`
	PositionStartDate            string                 `json:"PositionStartDate"`
	PositionEndDate              string                 `json:"PositionEndDate"`
	PublicationStartDate         string                 `json:"PublicationStartDate"`
	ApplicationCloseDate         string                 `json:"ApplicationCloseDate"`
	PositionFormattedDescription []FormattedDescription `json:"PositionFormattedDescription"`
	UserArea                     *UserArea              `json:"UserArea"`
}

type PositionLocation struct {
	LocationName           string  `json:"LocationName"`
	CountryCode            string  `json:"CountryCode"`
	CountrySubDivisionCode string  `json:"CountrySubDivisionCode"`
	CityName               string  `json:"CityName"`
	Longitude              float64 `json:"Longitude"`
	Latitude               float64 `json:"Latitude"`
}

type CodeName struct {
	Name string `json:"Name"`
	Code string `json:"Code"`
}

type JobGrade struct {
	Code string `json:"Code"`
}

type Remuneration struct {
	MinimumRange     string `json:"MinimumRange"`
	MaximumRange     string `json:"MaximumRange"`
	RateIntervalCode string `json:"RateIntervalCode"`
	Description      string `json:"Description"`
}

type FormattedDescription struct {
	Label            string `json:"Label"`
	LabelDescription string `json:"LabelDescription"`
}

type UserArea struct {
	Details *UserAreaDetails `json:"Details"`
}

type UserAreaDetails struct {
	JobSummary          string   `json:"JobSummary"`
	WhoMayApply         CodeName `json:"WhoMayApply"`
	LowGrade            string   `json:"LowGrade"`
	HighGrade           string   `json:"HighGrade"`
	OrganizationCodes   string   `json:"OrganizationCodes"`
	SecurityClearance   string   `json:"SecurityClearance"`
	TeleworkEligible    string   `json:"TeleworkEligible"`
	RemoteIndicator     bool     `json:"RemoteIndicator"`
	HiringPath          []string `json:"HiringPath"`
	TotalOpenings       string   `json:"TotalOpenings"`
	PromotionPotential  string   `json:"PromotionPotential"`
	TravelRequired      string   `json:"TravelRequired"`
	DrugTestRequired    string   `json:"DrugTestRequired"`
	RelocationOffered   string   `json:"RelocationOffered"`
	SupervisoryStatus   string   `json:"SupervisoryStatus"`
	ApplyOnlineURL      string   `json:"ApplyOnlineUrl"`
	DetailStatusURL     string   `json:"DetailStatusUrl"`
	AgencyMarketingStmt string   `json:"AgencyMarketingStatement"`
}
