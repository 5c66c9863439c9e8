package models

import (
	"time"
)

type JobSource string

const (
	SourceInternal    JobSource = "Internal"
	SourceExternalAPI JobSource = "ExternalAPI"
	SourceOther       JobSource = "Other"
)

type JobType string

const (
	JobTypeFullTime   JobType = "FullTime"
	JobTypePartTime   JobType = "PartTime"
	JobTypeContract   JobType = "Contract"
	JobTypeTemporary  JobType = "Temporary"
	JobTypeInternship JobType = "Internship"
)

type WarningType string

const (
	WarningRateLimitApproaching WarningType = "RateLimitApproaching"
	WarningPartialResults       WarningType = "PartialResults"
	WarningServiceUnavailable   WarningType = "ServiceUnavailable"
	WarningDataIncomplete       WarningType = "DataIncomplete"
)

type SalaryInfo struct {
	MinSalary    float64 `json:"minSalary"`
	MaxSalary    float64 `json:"maxSalary"`
	Currency     string  `json:"currency"`
	PayFrequency string  `json:"payFrequency"`
	Grade        string  `json:"grade,omitempty"`
}

// AggregatedJobListing is the canonical listing shape shared by every source.
// Instances are built per request by the mapping functions and never persisted.
type AggregatedJobListing struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Organization      string     `json:"organization"`
	Department        string     `json:"department"`
	Location          string     `json:"location"`
	Salary            SalaryInfo `json:"salary"`
	PostedDate        time.Time  `json:"postedDate"`
	ClosingDate       time.Time  `json:"closingDate,omitempty"`
	Source            JobSource  `json:"source"`
	ExternalURL       string     `json:"externalUrl,omitempty"`
	Keywords          []string   `json:"keywords,omitempty"`
	RequiredSkills    []string   `json:"requiredSkills,omitempty"`
	JobType           JobType    `json:"jobType"`
	WorkSchedule      string     `json:"workSchedule,omitempty"`
	IsRemote          bool       `json:"isRemote"`
	SecurityClearance string     `json:"securityClearance,omitempty"`

	// Internal-only fields, empty for external listings.
	MatchingCandidates       []MatchingCandidate `json:"matchingCandidates,omitempty"`
	InternalApplicationCount int                 `json:"internalApplicationCount,omitempty"`
	RelatedPositionIDs       []string            `json:"relatedPositionIds,omitempty"`
}

// MatchingCandidate is computed per (job, employee) pair at query time.
type MatchingCandidate struct {
	EmployeeID      string   `json:"employeeId"`
	FullName        string   `json:"fullName"`
	Email           string   `json:"email"`
	MatchScore      float64  `json:"matchScore"`
	MatchingSkills  []string `json:"matchingSkills,omitempty"`
	CurrentPosition string   `json:"currentPosition"`
}

type SearchWarning struct {
	Source  string      `json:"source"`
	Message string      `json:"message"`
	Type    WarningType `json:"type"`
}

type JobSearchRequest struct {
	Keywords       string      `json:"keywords,omitempty"`
	Location       string      `json:"location,omitempty"`
	Sources        []JobSource `json:"sources,omitempty"`
	MinSalary      *float64    `json:"minSalary,omitempty"`
	MaxSalary      *float64    `json:"maxSalary,omitempty"`
	JobTypes       []JobType   `json:"jobTypes,omitempty"`
	IsRemote       *bool       `json:"isRemote,omitempty"`
	PostedAfter    *time.Time  `json:"postedAfter,omitempty"`
	RequiredSkills []string    `json:"requiredSkills,omitempty"`
	Page           int         `json:"page"`
	PageSize       int         `json:"pageSize"`
	SortBy         string      `json:"sortBy,omitempty"`
	SortOrder      string      `json:"sortOrder,omitempty"`
}

type JobSearchMetadata struct {
	SearchTimestamp   time.Time       `json:"searchTimestamp"`
	SearchDuration    time.Duration   `json:"searchDuration"`
	InternalJobsCount int             `json:"internalJobsCount"`
	ExternalJobsCount int             `json:"externalJobsCount"`
	SourcesSearched   []string        `json:"sourcesSearched"`
	HasMoreResults    bool            `json:"hasMoreResults"`
	Warnings          []SearchWarning `json:"warnings,omitempty"`
}

type JobSearchResult struct {
	TotalCount int                    `json:"totalCount"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"pageSize"`
	Jobs       []AggregatedJobListing `json:"jobs"`
	Metadata   JobSearchMetadata      `json:"metadata"`
}
