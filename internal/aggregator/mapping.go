package aggregator

import (
	"strconv"
	"strings"
	"time"

	"talentgigs/internal/models"
)

// scheduleJobTypes maps the provider's position schedule codes onto the
// canonical job type enum.
var scheduleJobTypes = map[string]models.JobType{
	"1": models.JobTypeFullTime,  // full-time
	"2": models.JobTypePartTime,  // part-time
	"3": models.JobTypeContract,  // shift work
	"4": models.JobTypeTemporary, // intermittent
	"5": models.JobTypePartTime,  // job sharing
	"6": models.JobTypeContract,  // multiple schedules
}

// rateIntervalNames expands the provider's remuneration interval codes.
var rateIntervalNames = map[string]string{
	"PA": "Per Year",
	"PH": "Per Hour",
	"PD": "Per Day",
	"PW": "Per Week",
	"PM": "Per Month",
	"BW": "Bi-weekly",
	"FB": "Fee Basis",
	"PY": "Per Year",
	"SY": "School Year",
	"WC": "Without Compensation",
}

var stopWords = map[string]bool{
	"and": true, "the": true, "for": true, "with": true, "this": true,
	"that": true, "will": true, "are": true, "from": true, "you": true,
	"your": true, "our": true, "has": true, "have": true, "not": true,
}

func mapInternalPosition(p models.InternalPosition) models.AggregatedJobListing {
	return models.AggregatedJobListing{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Organization: p.DepartmentName,
		Department:   p.DepartmentName,
		Source:       models.SourceInternal,
		PostedDate:   p.CreatedAt,
		Keywords:     extractKeywords(p.Title),
		JobType:      models.JobTypeFullTime,
		WorkSchedule: "Full-Time",
	}
}

func mapJobDescriptor(d *models.JobDescriptor) models.AggregatedJobListing {
	listing := models.AggregatedJobListing{
		ID:           d.PositionID,
		Title:        d.PositionTitle,
		Description:  descriptionOf(d),
		Organization: d.OrganizationName,
		Department:   d.DepartmentName,
		Location:     locationOf(d),
		Salary:       salaryOf(d),
		PostedDate:   parseAPIDate(d.PublicationStartDate),
		ClosingDate:  parseAPIDate(d.ApplicationCloseDate),
		Source:       models.SourceExternalAPI,
		ExternalURL:  d.PositionURI,
		Keywords:     extractKeywords(d.PositionTitle),
		JobType:      jobTypeOf(d),
		IsRemote:     isRemote(d),
	}

	if len(d.PositionSchedule) > 0 {
		listing.WorkSchedule = d.PositionSchedule[0].Name
	}
	for _, category := range d.JobCategory {
		if category.Name != "" {
			listing.RequiredSkills = append(listing.RequiredSkills, category.Name)
		}
	}
	if d.UserArea != nil && d.UserArea.Details != nil {
		listing.SecurityClearance = d.UserArea.Details.SecurityClearance
	}

	return listing
}

func descriptionOf(d *models.JobDescriptor) string {
	if d.UserArea != nil && d.UserArea.Details != nil && d.UserArea.Details.JobSummary != "" {
		return d.UserArea.Details.JobSummary
	}
	for _, section := range d.PositionFormattedDescription {
		if strings.EqualFold(section.Label, "Job Summary") {
			return section.LabelDescription
		}
	}
	if len(d.PositionFormattedDescription) > 0 {
		return d.PositionFormattedDescription[0].LabelDescription
	}
	return ""
}

func locationOf(d *models.JobDescriptor) string {
	if len(d.PositionLocation) > 0 && d.PositionLocation[0].LocationName != "" {
		return d.PositionLocation[0].LocationName
	}
	return d.PositionLocationDisplay
}

func salaryOf(d *models.JobDescriptor) models.SalaryInfo {
	info := models.SalaryInfo{Currency: "USD"}

	if len(d.PositionRemuneration) > 0 {
		r := d.PositionRemuneration[0]
		info.MinSalary = parseSalary(r.MinimumRange)
		info.MaxSalary = parseSalary(r.MaximumRange)
		if name, ok := rateIntervalNames[strings.ToUpper(r.RateIntervalCode)]; ok {
			info.PayFrequency = name
		} else {
			info.PayFrequency = r.RateIntervalCode
		}
	}

	if len(d.JobGrade) > 0 {
		grade := d.JobGrade[0].Code
		if d.UserArea != nil && d.UserArea.Details != nil {
			details := d.UserArea.Details
			if details.LowGrade != "" && details.HighGrade != "" {
				grade = grade + "-" + details.LowGrade + "/" + details.HighGrade
			}
		}
		info.Grade = grade
	}

	return info
}

// parseSalary handles the provider's locale-formatted salary strings,
// e.g. "$82,830.00" or "122459".
func parseSalary(raw string) float64 {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	if cleaned == "" {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}

func jobTypeOf(d *models.JobDescriptor) models.JobType {
	for _, offering := range d.PositionOfferingType {
		if strings.Contains(strings.ToLower(offering.Name), "intern") {
			return models.JobTypeInternship
		}
	}
	if len(d.PositionSchedule) > 0 {
		if jobType, ok := scheduleJobTypes[d.PositionSchedule[0].Code]; ok {
			return jobType
		}
	}
	return models.JobTypeFullTime
}

// isRemote derives the remote flag from the remote indicator or a
// telework-eligible value containing "yes".
func isRemote(d *models.JobDescriptor) bool {
	if d.UserArea == nil || d.UserArea.Details == nil {
		return false
	}
	details := d.UserArea.Details
	if details.RemoteIndicator {
		return true
	}
	return strings.Contains(strings.ToLower(details.TeleworkEligible), "yes")
}

// extractKeywords pulls naive keywords from a title: lower-cased words longer
// than three characters, stop words removed, order preserved.
func extractKeywords(title string) []string {
	var keywords []string
	seen := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(title)) {
		word = strings.Trim(word, ".,;:()[]-/")
		if len(word) <= 3 || stopWords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
	}
	return keywords
}

func parseAPIDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05.9999999",
		"2006-01-02T15:04:05",
		time.RFC3339,
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
