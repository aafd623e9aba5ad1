package grants

import (
	"fmt"
	"sort"
	"strings"
)

// AlignmentResult is the scored pairing of one organization with one opportunity.
type AlignmentResult struct {
	Organization *Organization
	Opportunity  *Opportunity
	Score        float64
	ThemeMatches []string
	RegionMatch  bool
	Notes        []string
}

// AlignmentRecord is the serialized form of an alignment.
type AlignmentRecord struct {
	OrgID        string   `json:"org_id"`
	GrantID      string   `json:"grant_id"`
	Score        float64  `json:"score"`
	ThemeMatches []string `json:"theme_matches"`
	RegionMatch  bool     `json:"region_match"`
	Notes        []string `json:"notes"`
}

// Draft is a rendered proposal body. Filename stays empty until a writer persists it.
type Draft struct {
	Alignment *AlignmentResult
	Content   string
	Filename  string
}

func (r *AlignmentResult) Record() AlignmentRecord {
	return AlignmentRecord{
		OrgID:        r.Organization.ID,
		GrantID:      r.Opportunity.ID,
		Score:        r.Score,
		ThemeMatches: cloneStrings(r.ThemeMatches),
		RegionMatch:  r.RegionMatch,
		Notes:        cloneStrings(r.Notes),
	}
}

func (r *AlignmentResult) Summary() string {
	themes := "None"
	if len(r.ThemeMatches) > 0 {
		themes = strings.Join(r.ThemeMatches, ", ")
	}

	notes := "No alignment notes"
	if len(r.Notes) > 0 {
		notes = strings.Join(r.Notes, "; ")
	}

	region := "no"
	if r.RegionMatch {
		region = "yes"
	}

	return fmt.Sprintf("Score: %.2f\nThemes: %s\nRegion match: %s\nNotes: %s", r.Score, themes, region, notes)
}

// Records converts results to their serialized form, keeping order.
func Records(results []*AlignmentResult) []AlignmentRecord {
	records := make([]AlignmentRecord, 0, len(results))
	for _, r := range results {
		records = append(records, r.Record())
	}
	return records
}

func FindOrganization(orgs []*Organization, id string) *Organization {
	for _, org := range orgs {
		if org.ID == id {
			return org
		}
	}
	return nil
}

// SortByScore orders results by descending score. Equal scores keep their relative order.
func SortByScore(results []*AlignmentResult) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
}
