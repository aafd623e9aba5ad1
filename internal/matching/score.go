package matching

import (
	"math"
	"strings"

	"github.com/spigell/grant-matcher/internal/grants"
)

const (
	themeWeight       = 1.0
	regionWeight      = 0.5
	descriptionWeight = 0.1
	descriptionCap    = 1.0

	regionNote      = "Operates in the target region"
	descriptionNote = "Mission language overlaps grant description"
)

// Score computes the alignment between one organization and one opportunity.
//
// Each opportunity theme is looked up as one lowercase key among the organization's
// word tokens, so a multi-word theme such as "climate adaptation" never matches on its
// own words. Duplicate themes are counted each time they appear.
func Score(org *grants.Organization, opp *grants.Opportunity) *grants.AlignmentResult {
	orgFragments := make([]string, 0, len(org.FocusAreas)+len(org.Needs)+1)
	orgFragments = append(orgFragments, org.FocusAreas...)
	orgFragments = append(orgFragments, org.Needs...)
	orgFragments = append(orgFragments, org.Mission)
	orgTokens := Tokenize(orgFragments...)

	oppFragments := make([]string, 0, len(opp.Themes)+1)
	oppFragments = append(oppFragments, opp.Themes...)
	oppFragments = append(oppFragments, opp.Description)
	oppTokens := Tokenize(oppFragments...)

	matches := make([]string, 0)
	themeScore := 0.0
	for _, theme := range opp.Themes {
		if orgTokens.Contains(strings.ToLower(theme)) {
			matches = append(matches, theme)
			themeScore += themeWeight
		}
	}

	regionMatch := RegionMatch(org.Region, opp.Region)
	regionScore := 0.0
	if regionMatch {
		regionScore = regionWeight
	}

	overlap := orgTokens.IntersectionSize(oppTokens)
	descriptionScore := math.Min(float64(overlap)*descriptionWeight, descriptionCap)

	notes := make([]string, 0, 3)
	if len(matches) > 0 {
		notes = append(notes, "Matches themes: "+strings.Join(matches, ", "))
	}
	if regionMatch {
		notes = append(notes, regionNote)
	}
	if descriptionScore > 0 {
		notes = append(notes, descriptionNote)
	}

	return &grants.AlignmentResult{
		Organization: org,
		Opportunity:  opp,
		Score:        themeScore + regionScore + descriptionScore,
		ThemeMatches: matches,
		RegionMatch:  regionMatch,
		Notes:        notes,
	}
}

// RegionMatch compares regions case-insensitively. No trimming or aliasing is applied.
func RegionMatch(a, b string) bool {
	return strings.ToLower(a) == strings.ToLower(b)
}
