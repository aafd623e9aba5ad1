package dataset

import "github.com/spigell/grant-matcher/internal/grants"

// Dataset is a set of organizations and opportunities to match.
type Dataset struct {
	Organizations []*grants.Organization
	Opportunities []*grants.Opportunity
}

// Demo returns the built-in offline dataset. Every call builds new records, so callers
// may not observe each other's changes.
func Demo() *Dataset {
	return &Dataset{
		Organizations: demoOrganizations(),
		Opportunities: demoOpportunities(),
	}
}

func demoOrganizations() []*grants.Organization {
	return []*grants.Organization{
		grants.MustOrganization(grants.Organization{
			ID:              "hpg-01",
			Name:            "HPG Clean Water Coalition",
			Region:          "East Africa",
			Mission:         "Deliver safe water access and hygiene training to rural communities.",
			FocusAreas:      []string{"water", "sanitation", "hygiene", "infrastructure"},
			AnnualBudget:    "$1.8M",
			Needs:           []string{"borehole drilling", "solar pumps", "behavior change campaigns"},
			Differentiators: []string{"community-led maintenance", "local artisans", "women-led water committees"},
		}),
		grants.MustOrganization(grants.Organization{
			ID:              "hpg-02",
			Name:            "HPG Climate Resilience Network",
			Region:          "South Asia",
			Mission:         "Strengthen climate resilience for smallholder farmers through training and finance.",
			FocusAreas:      []string{"climate", "agriculture", "livelihoods", "finance"},
			AnnualBudget:    "$2.3M",
			Needs:           []string{"drought-resistant seeds", "micro-insurance", "market linkages"},
			Differentiators: []string{"farmer field schools", "mobile agronomy coaching", "impact-linked financing"},
		}),
		grants.MustOrganization(grants.Organization{
			ID:              "hpg-03",
			Name:            "HPG Girls Education Alliance",
			Region:          "West Africa",
			Mission:         "Expand access to STEM education for girls through scholarships and mentorship.",
			FocusAreas:      []string{"education", "gender", "technology", "scholarships"},
			AnnualBudget:    "$1.2M",
			Needs:           []string{"STEM labs", "teacher training", "mentorship networks"},
			Differentiators: []string{"alumnae mentors", "public-private partnerships", "scholar-led community projects"},
		}),
	}
}

func demoOpportunities() []*grants.Opportunity {
	return []*grants.Opportunity{
		grants.MustOpportunity(grants.Opportunity{
			ID:     "grant-usaid-wash",
			Name:   "USAID WASH Innovation Fund",
			Funder: "USAID",
			Description: "Supports scalable water, sanitation, and hygiene solutions with strong community" +
				" engagement and sustainability plans.",
			Themes:   []string{"water", "sanitation", "hygiene", "innovation"},
			Region:   "East Africa",
			Amount:   grants.AmountRange{Low: "$250k", High: "$1M"},
			Deadline: "2024-10-15",
			URL:      "https://www.usaid.gov/",
		}),
		grants.MustOpportunity(grants.Opportunity{
			ID:     "grant-gates-climate",
			Name:   "Gates Foundation Climate-Smart Agriculture",
			Funder: "Bill & Melinda Gates Foundation",
			Description: "Invests in climate adaptation for smallholder farmers, including drought-resistant" +
				" crops, digital advisory tools, and inclusive finance.",
			Themes:   []string{"climate", "agriculture", "finance", "digital"},
			Region:   "South Asia",
			Amount:   grants.AmountRange{Low: "$500k", High: "$2M"},
			Deadline: "2024-11-01",
			URL:      "https://www.gatesfoundation.org/",
		}),
		grants.MustOpportunity(grants.Opportunity{
			ID:     "grant-unicef-girls",
			Name:   "UNICEF Girls in STEM Challenge",
			Funder: "UNICEF",
			Description: "Funds education initiatives that improve girls' access to STEM resources, teacher" +
				" training, and community support.",
			Themes:   []string{"education", "gender", "technology", "community"},
			Region:   "West Africa",
			Amount:   grants.AmountRange{Low: "$150k", High: "$750k"},
			Deadline: "2024-12-05",
			URL:      "https://www.unicef.org/",
		}),
	}
}
