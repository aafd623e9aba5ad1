package grants

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRecord is returned when an organization or opportunity is missing required fields.
var ErrInvalidRecord = errors.New("invalid record")

type Organization struct {
	ID              string   `json:"id" mapstructure:"id"`
	Name            string   `json:"name" mapstructure:"name"`
	Region          string   `json:"region" mapstructure:"region"`
	Mission         string   `json:"mission" mapstructure:"mission"`
	FocusAreas      []string `json:"focus_areas" mapstructure:"focus_areas"`
	AnnualBudget    string   `json:"annual_budget" mapstructure:"annual_budget"`
	Needs           []string `json:"needs" mapstructure:"needs"`
	Differentiators []string `json:"differentiators" mapstructure:"differentiators"`
}

// AmountRange holds the funding bounds exactly as published. Bounds are never parsed.
type AmountRange struct {
	Low  string `json:"low" mapstructure:"low"`
	High string `json:"high" mapstructure:"high"`
}

// String renders the range as "low - high".
func (a AmountRange) String() string {
	return fmt.Sprintf("%s - %s", a.Low, a.High)
}

type Opportunity struct {
	ID          string      `json:"id" mapstructure:"id"`
	Name        string      `json:"name" mapstructure:"name"`
	Funder      string      `json:"funder" mapstructure:"funder"`
	Description string      `json:"description" mapstructure:"description"`
	Themes      []string    `json:"themes" mapstructure:"themes"`
	Region      string      `json:"region" mapstructure:"region"`
	Amount      AmountRange `json:"amount_range" mapstructure:"amount_range"`
	Deadline    string      `json:"deadline" mapstructure:"deadline"`
	URL         string      `json:"url" mapstructure:"url"`
}

// NewOrganization validates the record and returns a copy that shares no slices with the input.
func NewOrganization(o Organization) (*Organization, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	o.FocusAreas = cloneStrings(o.FocusAreas)
	o.Needs = cloneStrings(o.Needs)
	o.Differentiators = cloneStrings(o.Differentiators)

	return &o, nil
}

// MustOrganization is NewOrganization for static fixtures. It panics on invalid input.
func MustOrganization(o Organization) *Organization {
	org, err := NewOrganization(o)
	if err != nil {
		panic(err)
	}
	return org
}

func (o *Organization) Validate() error {
	return requireFields("organization", o.ID, map[string]string{
		"id":      o.ID,
		"name":    o.Name,
		"region":  o.Region,
		"mission": o.Mission,
	})
}

// NewOpportunity validates the record and returns a copy that shares no slices with the input.
func NewOpportunity(g Opportunity) (*Opportunity, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	g.Themes = cloneStrings(g.Themes)

	return &g, nil
}

// MustOpportunity is NewOpportunity for static fixtures. It panics on invalid input.
func MustOpportunity(g Opportunity) *Opportunity {
	opp, err := NewOpportunity(g)
	if err != nil {
		panic(err)
	}
	return opp
}

func (g *Opportunity) Validate() error {
	return requireFields("opportunity", g.ID, map[string]string{
		"id":     g.ID,
		"name":   g.Name,
		"funder": g.Funder,
		"region": g.Region,
	})
}

// HasTheme reports whether the opportunity lists the theme, ignoring case and surrounding spaces.
func (g *Opportunity) HasTheme(theme string) bool {
	theme = strings.ToLower(strings.TrimSpace(theme))
	for _, t := range g.Themes {
		if strings.ToLower(t) == theme {
			return true
		}
	}
	return false
}

// requireFields checks fields in a fixed order so the error always names the same field first.
func requireFields(kind, id string, fields map[string]string) error {
	for _, name := range []string{"id", "name", "funder", "region", "mission"} {
		value, ok := fields[name]
		if !ok {
			continue
		}
		if strings.TrimSpace(value) == "" {
			if id == "" {
				return fmt.Errorf("%s: %s is required: %w", kind, name, ErrInvalidRecord)
			}
			return fmt.Errorf("%s %q: %s is required: %w", kind, id, name, ErrInvalidRecord)
		}
	}
	return nil
}

func cloneStrings(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
