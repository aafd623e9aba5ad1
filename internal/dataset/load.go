package dataset

import (
	"fmt"
	"os"
	"reflect"

	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"

	"github.com/spigell/grant-matcher/internal/grants"
)

type datasetFile struct {
	Organizations []grants.Organization `mapstructure:"organizations"`
	Opportunities []grants.Opportunity  `mapstructure:"opportunities"`
}

// LoadFile reads a TOML dataset. Unknown keys and records missing required fields are errors.
//
// The amount range of an opportunity may be given as a two element array
// (amount_range = ["$10k", "$50k"]) or as a table with low and high keys.
func LoadFile(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset %q: %w", path, err)
	}

	ds, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("dataset %q: %w", path, err)
	}
	return ds, nil
}

// Parse decodes a TOML dataset document.
func Parse(data []byte) (*Dataset, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}

	var file datasetFile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  amountRangeHook,
		ErrorUnused: true,
		Result:      &file,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}

	ds := &Dataset{
		Organizations: make([]*grants.Organization, 0, len(file.Organizations)),
		Opportunities: make([]*grants.Opportunity, 0, len(file.Opportunities)),
	}

	seen := make(map[string]bool)
	for _, o := range file.Organizations {
		org, err := grants.NewOrganization(o)
		if err != nil {
			return nil, err
		}
		if seen["org/"+org.ID] {
			return nil, fmt.Errorf("organization %q: duplicate id: %w", org.ID, grants.ErrInvalidRecord)
		}
		seen["org/"+org.ID] = true
		ds.Organizations = append(ds.Organizations, org)
	}

	for _, g := range file.Opportunities {
		opp, err := grants.NewOpportunity(g)
		if err != nil {
			return nil, err
		}
		if seen["opp/"+opp.ID] {
			return nil, fmt.Errorf("opportunity %q: duplicate id: %w", opp.ID, grants.ErrInvalidRecord)
		}
		seen["opp/"+opp.ID] = true
		ds.Opportunities = append(ds.Opportunities, opp)
	}

	return ds, nil
}

var amountRangeType = reflect.TypeOf(grants.AmountRange{})

func amountRangeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != amountRangeType || from.Kind() != reflect.Slice {
		return data, nil
	}

	items := reflect.ValueOf(data)
	if items.Len() != 2 {
		return nil, fmt.Errorf("amount_range must have exactly 2 elements, got %d", items.Len())
	}

	bounds := make([]string, 2)
	for i := range bounds {
		s, ok := items.Index(i).Interface().(string)
		if !ok {
			return nil, fmt.Errorf("amount_range element %d must be a string", i)
		}
		bounds[i] = s
	}

	return grants.AmountRange{Low: bounds[0], High: bounds[1]}, nil
}
