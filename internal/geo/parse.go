package geo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/paulmach/orb/geojson"
)

// ErrNoFeatures is returned for a GeoJSON document without features.
var ErrNoFeatures = errors.New("geojson has no features")

// Hints are shown next to any map error.
var Hints = []string{
	"Make sure state names in CSV match the GeoJSON",
	"Check if the selected column contains state names",
	"Try a different column from the dropdown",
	"Ensure the GeoJSON file is properly formatted",
}

// Parse reads a FeatureCollection or a single Feature.
func Parse(data []byte) (*geojson.FeatureCollection, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrNoFeatures
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}

	var fc *geojson.FeatureCollection
	switch head.Type {
	case "FeatureCollection":
		var err error
		fc, err = geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("decode feature collection: %w", err)
		}
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("decode feature: %w", err)
		}
		fc = geojson.NewFeatureCollection().Append(f)
	default:
		return nil, fmt.Errorf("unsupported geojson type %q", head.Type)
	}

	if len(fc.Features) == 0 {
		return nil, ErrNoFeatures
	}
	for i, f := range fc.Features {
		if f == nil {
			return nil, fmt.Errorf("decode feature collection: feature %d is null", i)
		}
	}
	return fc, nil
}

// Columns lists the property keys found on any feature, sorted.
func Columns(fc *geojson.FeatureCollection) []string {
	seen := make(map[string]struct{})
	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		for k := range f.Properties {
			seen[k] = struct{}{}
		}
	}
	cols := make([]string, 0, len(seen))
	for k := range seen {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	return cols
}

// GuessColumn picks the most likely name column: the first of a few common
// keys, or the first column whose values are all strings.
func GuessColumn(fc *geojson.FeatureCollection) string {
	cols := Columns(fc)
	for _, want := range []string{"ST_NM", "st_nm", "NAME_1", "state", "State", "name", "NAME"} {
		for _, c := range cols {
			if c == want {
				return c
			}
		}
	}
	for _, c := range cols {
		allStrings := true
		for _, f := range fc.Features {
			if f == nil {
				continue
			}
			if _, ok := f.Properties[c].(string); !ok {
				allStrings = false
				break
			}
		}
		if allStrings {
			return c
		}
	}
	if len(cols) > 0 {
		return cols[0]
	}
	return ""
}
