package geo

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb/geojson"

	"github.com/rkaran/silverdash/internal/model"
)

// NoMatchWarning is reported when no feature matched a purchase row.
const NoMatchWarning = "No states matched! Please check state names in both files."

// Record is one feature with its joined purchase quantity.
type Record struct {
	Name       string           `json:"name"`
	Normalized string           `json:"normalized"`
	QuantityKg *float64         `json:"silver_purchased_kg"`
	Feature    *geojson.Feature `json:"-"`
}

// Matched reports whether a purchase row was found for the feature.
func (r Record) Matched() bool {
	return r.QuantityKg != nil
}

// JoinResult is the left join of features with purchase rows.
type JoinResult struct {
	Column         string   `json:"column"`
	Records        []Record `json:"records"`
	Total          int      `json:"total"`
	Matched        int      `json:"matched"`
	Unmatched      int      `json:"unmatched"`
	UnmatchedNames []string `json:"unmatched_names"`
	FeatureNames   []string `json:"feature_names"`
	PurchaseNames  []string `json:"purchase_names"`
	Warnings       []string `json:"warnings,omitempty"`
}

// Join matches every feature's column value against the purchase rows by
// normalized name. Rows that normalize to the same name are summed. A
// feature without the column, or with a non-string value, is compared by
// its printed value.
func Join(features []*geojson.Feature, column string, rows []model.StatePurchase) JoinResult {
	byName := make(map[string]float64, len(rows))
	for _, r := range rows {
		byName[Normalize(r.State)] += r.QuantityKg
	}

	res := JoinResult{
		Column:         column,
		Records:        make([]Record, 0, len(features)),
		Total:          len(features),
		UnmatchedNames: []string{},
	}

	featureNames := make(map[string]struct{}, len(features))
	for _, f := range features {
		name := propertyString(f, column)
		rec := Record{
			Name:       name,
			Normalized: Normalize(name),
			Feature:    f,
		}
		featureNames[rec.Normalized] = struct{}{}

		if q, ok := byName[rec.Normalized]; ok {
			q := q
			rec.QuantityKg = &q
			res.Matched++
		} else {
			res.Unmatched++
			res.UnmatchedNames = append(res.UnmatchedNames, rec.Normalized)
		}
		res.Records = append(res.Records, rec)
	}

	res.FeatureNames = sortedKeys(featureNames)
	purchaseNames := make(map[string]struct{}, len(byName))
	for k := range byName {
		purchaseNames[k] = struct{}{}
	}
	res.PurchaseNames = sortedKeys(purchaseNames)

	if res.Matched == 0 {
		res.Warnings = append(res.Warnings, NoMatchWarning)
	}
	return res
}

// Range returns the smallest and largest matched quantities.
func (r JoinResult) Range() (lo, hi float64, ok bool) {
	for _, rec := range r.Records {
		if rec.QuantityKg == nil {
			continue
		}
		q := *rec.QuantityKg
		if !ok {
			lo, hi, ok = q, q, true
			continue
		}
		if q < lo {
			lo = q
		}
		if q > hi {
			hi = q
		}
	}
	return lo, hi, ok
}

func propertyString(f *geojson.Feature, column string) string {
	if f == nil {
		return ""
	}
	v, ok := f.Properties[column]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
