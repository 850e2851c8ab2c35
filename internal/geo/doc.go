// Package geo reads uploaded GeoJSON boundaries and joins them with the
// state purchase table.
//
// State names rarely agree between a boundary file and a purchase table, so
// both sides are passed through Normalize before matching. Features that do
// not match keep a nil quantity and are reported back as unmatched; the join
// never fails because of them.
package geo
