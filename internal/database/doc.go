// Package database stores the state purchase table in PostgreSQL.
//
// The dashboard can read its state table from the state_purchases table
// instead of a CSV file. StateStore implements purchases.Source for that
// case and also seeds the table from whatever source is currently loaded.
package database
