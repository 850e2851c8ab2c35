// Package purchases loads the state-wise silver purchase table and answers the
// dashboard's questions about it.
//
// The table comes from a Source: a CSV file with a State,Silver_Purchased_kg
// header, a PostgreSQL table, or the built-in sample. A Source that cannot
// deliver never takes the dashboard down; the Provider falls back to the
// sample and records a warning that is shown next to the data.
//
// The Watcher reloads a CSV source when the file changes on disk.
package purchases
