// Package uploads keeps uploaded GeoJSON boundary files in memory.
//
// Each upload is parsed once, stored under a random ID and expires after a
// TTL. A Sweeper removes expired uploads in the background; the store also
// evicts the oldest upload when it is full.
package uploads
