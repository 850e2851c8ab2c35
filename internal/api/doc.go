// Package api is a client for the silverdash HTTP API.
//
// Reads are retried with jittered exponential backoff on 5xx and 429
// responses. Uploads and other writes are sent once.
package api
