// Package model defines shared data types used across the silver dashboard.
//
// Conventions:
//   - Quantities: float64 kilograms, never negative
//   - Prices: float64 INR (per gram for the calculator, per kilogram for history)
//   - State names: free text as loaded; see package geo for canonical spellings
package model
