// Package render turns dashboard data into ECharts pages and SVG maps.
package render
