// Package server exposes the dashboard over HTTP.
//
// Routes:
//
//	GET    /healthz                      component health
//	GET    /api/v1/currencies            supported currencies and rates
//	GET    /api/v1/quote                 price a purchase
//	GET    /api/v1/history               price series for a bracket
//	GET    /api/v1/states                state table, optionally searched
//	GET    /api/v1/states/top            largest purchasers
//	POST   /api/v1/states/reload         reload the state table
//	GET    /api/v1/january               January trend
//	POST   /api/v1/maps                  upload GeoJSON
//	GET    /api/v1/maps/{id}             upload metadata
//	DELETE /api/v1/maps/{id}             drop an upload
//	GET    /api/v1/maps/{id}/join        join an upload with the state table
//	GET    /api/v1/maps/{id}/map.svg     render the choropleth
//	GET    /charts/{name}                one ECharts page
//	GET    /                             every chart on one page
//	GET    /ws                           reload notifications
//
// User errors are answered with a JSON body of the form
// {"error": "...", "hints": ["..."]} and a 4xx status.
package server
