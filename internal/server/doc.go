// Package server provides the live preview HTTP server.
//
// Every request re-fetches the sheets behind the page it renders, the way
// the published site reloads its data on each page view. When a sheet
// cannot be loaded the page is replaced by a "Failed to load" page with a
// 502 status.
package server
