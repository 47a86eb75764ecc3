// Package site loads the league datasets and renders them as HTML.
//
// A Loader fetches exactly the sheets a set of pages needs and assembles
// the view models into Data. The Render functions turn Data into pages
// for both the static build (Build) and the preview server.
package site
