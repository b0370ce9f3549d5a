// Package scraper extracts course records from catalog pages.
//
// Extraction is driven by a fixed table that maps every record field to a
// CSS selector and a transform from the selected element's text to the
// field's typed value. Extract runs the table over one parsed page; Scraper
// adds HTTP fetching and a bounded concurrent batch whose results keep the
// order of the input URLs.
package scraper
