// Package course provides the course record scraped from a catalog page and
// the parsers that turn catalog text into typed values.
//
// Dates and times of day are kept as separate value types: a Date carries no
// clock component and a TimeOfDay carries no calendar component. A Record is
// only ever returned from Assemble after it has passed validation, so
// downstream code can rely on non-empty meeting days and valid dates.
package course
