// Package cli implements the command-line interface for course-ical.
//
// The cli package provides the Cobra command that validates catalog URLs,
// fetches and extracts every course concurrently, materializes one recurring
// event per course and writes the resulting .ics file. A run summary is
// printed as text or JSON.
package cli
