// Package storage writes generated calendar files.
//
// Files are named <prefix>-<UTC timestamp>.ics inside the output directory,
// which is created on first use. An existing file is never overwritten: a
// numeric suffix is appended until a free name is found.
package storage
