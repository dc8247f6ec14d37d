// Package types defines the domain types, storage interface, and standard
// errors for the Daybook habit tracker: habit definitions, the day/month
// journal, and the export snapshot codec. Types here are pure data; all
// persistence and mutation logic lives in internal packages.
package types
