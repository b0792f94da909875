// Package results finds benchmark result files and reads their timing rows.
//
// A result file is a CSV whose name carries the requested sleep duration as a
// "-<N><unit>." segment (for example "sleep-100ms.csv") and whose header has
// at least the "Start" and "End" columns. Timestamps are taken to be in
// nanoseconds already.
package results
