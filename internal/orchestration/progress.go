package orchestration

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
type ProgressReporterFunc func(name string)

// FileStarted calls the underlying function.
func (f ProgressReporterFunc) FileStarted(name string) { f(name) }

// NullProgressReporter is a no-op implementation of ProgressReporter.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// FileStarted does nothing.
func (NullProgressReporter) FileStarted(string) {}
