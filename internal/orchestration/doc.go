// Package orchestration runs the aggregation pipeline: discover result files,
// summarize each one in directory order, optionally accumulate the raw rows,
// and write the sorted summary. It decouples that flow from presentation via
// the ProgressReporter and ResultPresenter interfaces.
package orchestration
