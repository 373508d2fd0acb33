// Package ihtplog implements the two external collaborators spec §6 names
// for observability: the action log sink ("a sink that accepts
// (penalty, action-string) events") and the process-wide structured
// logger, set up the way the teacher's command entry points do it.
package ihtplog

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVSink writes one row per committed move to an underlying writer, using
// the "index,penalties,actions" header spec §6 requires.
type CSVSink struct {
	w     *csv.Writer
	wrote bool
}

// NewCSVSink wraps w. The header row is written lazily, on the first
// Record call, so an unused sink never produces an empty-but-headed file.
func NewCSVSink(w io.Writer) *CSVSink {
	return &CSVSink{w: csv.NewWriter(w)}
}

// Record appends one row. Errors from the underlying writer are not
// surfaced (spec treats the action log as best-effort observability, not a
// correctness dependency of the search itself); each row is flushed at
// once, and Err can be used by a caller that wants to be strict.
func (s *CSVSink) Record(index, penalty int, action string) {
	if !s.wrote {
		_ = s.w.Write([]string{"index", "penalties", "actions"})
		s.wrote = true
	}
	_ = s.w.Write([]string{fmt.Sprintf("%d", index), fmt.Sprintf("%d", penalty), action})
	s.w.Flush()
}

// Err returns the first error, if any, encountered while writing.
func (s *CSVSink) Err() error {
	return s.w.Error()
}
