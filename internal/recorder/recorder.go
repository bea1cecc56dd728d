// Package recorder persists completed analyses for offline review.
//
// The trade ledger itself is deliberately memory-only; the recorder is an
// audit log of analysis events, not trade storage, and defaults to the noop
// implementation unless a database path is configured.
package recorder

import "tradedesk/internal/model"

// Recorder records completed analysis results.
type Recorder interface {
	Record(res *model.AnalysisResult) error
	Close() error
}

// Noop discards everything.
type Noop struct{}

func (Noop) Record(*model.AnalysisResult) error { return nil }
func (Noop) Close() error                       { return nil }
