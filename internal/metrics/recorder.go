// Package metrics records monitor activity. Components default to NoopRecorder;
// the Prometheus implementation is swapped in when a metrics address is configured.
package metrics

import "time"

// CycleResult labels the outcome of one sampling cycle.
type CycleResult string

const (
	CycleInitialized CycleResult = "initialized"
	CycleUnchanged   CycleResult = "unchanged"
	CycleChanged     CycleResult = "changed"
	CycleFailed      CycleResult = "failed"
)

// Recorder is the set of observations the monitor emits.
type Recorder interface {
	ObserveCycle(result CycleResult, d time.Duration)
	SetDepositCap(value float64)
	IncDegradedRead(method string)
	IncNotification(channel string, ok bool)
}

// NoopRecorder discards every observation.
type NoopRecorder struct{}

// ObserveCycle does nothing.
func (NoopRecorder) ObserveCycle(CycleResult, time.Duration) {}

// SetDepositCap does nothing.
func (NoopRecorder) SetDepositCap(float64) {}

// IncDegradedRead does nothing.
func (NoopRecorder) IncDegradedRead(string) {}

// IncNotification does nothing.
func (NoopRecorder) IncNotification(string, bool) {}
