package synclog

import "time"

// Entry is the audit record appended after each successful sync run.
// It is bookkeeping only; nothing reads it back to decide what to sync.
type Entry struct {
	ID               int64
	RunID            string
	SyncDate         time.Time
	RecordsProcessed int
}
