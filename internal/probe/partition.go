package probe

import "time"

// HostRecord is the outcome of one connect attempt.
type HostRecord struct {
	Host      string
	Reachable bool
	Latency   time.Duration
	// Err is kept for logging only; any non-nil Err means unreachable.
	Err error
}

// Partition splits probed hosts into reachable (true) and unreachable (false).
type Partition map[bool][]string

// NewPartition returns a Partition with both keys present and empty.
func NewPartition() Partition {
	return Partition{true: []string{}, false: []string{}}
}

func (p Partition) Add(r HostRecord) {
	p[r.Reachable] = append(p[r.Reachable], r.Host)
}

func (p Partition) Reachable() []string   { return p[true] }
func (p Partition) Unreachable() []string { return p[false] }

// Len is the number of recorded attempts.
func (p Partition) Len() int {
	return len(p[true]) + len(p[false])
}
