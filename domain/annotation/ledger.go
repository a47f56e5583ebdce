package annotation

import "fmt"

// RevisitPolicy decides what happens when an image is committed twice.
type RevisitPolicy int

const (
	// RevisitReplace keeps one group per image; a re-commit overwrites the
	// earlier group in place.
	RevisitReplace RevisitPolicy = iota
	// RevisitAppend emits a new group on every commit, leaving old ones.
	RevisitAppend
)

func (p RevisitPolicy) String() string {
	switch p {
	case RevisitReplace:
		return "replace"
	case RevisitAppend:
		return "append"
	default:
		return "unknown"
	}
}

// ParseRevisitPolicy maps a config value to a policy.
func ParseRevisitPolicy(s string) (RevisitPolicy, error) {
	switch s {
	case "", "replace":
		return RevisitReplace, nil
	case "append":
		return RevisitAppend, nil
	default:
		return RevisitReplace, fmt.Errorf("unknown revisit policy %q", s)
	}
}

// Ledger accumulates committed record groups in commit order. Groups are
// never mutated after Commit returns.
type Ledger struct {
	policy RevisitPolicy
	groups [][]Record
	index  map[string]int
}

func NewLedger(policy RevisitPolicy) *Ledger {
	return &Ledger{policy: policy, index: make(map[string]int)}
}

// Commit stores the rows of one image. It reports whether an earlier group
// for the same image was replaced.
func (l *Ledger) Commit(imageID string, group []Record) (replaced bool) {
	group = append([]Record(nil), group...)
	if l.policy == RevisitReplace {
		if i, ok := l.index[imageID]; ok {
			l.groups[i] = group
			return true
		}
	}
	l.index[imageID] = len(l.groups)
	l.groups = append(l.groups, group)
	return false
}

// Groups returns the number of committed groups.
func (l *Ledger) Groups() int { return len(l.groups) }

// Records flattens all groups in order.
func (l *Ledger) Records() []Record {
	var out []Record
	for _, g := range l.groups {
		out = append(out, g...)
	}
	return out
}

// Drain writes every record to sink and flushes it once.
func (l *Ledger) Drain(sink Sink) error {
	for _, rec := range l.Records() {
		if err := sink.AppendRecord(rec); err != nil {
			return fmt.Errorf("append record: %w", err)
		}
	}
	if err := sink.Flush(); err != nil {
		return fmt.Errorf("flush annotations: %w", err)
	}
	return nil
}
