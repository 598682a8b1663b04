// Package risk classifies shell commands into a three-tier safety verdict.
// Green commands may run unattended, Yellow commands need explicit user
// confirmation, Red commands are refused outright.
package risk

import "errors"

// ErrInvalidCommand is returned for empty or whitespace-only input, which is
// rejected before classification rather than assigned a tier.
var ErrInvalidCommand = errors.New("empty command")

// Status is a safety tier. The order matters: verdicts for compound
// commands fold by taking the maximum tier of their parts.
type Status int

const (
	Green Status = iota
	Yellow
	Red
)

func (s Status) String() string {
	switch s {
	case Green:
		return "GREEN"
	case Yellow:
		return "YELLOW"
	case Red:
		return "RED"
	}
	return "UNKNOWN"
}

// Verdict is the outcome of classifying one command line. Reasons
// accumulate across every classification step so the final verdict carries
// a full audit trail.
type Verdict struct {
	Status  Status
	Reasons []string
}

// merge folds another verdict in, keeping the worse status and
// concatenating reasons.
func (v Verdict) merge(o Verdict) Verdict {
	if o.Status > v.Status {
		v.Status = o.Status
	}
	v.Reasons = append(v.Reasons, o.Reasons...)
	return v
}

// escalate raises the verdict to at least s, recording why. It never
// lowers a verdict.
func (v Verdict) escalate(s Status, reason string) Verdict {
	if s > v.Status {
		v.Status = s
	}
	if reason != "" {
		v.Reasons = append(v.Reasons, reason)
	}
	return v
}

// RequiresApproval reports whether the command may not run unattended.
func RequiresApproval(v Verdict) bool {
	return v.Status >= Yellow
}

// IsBlocked reports whether the command must be refused outright.
func IsBlocked(v Verdict) bool {
	return v.Status == Red
}
