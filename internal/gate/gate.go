// Package gate manages the single in-flight approval request that guards
// commands needing user confirmation. Classification itself is stateless;
// the gate is the one stateful component and serializes entry so at most
// one request is pending per session.
package gate

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrAlreadyPending is returned when a second approval is requested
	// while one is outstanding.
	ErrAlreadyPending = errors.New("an approval request is already pending")

	// ErrUnknownRequest is returned for a decision whose id does not match
	// the current pending request (stale or duplicate UI event).
	ErrUnknownRequest = errors.New("no pending approval request with that id")
)

// Decision is the caller's verdict on a pending request.
type Decision string

const (
	Approved Decision = "approved"
	Rejected Decision = "rejected"
)

// RequestStatus tracks a request through its lifecycle.
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusApproved RequestStatus = "approved"
	StatusRejected RequestStatus = "rejected"
)

// Request is one approval request. CallID doubles as the request id,
// correlating the confirmation prompt with the tool invocation it guards.
type Request struct {
	ID          string
	ToolName    string
	CommandText string
	Status      RequestStatus
	Reason      string
	CreatedAt   time.Time
	ResolvedAt  time.Time
}

// Gate holds at most one pending request at a time. Safe for concurrent
// use; entry into the pending state is mutually exclusive.
type Gate struct {
	mu      sync.Mutex
	pending *Request
	notify  func(Request)
}

func New() *Gate {
	return &Gate{}
}

// SetNotify registers a callback invoked with the resolved request after
// every decision. The callback runs outside the gate's lock.
func (g *Gate) SetNotify(fn func(Request)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.notify = fn
}

// Request opens an approval request for a command about to run. callID is
// the caller's correlation id; when empty a fresh one is generated. Fails
// with ErrAlreadyPending if a request is outstanding.
func (g *Gate) Request(toolName, commandText, callID string) (Request, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pending != nil {
		return Request{}, ErrAlreadyPending
	}
	if callID == "" {
		callID = uuid.NewString()
	}
	r := &Request{
		ID:          callID,
		ToolName:    toolName,
		CommandText: commandText,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	g.pending = r
	return *r, nil
}

// Decide resolves the pending request and returns the gate to idle.
// Cancellation is modeled as Rejected. Fails with ErrUnknownRequest if id
// does not match the current pending request.
func (g *Gate) Decide(id string, decision Decision, reason string) (Request, error) {
	g.mu.Lock()
	if g.pending == nil || g.pending.ID != id {
		g.mu.Unlock()
		return Request{}, ErrUnknownRequest
	}

	r := g.pending
	g.pending = nil
	if decision == Approved {
		r.Status = StatusApproved
	} else {
		r.Status = StatusRejected
	}
	r.Reason = reason
	r.ResolvedAt = time.Now().UTC()
	resolved := *r
	notify := g.notify
	g.mu.Unlock()

	if notify != nil {
		notify(resolved)
	}
	return resolved, nil
}

// Pending returns a copy of the current pending request, if any.
func (g *Gate) Pending() (Request, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return Request{}, false
	}
	return *g.pending, true
}
