package gate

import "strings"

// Capabilities flags how a tool's UI entries interact with the approval
// flow. New tools opt in or out through the lookup without the gate
// changing.
type Capabilities struct {
	// AnnotateCommandMessage marks completed entries that went through
	// human approval.
	AnnotateCommandMessage bool

	// HidePendingDuringPrompt removes a tool's in-flight entries while its
	// approval prompt is showing, so the user is not shown stale
	// duplicates.
	HidePendingDuringPrompt bool
}

// CapabilityLookup resolves per-tool capabilities. A nil lookup means every
// tool participates fully.
type CapabilityLookup func(toolName string) Capabilities

// UIAction is a UI-visible record of a tool call in flight. Its lifecycle
// belongs to the presentation layer; the gate only filters and annotates.
type UIAction struct {
	CallID   string
	ToolName string
	Message  string
	Approved bool
}

// FilterPendingForApproval removes in-flight entries that duplicate the
// current approval prompt. Matching prefers CallID and falls back to
// ToolName only when the entry has no CallID; unrelated entries are never
// removed.
func FilterPendingForApproval(items []UIAction, req Request, caps CapabilityLookup) []UIAction {
	out := make([]UIAction, 0, len(items))
	for _, item := range items {
		if !capsFor(caps, item.ToolName).HidePendingDuringPrompt {
			out = append(out, item)
			continue
		}
		if matchesRequest(item, req) {
			continue
		}
		out = append(out, item)
	}
	return out
}

// AnnotateOnApproval marks a completed action as having passed through
// human approval. The input is returned unchanged when the tool does not
// annotate or the action does not belong to the request.
func AnnotateOnApproval(item UIAction, req Request, caps CapabilityLookup) UIAction {
	if !capsFor(caps, item.ToolName).AnnotateCommandMessage {
		return item
	}
	if req.Status != StatusApproved || !matchesRequest(item, req) {
		return item
	}
	item.Approved = true
	item.Message = strings.TrimSpace(item.Message + " (approved by user)")
	return item
}

func capsFor(caps CapabilityLookup, toolName string) Capabilities {
	if caps == nil {
		return Capabilities{AnnotateCommandMessage: true, HidePendingDuringPrompt: true}
	}
	return caps(toolName)
}

// matchesRequest correlates a UI entry with a request: by CallID when the
// entry carries one, by ToolName otherwise.
func matchesRequest(item UIAction, req Request) bool {
	if item.CallID != "" {
		return item.CallID == req.ID
	}
	return item.ToolName == req.ToolName
}
