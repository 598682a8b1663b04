package risk

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shellgate/shellgate/internal/shell"
	"github.com/shellgate/shellgate/internal/unicode"
)

// Classifier turns a raw command line into a Verdict. It is stateless once
// constructed and safe for concurrent use.
type Classifier struct {
	rules    *Ruleset
	handlers map[string]Handler
}

// New builds a classifier over the given ruleset, compiling its tables and
// installing the built-in command handlers.
func New(rules *Ruleset) (*Classifier, error) {
	if rules == nil {
		rules = DefaultRuleset()
	}
	if err := rules.Compile(); err != nil {
		return nil, fmt.Errorf("compile ruleset: %w", err)
	}
	return &Classifier{
		rules:    rules,
		handlers: defaultHandlers(),
	}, nil
}

// Classify is the engine's sole entry point for the execution layer: it
// parses the command line, classifies every simple command in the tree
// (recursing into substitutions) and folds the sub-verdicts into one
// worst-case verdict.
func (c *Classifier) Classify(command string) (Verdict, error) {
	if strings.TrimSpace(command) == "" {
		return Verdict{}, ErrInvalidCommand
	}

	// Smuggled characters make the rest of the analysis untrustworthy:
	// text that renders one way and parses another is refused.
	if threats := unicode.Scan(command); len(threats) > 0 {
		v := Verdict{Status: Red}
		for _, t := range threats {
			v.Reasons = append(v.Reasons, fmt.Sprintf("suspicious character %s: %s", t.Codepoint, t.Description))
		}
		return v, nil
	}

	v := c.classifyNode(shell.Parse(command))

	// Whole-line guard: a forbidden construct assembled across the tree
	// (e.g. a redirection attached to a subshell) must still be caught.
	if v.Status < Red {
		if rule, ok := matchTable(c.rules.Forbidden, command); ok {
			v = v.escalate(Red, rule.Reason)
		}
	}
	return v, nil
}

func (c *Classifier) classifyNode(n shell.Node) Verdict {
	switch t := n.(type) {
	case *shell.Simple:
		v := c.classifySimple(t)
		for _, w := range t.Words {
			for _, sub := range w.Subs {
				v = v.merge(c.classifyNode(sub))
			}
		}
		for _, r := range t.Redirs {
			for _, sub := range r.Target.Subs {
				v = v.merge(c.classifyNode(sub))
			}
		}
		return v

	case *shell.Pipeline:
		var v Verdict
		for _, stage := range t.Stages {
			v = v.merge(c.classifyNode(stage))
		}
		return v

	case *shell.List:
		var v Verdict
		for _, m := range t.Members {
			v = v.merge(c.classifyNode(m))
		}
		return v

	case *shell.Subshell:
		return c.classifyNode(t.Body)
	}

	return Verdict{Status: Yellow, Reasons: []string{"unrecognized command structure"}}
}

// classifySimple resolves one simple command: opaque nodes classify
// conservatively, registered handlers override the generic tables, and
// everything else goes through the ordered pattern tables.
func (c *Classifier) classifySimple(s *shell.Simple) Verdict {
	if s.Opaque {
		return c.classifyOpaque(s.Raw)
	}

	name := commandName(s.Name)

	// sudo and doas are transparent: the wrapped command is classified on
	// its own merits, with the privilege escalation noted on top.
	if name == "sudo" || name == "doas" {
		v := Verdict{Status: Yellow, Reasons: []string{"elevated privileges: " + name}}
		if inner := stripWrapper(s); inner != nil {
			return v.merge(c.classifySimple(inner))
		}
		return v
	}

	if h, ok := c.handlers[name]; ok {
		return h.Classify(s)
	}
	return c.classifyText(name, s.Raw)
}

// classifyText evaluates the ordered tables against a command's full text.
func (c *Classifier) classifyText(name, text string) Verdict {
	if rule, ok := matchTable(c.rules.Forbidden, text); ok {
		return Verdict{Status: Red, Reasons: []string{rule.Reason}}
	}
	if rule, ok := matchTable(c.rules.Risky, text); ok {
		return Verdict{Status: Yellow, Reasons: []string{rule.Reason}}
	}
	if rule, ok := matchTable(c.rules.Safe, text); ok {
		return Verdict{Status: Green, Reasons: []string{rule.Reason}}
	}
	return Verdict{Status: Yellow, Reasons: []string{fmt.Sprintf("unknown command %q, needs review", name)}}
}

// classifyOpaque handles input the parser could not decompose. The tables
// still run over the literal text so a forbidden construct is refused, but
// nothing opaque is ever Green.
func (c *Classifier) classifyOpaque(text string) Verdict {
	if rule, ok := matchTable(c.rules.Forbidden, text); ok {
		return Verdict{Status: Red, Reasons: []string{rule.Reason}}
	}
	v := Verdict{Status: Yellow, Reasons: []string{"unparseable command text, needs review"}}
	if rule, ok := matchTable(c.rules.Risky, text); ok {
		v.Reasons = append(v.Reasons, rule.Reason)
	}
	return v
}

// stripWrapper peels sudo/doas and its leading flags off a simple command,
// returning the wrapped invocation or nil if only flags remain.
func stripWrapper(s *shell.Simple) *shell.Simple {
	rest := s.Words[1:]
	for len(rest) > 0 && strings.HasPrefix(rest[0].Text, "-") {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return nil
	}
	texts := make([]string, len(rest))
	for i, w := range rest {
		texts[i] = w.Text
	}
	return &shell.Simple{
		Name:   rest[0].Text,
		Words:  rest,
		Redirs: s.Redirs,
		Raw:    strings.Join(texts, " "),
	}
}

// commandName normalizes a command word for handler lookup: strips any
// directory prefix and lowercases.
func commandName(word string) string {
	name := trimQuotes(strings.TrimSpace(word))
	name = filepath.Base(name)
	return strings.ToLower(name)
}
