// Package shell parses raw command text into a tree of simple commands
// connected by shell control operators, subshells and command substitutions.
// It performs no variable or glob expansion: words containing $VAR, ~ or
// globs pass through verbatim so downstream analyzers can treat them
// conservatively.
package shell

// Node is one vertex of a parsed command tree.
type Node interface {
	node()
}

// Simple is a single executable invocation: a command name, its argument
// words and its redirections. No control operators.
type Simple struct {
	// Name is the command word as written (e.g. "rm", "git", "./run.sh").
	Name string

	// Words are all words of the invocation, including Name at index 0.
	Words []Word

	// Redirs are the redirections attached to this command.
	Redirs []Redir

	// Raw is the original text of this invocation, redirections included.
	Raw string

	// Opaque marks input the parser could not decompose (malformed input,
	// shell constructs outside the supported grammar). Opaque nodes must be
	// classified conservatively, never as safe.
	Opaque bool
}

// Word is one argument as written. Subs holds the parsed bodies of any
// $(...) or backtick substitutions embedded in the word.
type Word struct {
	Text string
	Subs []Node
}

// Redir is a single redirection such as "> out.log", ">> log" or "2> err".
type Redir struct {
	Op     string
	Target Word
}

// Pipeline is two or more commands connected by |.
type Pipeline struct {
	Stages []Node
}

// List is a sequence of commands joined by control operators.
// Ops[i] is the operator (";", "&&" or "||") between Members[i] and
// Members[i+1].
type List struct {
	Members []Node
	Ops     []string
}

// Subshell is a parenthesised ( ... ) group.
type Subshell struct {
	Body Node
}

func (*Simple) node()   {}
func (*Pipeline) node() {}
func (*List) node()     {}
func (*Subshell) node() {}
