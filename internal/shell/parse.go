package shell

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// Parse turns raw command text into a command tree. It never fails: input
// the bash grammar cannot decompose comes back as an opaque Simple node,
// so classification degrades to "unknown" instead of an error a caller
// could swallow into an allow decision.
func Parse(text string) Node {
	parser := syntax.NewParser(syntax.KeepComments(false), syntax.Variant(syntax.LangBash))
	file, err := parser.Parse(strings.NewReader(text), "")
	if err != nil {
		return opaque(text)
	}
	return stmtsToNode(file.Stmts, text)
}

// stmtsToNode converts a statement sequence. Multiple statements become a
// List joined by ";".
func stmtsToNode(stmts []*syntax.Stmt, src string) Node {
	nodes := make([]Node, 0, len(stmts))
	for _, stmt := range stmts {
		nodes = append(nodes, convertStmt(stmt, src))
	}
	switch len(nodes) {
	case 0:
		return opaque(src)
	case 1:
		return nodes[0]
	}
	ops := make([]string, len(nodes)-1)
	for i := range ops {
		ops[i] = ";"
	}
	return &List{Members: nodes, Ops: ops}
}

func convertStmt(stmt *syntax.Stmt, src string) Node {
	if stmt.Cmd == nil {
		return opaque(textAt(src, stmt.Pos(), stmt.End()))
	}
	n := convertCmd(stmt.Cmd, src)
	if s, ok := n.(*Simple); ok {
		for _, r := range stmt.Redirs {
			s.Redirs = append(s.Redirs, convertRedir(r, src))
		}
		// Extend Raw over the whole statement so redirections are visible
		// to text-level pattern matching.
		if raw := textAt(src, stmt.Pos(), stmt.End()); raw != "" {
			s.Raw = raw
		}
	}
	return n
}

func convertCmd(cmd syntax.Command, src string) Node {
	switch c := cmd.(type) {
	case *syntax.CallExpr:
		return convertCall(c, src)

	case *syntax.BinaryCmd:
		switch c.Op {
		case syntax.Pipe, syntax.PipeAll:
			var stages []Node
			appendPipeStages(c.X, src, &stages)
			appendPipeStages(c.Y, src, &stages)
			return &Pipeline{Stages: stages}
		case syntax.AndStmt, syntax.OrStmt:
			var members []Node
			var ops []string
			appendListMembers(c, src, &members, &ops)
			return &List{Members: members, Ops: ops}
		}
		return opaque(textAt(src, c.Pos(), c.End()))

	case *syntax.Subshell:
		return &Subshell{Body: stmtsToNode(c.Stmts, src)}

	case *syntax.Block:
		return stmtsToNode(c.Stmts, src)

	default:
		// Loops, conditionals, function declarations and anything else the
		// tree does not model are kept as opaque text.
		return opaque(textAt(src, cmd.Pos(), cmd.End()))
	}
}

// appendPipeStages flattens nested pipe operators into a single stage list.
func appendPipeStages(stmt *syntax.Stmt, src string, stages *[]Node) {
	if b, ok := stmt.Cmd.(*syntax.BinaryCmd); ok && len(stmt.Redirs) == 0 &&
		(b.Op == syntax.Pipe || b.Op == syntax.PipeAll) {
		appendPipeStages(b.X, src, stages)
		appendPipeStages(b.Y, src, stages)
		return
	}
	*stages = append(*stages, convertStmt(stmt, src))
}

// appendListMembers flattens nested && / || operators into one List.
func appendListMembers(b *syntax.BinaryCmd, src string, members *[]Node, ops *[]string) {
	appendListMember(b.X, src, members, ops)
	*ops = append(*ops, binaryOpString(b.Op))
	appendListMember(b.Y, src, members, ops)
}

func appendListMember(stmt *syntax.Stmt, src string, members *[]Node, ops *[]string) {
	if inner, ok := stmt.Cmd.(*syntax.BinaryCmd); ok && len(stmt.Redirs) == 0 &&
		(inner.Op == syntax.AndStmt || inner.Op == syntax.OrStmt) {
		appendListMembers(inner, src, members, ops)
		return
	}
	*members = append(*members, convertStmt(stmt, src))
}

func convertCall(call *syntax.CallExpr, src string) Node {
	if len(call.Args) == 0 {
		// Bare assignments or an empty call carry no execution risk of
		// their own; keep them opaque so they classify as unknown.
		return opaque(textAt(src, call.Pos(), call.End()))
	}
	s := &Simple{Raw: textAt(src, call.Pos(), call.End())}
	for _, w := range call.Args {
		s.Words = append(s.Words, convertWord(w, src))
	}
	s.Name = s.Words[0].Text
	return s
}

func convertWord(w *syntax.Word, src string) Word {
	word := Word{Text: wordText(w)}
	syntax.Walk(w, func(n syntax.Node) bool {
		switch sub := n.(type) {
		case *syntax.CmdSubst:
			word.Subs = append(word.Subs, stmtsToNode(sub.Stmts, src))
			return false
		case *syntax.ProcSubst:
			word.Subs = append(word.Subs, stmtsToNode(sub.Stmts, src))
			return false
		}
		return true
	})
	return word
}

func convertRedir(r *syntax.Redirect, src string) Redir {
	op := r.Op.String()
	if r.N != nil {
		op = r.N.Value + op
	}
	redir := Redir{Op: op}
	if r.Word != nil {
		redir.Target = convertWord(r.Word, src)
	}
	return redir
}

// wordText renders a word back to its written form, quotes and all.
func wordText(w *syntax.Word) string {
	var sb strings.Builder
	printer := syntax.NewPrinter()
	if err := printer.Print(&sb, w); err != nil {
		return ""
	}
	return sb.String()
}

func binaryOpString(op syntax.BinCmdOperator) string {
	switch op {
	case syntax.Pipe, syntax.PipeAll:
		return "|"
	case syntax.AndStmt:
		return "&&"
	case syntax.OrStmt:
		return "||"
	}
	return op.String()
}

func textAt(src string, pos, end syntax.Pos) string {
	if !pos.IsValid() || !end.IsValid() {
		return src
	}
	s, e := int(pos.Offset()), int(end.Offset())
	if s < 0 || e > len(src) || s > e {
		return src
	}
	return src[s:e]
}

func opaque(text string) *Simple {
	return &Simple{Raw: strings.TrimSpace(text), Opaque: true}
}
