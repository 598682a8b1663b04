package shell

import (
	"testing"
)

func TestParse_SimpleCommand(t *testing.T) {
	node := Parse("ls -la /tmp")
	s, ok := node.(*Simple)
	if !ok {
		t.Fatalf("expected *Simple, got %T", node)
	}
	if s.Opaque {
		t.Fatal("simple command should not be opaque")
	}
	if s.Name != "ls" {
		t.Errorf("expected name %q, got %q", "ls", s.Name)
	}
	if len(s.Words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(s.Words))
	}
	if s.Words[2].Text != "/tmp" {
		t.Errorf("expected word %q, got %q", "/tmp", s.Words[2].Text)
	}
}

func TestParse_Pipeline(t *testing.T) {
	node := Parse("cat access.log | grep 500 | wc -l")
	p, ok := node.(*Pipeline)
	if !ok {
		t.Fatalf("expected *Pipeline, got %T", node)
	}
	if len(p.Stages) != 3 {
		t.Fatalf("expected 3 stages, got %d", len(p.Stages))
	}
	names := []string{"cat", "grep", "wc"}
	for i, want := range names {
		s, ok := p.Stages[i].(*Simple)
		if !ok {
			t.Fatalf("stage %d: expected *Simple, got %T", i, p.Stages[i])
		}
		if s.Name != want {
			t.Errorf("stage %d: expected %q, got %q", i, want, s.Name)
		}
	}
}

func TestParse_ListOperators(t *testing.T) {
	node := Parse("make && make test || echo failed")
	l, ok := node.(*List)
	if !ok {
		t.Fatalf("expected *List, got %T", node)
	}
	if len(l.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(l.Members))
	}
	if len(l.Ops) != 2 || l.Ops[0] != "&&" || l.Ops[1] != "||" {
		t.Errorf("expected ops [&& ||], got %v", l.Ops)
	}
}

func TestParse_SemicolonList(t *testing.T) {
	node := Parse("echo hi; rm -rf /tmp/scratch")
	l, ok := node.(*List)
	if !ok {
		t.Fatalf("expected *List, got %T", node)
	}
	if len(l.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(l.Members))
	}
	if l.Ops[0] != ";" {
		t.Errorf("expected op ;, got %q", l.Ops[0])
	}
}

func TestParse_Subshell(t *testing.T) {
	node := Parse("(cd /tmp && ls)")
	sub, ok := node.(*Subshell)
	if !ok {
		t.Fatalf("expected *Subshell, got %T", node)
	}
	if _, ok := sub.Body.(*List); !ok {
		t.Fatalf("expected *List body, got %T", sub.Body)
	}
}

func TestParse_CommandSubstitution(t *testing.T) {
	node := Parse("echo $(whoami)")
	s, ok := node.(*Simple)
	if !ok {
		t.Fatalf("expected *Simple, got %T", node)
	}
	if len(s.Words) != 2 {
		t.Fatalf("expected 2 words, got %d", len(s.Words))
	}
	subs := s.Words[1].Subs
	if len(subs) != 1 {
		t.Fatalf("expected 1 substitution, got %d", len(subs))
	}
	inner, ok := subs[0].(*Simple)
	if !ok {
		t.Fatalf("expected *Simple substitution body, got %T", subs[0])
	}
	if inner.Name != "whoami" {
		t.Errorf("expected inner name %q, got %q", "whoami", inner.Name)
	}
}

func TestParse_BacktickSubstitution(t *testing.T) {
	node := Parse("kill `pgrep myapp`")
	s, ok := node.(*Simple)
	if !ok {
		t.Fatalf("expected *Simple, got %T", node)
	}
	if len(s.Words[1].Subs) != 1 {
		t.Fatalf("expected 1 substitution, got %d", len(s.Words[1].Subs))
	}
}

func TestParse_NestedSubstitution(t *testing.T) {
	node := Parse("echo $(echo $(hostname))")
	s := node.(*Simple)
	inner := s.Words[1].Subs[0].(*Simple)
	if len(inner.Words[1].Subs) != 1 {
		t.Fatalf("expected nested substitution, got %d", len(inner.Words[1].Subs))
	}
}

func TestParse_Redirections(t *testing.T) {
	node := Parse("echo hi > out.txt 2> err.log")
	s, ok := node.(*Simple)
	if !ok {
		t.Fatalf("expected *Simple, got %T", node)
	}
	if len(s.Redirs) != 2 {
		t.Fatalf("expected 2 redirections, got %d", len(s.Redirs))
	}
	if s.Redirs[0].Op != ">" || s.Redirs[0].Target.Text != "out.txt" {
		t.Errorf("unexpected first redirection: %+v", s.Redirs[0])
	}
	if s.Redirs[1].Op != "2>" || s.Redirs[1].Target.Text != "err.log" {
		t.Errorf("unexpected second redirection: %+v", s.Redirs[1])
	}
	if s.Raw != "echo hi > out.txt 2> err.log" {
		t.Errorf("raw should cover the full statement, got %q", s.Raw)
	}
}

func TestParse_QuotedWordsVerbatim(t *testing.T) {
	node := Parse(`grep 'a b' "$HOME/notes.txt"`)
	s := node.(*Simple)
	if len(s.Words) != 3 {
		t.Fatalf("expected 3 words, got %d", len(s.Words))
	}
	if s.Words[1].Text != "'a b'" {
		t.Errorf("quoted word should stay as written, got %q", s.Words[1].Text)
	}
	if s.Words[2].Text != `"$HOME/notes.txt"` {
		t.Errorf("variable should not expand, got %q", s.Words[2].Text)
	}
}

func TestParse_UnsupportedConstructIsOpaque(t *testing.T) {
	node := Parse("for f in *; do cat $f; done")
	s, ok := node.(*Simple)
	if !ok {
		t.Fatalf("expected opaque *Simple, got %T", node)
	}
	if !s.Opaque {
		t.Fatal("loop should parse as opaque")
	}
	if s.Raw == "" {
		t.Fatal("opaque node should keep the literal text")
	}
}

func TestParse_MalformedInputIsOpaque(t *testing.T) {
	for _, text := range []string{"echo 'unclosed", "ls | | grep x", "(((("} {
		node := Parse(text)
		s, ok := node.(*Simple)
		if !ok {
			t.Fatalf("input %q: expected opaque *Simple, got %T", text, node)
		}
		if !s.Opaque {
			t.Errorf("input %q should be opaque", text)
		}
	}
}

func TestParse_PipelineStageRedirection(t *testing.T) {
	node := Parse("sort data.txt | uniq > counts.txt")
	p, ok := node.(*Pipeline)
	if !ok {
		t.Fatalf("expected *Pipeline, got %T", node)
	}
	last, ok := p.Stages[1].(*Simple)
	if !ok {
		t.Fatalf("expected *Simple, got %T", p.Stages[1])
	}
	if len(last.Redirs) != 1 || last.Redirs[0].Target.Text != "counts.txt" {
		t.Errorf("redirection should attach to the last stage: %+v", last.Redirs)
	}
}
