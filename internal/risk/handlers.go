package risk

import (
	"strings"

	"github.com/shellgate/shellgate/internal/shell"
)

// Handler refines classification for a command whose danger depends on its
// flags and path arguments, overriding the generic pattern tables for that
// command name only.
type Handler interface {
	Name() string
	Classify(s *shell.Simple) Verdict
}

func defaultHandlers() map[string]Handler {
	handlers := []Handler{
		&findHandler{},
		&sedHandler{},
	}
	m := make(map[string]Handler, len(handlers))
	for _, h := range handlers {
		m[h.Name()] = h
	}
	return m
}

// ---------------------------------------------------------------------------
// find
// ---------------------------------------------------------------------------

type findHandler struct{}

func (h *findHandler) Name() string { return "find" }

// execPrimitives are find actions that run or delete things.
var execPrimitives = map[string]bool{
	"-delete": true, "-exec": true, "-execdir": true, "-ok": true, "-okdir": true,
}

// dangerousExecTargets are commands that make a find -exec destructive.
var dangerousExecTargets = map[string]bool{
	"rm": true, "rmdir": true, "mv": true, "dd": true, "shred": true,
	"chmod": true, "chown": true, "sh": true, "bash": true, "zsh": true, "dash": true,
}

// valueFlags are find predicates that consume the following word, so that
// word is a pattern or value, not a search root.
var valueFlags = map[string]bool{
	"-name": true, "-iname": true, "-path": true, "-ipath": true,
	"-regex": true, "-iregex": true, "-type": true, "-perm": true,
	"-size": true, "-user": true, "-group": true, "-newer": true,
	"-mtime": true, "-atime": true, "-ctime": true, "-mmin": true,
	"-amin": true, "-cmin": true, "-maxdepth": true, "-mindepth": true,
	"-printf": true, "-fprint": true, "-fprintf": true, "-fls": true,
}

// writingFlags produce files as a side effect of the search.
var writingFlags = map[string]bool{
	"-fprint": true, "-fprintf": true, "-fls": true,
}

func (h *findHandler) Classify(s *shell.Simple) Verdict {
	v := Verdict{Status: Green, Reasons: []string{"find: read-only search"}}

	words := s.Words[1:]
	for i := 0; i < len(words); i++ {
		w := trimQuotes(words[i].Text)

		if strings.HasPrefix(w, "-") {
			if w == "-delete" {
				return Verdict{Status: Red, Reasons: []string{"find -delete removes matched files"}}
			}
			if execPrimitives[w] {
				target := ""
				if i+1 < len(words) {
					target = commandName(words[i+1].Text)
				}
				if dangerousExecTargets[target] {
					return Verdict{
						Status:  Red,
						Reasons: []string{"find " + w + " " + target + " executes a destructive command per match"},
					}
				}
				v = v.escalate(Yellow, "find "+w+" runs an arbitrary command per match")
				// Skip the -exec payload up to the ; or + terminator.
				for i+1 < len(words) {
					i++
					t := words[i].Text
					if t == ";" || t == `\;` || t == "+" {
						break
					}
				}
				continue
			}
			if writingFlags[w] {
				v = v.escalate(Yellow, "find "+w+" writes output files")
			}
			if valueFlags[w] && i+1 < len(words) {
				i++ // the next word is a pattern or value, not a path
			}
			continue
		}

		// Positional word: a candidate search root.
		switch {
		case strings.ContainsAny(w, "*?["):
			// Glob roots expand to matched entries; inherently bounded.
		case w == "." || strings.HasPrefix(w, "./"):
			// Searching under the working directory is the normal case.
		case w == "/":
			v = v.escalate(Yellow, "find from filesystem root is resource-intensive")
		default:
			pr := AnalyzePath(w)
			if pr.Kind == KindSystem {
				// find does not mutate by itself: read access to system
				// paths is audited, not blocked.
				v = v.escalate(Yellow, "find over a system path: "+w)
				continue
			}
			v = v.escalate(pr.Status, pr.Reason)
		}
	}

	// Redirected output turns the search into a write: the target path is
	// judged at full strength, since find is only read-only on its own.
	for _, r := range s.Redirs {
		if !redirectWrites(r.Op) {
			continue
		}
		v = v.escalate(Yellow, "find output is redirected to a file")
		if r.Target.Text != "" {
			pr := AnalyzePath(r.Target.Text)
			v = v.escalate(pr.Status, pr.Reason)
		}
	}
	return v
}

// ---------------------------------------------------------------------------
// sed
// ---------------------------------------------------------------------------

type sedHandler struct{}

func (h *sedHandler) Name() string { return "sed" }

func (h *sedHandler) Classify(s *shell.Simple) Verdict {
	words := s.Words[1:]

	// Any in-place flag turns sed into a silent file-mutation primitive.
	for _, w := range words {
		t := trimQuotes(w.Text)
		if isInPlaceFlag(t) {
			return Verdict{Status: Red, Reasons: []string{"sed in-place edit (" + t + ") mutates files silently"}}
		}
	}

	redirects := false
	for _, r := range s.Redirs {
		if redirectWrites(r.Op) {
			redirects = true
			break
		}
	}

	if !redirects {
		// Without -i and without output redirection sed cannot mutate
		// state, no matter what paths it reads.
		return Verdict{Status: Green, Reasons: []string{"sed: read-only stream edit"}}
	}

	v := Verdict{Status: Yellow, Reasons: []string{"sed output is redirected to a file"}}
	for _, arg := range sedFileArgs(words) {
		pr := AnalyzePath(arg)
		v = v.escalate(pr.Status, pr.Reason)
	}
	for _, r := range s.Redirs {
		if redirectWrites(r.Op) && r.Target.Text != "" {
			pr := AnalyzePath(r.Target.Text)
			v = v.escalate(pr.Status, pr.Reason)
		}
	}
	return v
}

// redirectWrites reports whether a redirection operator creates or appends
// to a file. Descriptor duplication (2>&1) moves no bytes to disk; &> and
// &>> do.
func redirectWrites(op string) bool {
	if strings.HasSuffix(op, ">&") || strings.Contains(op, "<") {
		return false
	}
	return strings.Contains(op, ">")
}

// isInPlaceFlag matches -i, -i.bak, --in-place[=SUFFIX] and clustered
// short flags containing i (e.g. -ri).
func isInPlaceFlag(w string) bool {
	if strings.HasPrefix(w, "--in-place") {
		return true
	}
	if strings.HasPrefix(w, "-") && !strings.HasPrefix(w, "--") && len(w) > 1 {
		return strings.ContainsRune(w[1:], 'i')
	}
	return false
}

// sedFileArgs extracts the file operands: positional words minus the
// script. With -e or -f the script travels with the flag, otherwise the
// first positional word is the script.
func sedFileArgs(words []shell.Word) []string {
	var positional []string
	scriptViaFlag := false
	for i := 0; i < len(words); i++ {
		t := trimQuotes(words[i].Text)
		if strings.HasPrefix(t, "-") {
			if t == "-e" || t == "-f" || t == "--expression" || t == "--file" {
				scriptViaFlag = true
				if i+1 < len(words) {
					i++
				}
			}
			continue
		}
		positional = append(positional, t)
	}
	if !scriptViaFlag && len(positional) > 0 {
		positional = positional[1:]
	}
	return positional
}
