package risk

import (
	"path"
	"strings"
)

// PathKind names the rule that decided a path's risk. Handlers use it to
// soften verdicts for read-only commands (a find under /etc is audited,
// not blocked).
type PathKind int

const (
	KindNone PathKind = iota
	KindHome
	KindDotfile
	KindSystem
	KindAbsolute
	KindTraversal
	KindHidden
	KindSensitiveExt
)

// PathRisk is the result of analyzing one path-like argument.
type PathRisk struct {
	Status Status
	Kind   PathKind
	Reason string
}

// systemRoots are reserved filesystem roots. Any absolute path under one of
// these is a system-path violation.
var systemRoots = []string{
	"/etc", "/sys", "/proc", "/dev", "/boot",
	"/bin", "/sbin", "/lib", "/lib64", "/var/lib",
}

// sensitiveExts are file extensions that commonly hold credentials or keys.
var sensitiveExts = map[string]bool{
	".pem": true, ".key": true, ".p12": true, ".pfx": true,
	".crt": true, ".der": true, ".keystore": true, ".kdbx": true,
	".env": true, ".netrc": true, ".npmrc": true, ".htpasswd": true,
	".secret": true, ".token": true, ".credentials": true,
}

// AnalyzePath classifies a single path-like string by location and form.
// The analysis is purely lexical: "$HOME/.env" is recognized by its prefix,
// never by resolving $HOME. Identity checks (home directory, system roots)
// dominate form checks (hidden file, extension), so a hidden file under
// /etc is a system-path violation rather than a hidden-file nuisance.
func AnalyzePath(candidate string) PathRisk {
	p := strings.TrimSpace(trimQuotes(candidate))
	if p == "" {
		return PathRisk{Status: Green, Kind: KindNone}
	}

	if rest, ok := homeRemainder(p); ok {
		if rest == "" {
			return PathRisk{
				Status: Red,
				Kind:   KindHome,
				Reason: "targets the home directory itself: " + p,
			}
		}
		if hasDotSegment(rest) {
			return PathRisk{
				Status: Red,
				Kind:   KindDotfile,
				Reason: "targets a dotfile or sensitive directory under home: " + p,
			}
		}
		// A benign suffix under home still goes through the location and
		// form checks below.
	}

	if strings.HasPrefix(p, "/") {
		for _, root := range systemRoots {
			if p == root || strings.HasPrefix(p, root+"/") {
				return PathRisk{
					Status: Red,
					Kind:   KindSystem,
					Reason: "targets a reserved system path: " + p,
				}
			}
		}
		return PathRisk{
			Status: Yellow,
			Kind:   KindAbsolute,
			Reason: "unclassified absolute path: " + p,
		}
	}

	if hasTraversal(p) {
		return PathRisk{
			Status: Red,
			Kind:   KindTraversal,
			Reason: "path escapes upward via ..: " + p,
		}
	}

	base := path.Base(p)
	if strings.HasPrefix(base, ".") && base != "." && base != ".." {
		return PathRisk{
			Status: Yellow,
			Kind:   KindHidden,
			Reason: "hidden file: " + p,
		}
	}
	if sensitiveExts[strings.ToLower(path.Ext(base))] {
		return PathRisk{
			Status: Yellow,
			Kind:   KindSensitiveExt,
			Reason: "credential-like file extension: " + p,
		}
	}

	return PathRisk{Status: Green, Kind: KindNone}
}

// homeRemainder reports whether p denotes the home directory or a lexical
// alias for it (~, $HOME, /home/<user>, /Users/<user>, /root), and if so
// returns whatever follows the home prefix.
func homeRemainder(p string) (string, bool) {
	switch p {
	case "~", "$HOME", "${HOME}", "/root":
		return "", true
	}
	for _, prefix := range []string{"~/", "$HOME/", "${HOME}/", "/root/"} {
		if strings.HasPrefix(p, prefix) {
			return p[len(prefix):], true
		}
	}
	for _, root := range []string{"/home/", "/Users/"} {
		if strings.HasPrefix(p, root) {
			rest := p[len(root):]
			if rest == "" {
				return "", false // /home/ itself is a system location
			}
			if i := strings.IndexByte(rest, '/'); i >= 0 {
				return strings.TrimPrefix(rest[i+1:], "/"), true
			}
			return "", true // bare /home/<user>
		}
	}
	// ~user and ~user/suffix forms.
	if strings.HasPrefix(p, "~") {
		if i := strings.IndexByte(p, '/'); i >= 0 {
			return p[i+1:], true
		}
		return "", true
	}
	return "", false
}

func hasDotSegment(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if len(seg) > 1 && strings.HasPrefix(seg, ".") && seg != ".." {
			return true
		}
	}
	return false
}

func hasTraversal(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

// trimQuotes strips one level of surrounding quotes from an argument as
// written ('file.txt' or "file.txt").
func trimQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
