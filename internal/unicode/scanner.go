// Package unicode detects characters that can disguise what a command line
// actually does: zero-width characters, bidirectional overrides, tag
// characters and raw control bytes. A command that renders one way and
// executes another must never be auto-approved.
package unicode

import (
	"fmt"
	"unicode/utf8"
)

// Threat is one suspicious character found in the input.
type Threat struct {
	Category    string // "zero-width", "bidi-override", "tag-char", "control-char", "invalid-utf8"
	Codepoint   string // e.g. "U+200B"
	Position    int    // byte offset in the input
	Description string
}

// Scan inspects command text for smuggling indicators. A nil result means
// the text is clean.
func Scan(input string) []Threat {
	var threats []Threat
	for i := 0; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		if r == utf8.RuneError && size == 1 {
			threats = append(threats, Threat{
				Category:    "invalid-utf8",
				Codepoint:   fmt.Sprintf("0x%02X", input[i]),
				Position:    i,
				Description: "invalid UTF-8 byte sequence",
			})
			i++
			continue
		}
		if t, found := classifyRune(r, i); found {
			threats = append(threats, t)
		}
		i += size
	}
	return threats
}

func classifyRune(r rune, pos int) (Threat, bool) {
	cp := fmt.Sprintf("U+%04X", r)
	switch {
	case isZeroWidth(r):
		return Threat{
			Category:    "zero-width",
			Codepoint:   cp,
			Position:    pos,
			Description: "zero-width character can hide content from display",
		}, true
	case isBidiControl(r):
		return Threat{
			Category:    "bidi-override",
			Codepoint:   cp,
			Position:    pos,
			Description: "bidirectional override can reorder displayed text",
		}, true
	case r >= 0xE0000 && r <= 0xE007F:
		return Threat{
			Category:    "tag-char",
			Codepoint:   cp,
			Position:    pos,
			Description: "tag character is invisible in most renderers",
		}, true
	case isDisallowedControl(r):
		return Threat{
			Category:    "control-char",
			Codepoint:   cp,
			Position:    pos,
			Description: "raw control character in command text",
		}, true
	}
	return Threat{}, false
}

func isZeroWidth(r rune) bool {
	switch r {
	case 0x200B, 0x200C, 0x200D, 0x2060, 0xFEFF, 0x00AD:
		return true
	}
	return false
}

func isBidiControl(r rune) bool {
	return (r >= 0x202A && r <= 0x202E) || (r >= 0x2066 && r <= 0x2069)
}

func isDisallowedControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return r < 0x20 || r == 0x7F || (r >= 0x80 && r <= 0x9F)
}
