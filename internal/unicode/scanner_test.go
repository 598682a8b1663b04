package unicode

import "testing"

func TestScan_CleanInput(t *testing.T) {
	for _, input := range []string{
		"ls -la /tmp",
		"echo 'héllo wörld'",
		"grep -rn \"TODO\" src\n",
		"cat\tfile.txt",
	} {
		if threats := Scan(input); len(threats) != 0 {
			t.Errorf("input %q: expected no threats, got %+v", input, threats)
		}
	}
}

func TestScan_Detections(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		category string
	}{
		{"zero-width space", "echo hi​dden", "zero-width"},
		{"zero-width joiner", "rm‍ -rf", "zero-width"},
		{"bom mid-string", "ls \ufeff/tmp", "zero-width"},
		{"soft hyphen", "pas­swd", "zero-width"},
		{"rtl override", "cat file‮txt.sh", "bidi-override"},
		{"isolate", "echo ⁦hidden⁩", "bidi-override"},
		{"tag character", "ls\U000E0041", "tag-char"},
		{"escape byte", "echo \x1b[31mred", "control-char"},
		{"delete char", "ls\x7f", "control-char"},
		{"invalid utf8", "echo \xff\xfe", "invalid-utf8"},
	}
	for _, tt := range tests {
		threats := Scan(tt.input)
		if len(threats) == 0 {
			t.Errorf("%s: expected a threat, got none", tt.name)
			continue
		}
		if threats[0].Category != tt.category {
			t.Errorf("%s: expected category %q, got %q", tt.name, tt.category, threats[0].Category)
		}
		if threats[0].Codepoint == "" {
			t.Errorf("%s: threat should name the codepoint", tt.name)
		}
	}
}

func TestScan_ReportsEveryOccurrence(t *testing.T) {
	threats := Scan("a​b​c")
	if len(threats) != 2 {
		t.Fatalf("expected 2 threats, got %d", len(threats))
	}
	if threats[0].Position != 1 {
		t.Errorf("first threat position: expected 1, got %d", threats[0].Position)
	}
	if threats[1].Position <= threats[0].Position {
		t.Errorf("positions should advance: %d then %d", threats[0].Position, threats[1].Position)
	}
}
