package translate

import (
	"strings"
	"testing"
)

func TestParseSegments_BareArray(t *testing.T) {
	content := `[
		{"arabic": "خطبة الجمعة", "english": "The Friday Sermon"},
		{"arabic": "الحمد لله", "english": "All praise is due to Allah"},
		{"arabic": "أما بعد", "english": "To proceed"}
	]`

	pairs, err := parseSegments(content)
	if err != nil {
		t.Fatalf("parseSegments failed: %v", err)
	}
	if len(pairs) != 3 {
		t.Fatalf("Expected 3 pairs, got %d", len(pairs))
	}
	if pairs[0].English != "The Friday Sermon" {
		t.Errorf("Expected first pair to stay first, got %q", pairs[0].English)
	}
	if pairs[2].Arabic != "أما بعد" {
		t.Errorf("Expected order preserved, got %q at index 2", pairs[2].Arabic)
	}
}

func TestParseSegments_WrappedObject(t *testing.T) {
	content := `{"segments": [{"arabic": "أ", "english": "a"}, {"arabic": "ب", "english": "b"}]}`

	pairs, err := parseSegments(content)
	if err != nil {
		t.Fatalf("parseSegments failed: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("Expected 2 pairs, got %d", len(pairs))
	}
}

func TestParseSegments_ArraySurroundedByProse(t *testing.T) {
	content := "Here is the translation:\n[{\"arabic\": \"أ\", \"english\": \"a\"}]\nLet me know if you need anything else."

	pairs, err := parseSegments(content)
	if err != nil {
		t.Fatalf("parseSegments failed: %v", err)
	}
	if len(pairs) != 1 {
		t.Fatalf("Expected 1 pair, got %d", len(pairs))
	}
}

func TestParseSegments_PreservesEmbeddedLineBreaks(t *testing.T) {
	content := `[{"arabic": "سطر أول\nسطر ثان", "english": "first line\nsecond line"}]`

	pairs, err := parseSegments(content)
	if err != nil {
		t.Fatalf("parseSegments failed: %v", err)
	}
	if !strings.Contains(pairs[0].English, "\n") {
		t.Error("Expected embedded line break to survive parsing")
	}
}

func TestParseSegments_Malformed(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"not JSON", "sorry, I cannot translate that"},
		{"empty array", "[]"},
		{"empty string", ""},
		{"missing english", `[{"arabic": "أ"}]`},
		{"missing arabic", `[{"english": "a"}]`},
		{"whitespace field", `[{"arabic": "أ", "english": "  "}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseSegments(tc.content); err == nil {
				t.Errorf("Expected error for %s", tc.name)
			}
		})
	}
}
