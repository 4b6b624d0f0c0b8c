package sanitizer

import "testing"

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "trim spaces", input: "  Jane Doe  ", want: "Jane Doe"},
		{name: "multiple spaces between words", input: "Jane    Doe", want: "Jane Doe"},
		{name: "tabs and newlines", input: "Jane\t\nDoe", want: "Jane Doe"},
		{name: "empty string", input: "", want: ""},
		{name: "only whitespace", input: "   \t\n  ", want: ""},
		{name: "preserve special characters", input: " Café & Spa™ ", want: "Café & Spa™"},
		{name: "hebrew characters", input: " יוסי כהן ", want: "יוסי כהן"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimAndNormalize(tt.input); got != tt.want {
				t.Errorf("TrimAndNormalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		max   int
		want  string
	}{
		{name: "shorter than max", input: "abc", max: 5, want: "abc"},
		{name: "exact length", input: "abcde", max: 5, want: "abcde"},
		{name: "cut", input: "abcdef", max: 3, want: "abc"},
		{name: "multibyte runes", input: "ééééé", max: 2, want: "éé"},
		{name: "zero max", input: "abc", max: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.max); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.want)
			}
		})
	}
}

func TestSanitizeNotes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "trims", input: "  bring a towel  ", want: "bring a towel"},
		{name: "keeps line breaks", input: "line one\nline two", want: "line one\nline two"},
		{name: "windows line endings", input: "a\r\nb", want: "a\nb"},
		{name: "collapses blank lines", input: "a\n\n\n\nb", want: "a\n\nb"},
		{name: "collapses inline spaces", input: "knee   \t injury", want: "knee injury"},
		{name: "drops control characters", input: "hi\x00there\x07", want: "hithere"},
		{name: "trailing spaces before newline", input: "a   \nb", want: "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeNotes(tt.input); got != tt.want {
				t.Errorf("SanitizeNotes(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeDisplayName(t *testing.T) {
	if got := SanitizeDisplayName("  Jane\n\x01Doe "); got != "Jane Doe" {
		t.Errorf("SanitizeDisplayName() = %q, want %q", got, "Jane Doe")
	}
}
