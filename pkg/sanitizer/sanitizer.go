package sanitizer

import (
	"regexp"
	"strings"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

var (
	reControl        = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`)
	reCRLF           = regexp.MustCompile(`\r\n?`)
	reBlankLines     = regexp.MustCompile(`\n{3,}`)
	reInlineSpaces   = regexp.MustCompile(`[ \t]+`)
	reTrailingSpaces = regexp.MustCompile(`[ \t]+\n`)
)

func stripControl(s string) string {
	return reControl.ReplaceAllString(s, "")
}

func normalizeNewlines(s string) string {
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTrailingSpaces.ReplaceAllString(s, "\n")
	return reBlankLines.ReplaceAllString(s, "\n\n")
}

func collapseInlineSpaces(s string) string {
	return reInlineSpaces.ReplaceAllString(s, " ")
}

// SanitizeNotes cleans free text typed into the booking form. Line breaks are
// kept (at most one blank line in a row), everything else that is not
// printable is dropped.
func SanitizeNotes(input string) string {
	p := Pipeline{
		stripControl,
		normalizeNewlines,
		collapseInlineSpaces,
		strings.TrimSpace,
	}
	return p.Apply(input)
}

// SanitizeDisplayName flattens a provider display name to a single line.
func SanitizeDisplayName(input string) string {
	p := Pipeline{
		stripControl,
		TrimAndNormalize,
	}
	return p.Apply(input)
}
