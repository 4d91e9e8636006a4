package structured

import (
	"regexp"
	"strings"
)

// Extractor isolates the JSON object candidate in raw model text.
type Extractor interface {
	Extract(raw string) string
}

// ExtractorFunc adapts a function to Extractor.
type ExtractorFunc func(raw string) string

func (f ExtractorFunc) Extract(raw string) string { return f(raw) }

// fenceDelimiter matches a fence line: a line-opening delimiter with an optional language tag,
// plus its line break. Fences inside JSON string values never open a line, since the newlines
// around them are escaped.
var fenceDelimiter = regexp.MustCompile("(?m)^[ \t]*```[A-Za-z0-9_+.-]*[ \t]*\r?$\n?")

// BestEffortExtractor is a heuristic, not a parser:
//  1. trim surrounding whitespace;
//  2. drop every fence delimiter line, keeping the enclosed text;
//  3. slice from the first '{' to the last '}' when both exist in that order;
//  4. otherwise return the text unchanged and let the parse step fail.
//
// Braces are not balanced. Trailing prose that itself contains "{...}" after the object
// makes the slice run past the object's end, and the parse then fails.
type BestEffortExtractor struct{}

func (BestEffortExtractor) Extract(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.Contains(text, "```") {
		text = strings.TrimSpace(fenceDelimiter.ReplaceAllString(text, ""))
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && start < end {
		return text[start : end+1]
	}
	return text
}
