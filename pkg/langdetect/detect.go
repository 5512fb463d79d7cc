// Package langdetect picks the parser flavor for source files and Markdown
// code fences. It uses go-enry for extensions, interpreter lines and fence
// aliases, and falls back to syntax patterns for bare snippets.
package langdetect

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Parser flavors.
const (
	TypeScript = "typescript"
	JavaScript = "javascript"
)

// fenceTags maps the common fence info strings that go-enry's alias table
// does not resolve to one of the two flavors.
//
//nolint:gochecknoglobals // static lookup table
var fenceTags = map[string]string{
	"ts":         TypeScript,
	"typescript": TypeScript,
	"tsx":        TypeScript,
	"mts":        TypeScript,
	"cts":        TypeScript,
	"js":         JavaScript,
	"javascript": JavaScript,
	"jsx":        JavaScript,
	"mjs":        JavaScript,
	"cjs":        JavaScript,
	"node":       JavaScript,
}

// Flavor returns the flavor for a file, or "" when the file holds neither
// TypeScript nor JavaScript. path may be empty for snippets.
func Flavor(path string, content []byte) string {
	if path != "" {
		for _, lang := range enry.GetLanguagesByExtension(path, content, nil) {
			if flavor := fromLanguage(lang); flavor != "" && !looksLikeXML(content) {
				return flavor
			}
		}
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return fromLanguage(lang)
	}

	return detectByPattern(content)
}

// FenceFlavor returns the flavor named by a Markdown fence info string, or
// "" when the fence holds something else. Only the first word counts.
func FenceFlavor(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return ""
	}

	tag := strings.ToLower(strings.Trim(fields[0], "{}."))
	if flavor, ok := fenceTags[tag]; ok {
		return flavor
	}

	if lang, ok := enry.GetLanguageByAlias(tag); ok {
		return fromLanguage(lang)
	}

	return ""
}

func fromLanguage(lang string) string {
	switch lang {
	case "TypeScript", "TSX":
		return TypeScript
	case "JavaScript", "JSX":
		return JavaScript
	default:
		return ""
	}
}

// looksLikeXML catches Qt translation files, which share the .ts extension.
func looksLikeXML(content []byte) bool {
	trimmed := bytes.TrimSpace(content)

	return bytes.HasPrefix(trimmed, []byte("<?xml")) || bytes.HasPrefix(trimmed, []byte("<!DOCTYPE TS"))
}

//nolint:gochecknoglobals // compiled once
var (
	typeSyntax = []*regexp.Regexp{
		regexp.MustCompile(`(?m)^\s*(export\s+)?(declare\s+)?(interface|enum|namespace|abstract\s+class)\s+\w`),
		regexp.MustCompile(`(?m)^\s*(export\s+)?type\s+\w+(<[^>]*>)?\s*=`),
		regexp.MustCompile(`\b(let|const|var)\s+\w+\s*:\s*\w`),
		regexp.MustCompile(`\)\s*:\s*(void|string|number|boolean|any|unknown|never|Promise<)`),
		regexp.MustCompile(`\w\s+as\s+(const|string|number|any|unknown|[A-Z]\w*)\b`),
		regexp.MustCompile(`\b(public|private|protected|readonly)\s+\w+\s*[:;=(]`),
	}

	scriptSyntax = []*regexp.Regexp{
		regexp.MustCompile(`\b(const|let|var)\s+[\w{\[]`),
		regexp.MustCompile(`\bfunction\s*\*?\s*\w*\s*\(`),
		regexp.MustCompile(`=>`),
		regexp.MustCompile(`\b(require|console\.\w+)\s*\(`),
		regexp.MustCompile(`(?m)^\s*(import|export)\s+[\w{*]`),
		regexp.MustCompile(`(?m)^\s*class\s+\w+`),
	}
)

// detectByPattern recognizes snippets by constructs that are common in
// TypeScript or JavaScript and rare elsewhere.
func detectByPattern(content []byte) string {
	for _, re := range typeSyntax {
		if re.Match(content) {
			return TypeScript
		}
	}

	for _, re := range scriptSyntax {
		if re.Match(content) {
			return JavaScript
		}
	}

	return ""
}
