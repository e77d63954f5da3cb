package spec

import (
	"encoding/json"
	"regexp"
	"strings"

	cerrors "github.com/ideaforge/collaborator/internal/errors"
)

var trailingComma = regexp.MustCompile(`,(\s*[}\]])`)

// Extract recovers a single JSON object from raw provider text. The reply is
// expected to be bare JSON but may be wrapped in prose or a fenced code
// block, or contain trailing commas. Attempts, in order, stopping at the
// first success:
//
//  1. direct parse of the full text
//  2. parse after stripping a fenced block marker (with or without a
//     language tag)
//  3. parse of the first balanced {...} span found by brace matching
//  4. parse after removing trailing commas before a closing } or ]
//
// Returns the JSON text that parsed. If every attempt fails the error is an
// UnparsableResponseError carrying the first 200 characters of raw.
func Extract(raw string) ([]byte, error) {
	candidates := []string{strings.TrimSpace(raw)}

	if unfenced, ok := stripFence(raw); ok {
		candidates = append(candidates, unfenced)
	}
	if span, ok := braceSpan(raw); ok {
		candidates = append(candidates, span)
	}

	for _, c := range candidates {
		if validObject(c) {
			return []byte(c), nil
		}
	}

	// Last resort: repair trailing commas in each candidate.
	for _, c := range candidates {
		repaired := trailingComma.ReplaceAllString(c, "$1")
		if validObject(repaired) {
			return []byte(repaired), nil
		}
	}

	return nil, cerrors.NewUnparsableResponseError(raw)
}

func validObject(s string) bool {
	var obj map[string]json.RawMessage
	return json.Unmarshal([]byte(s), &obj) == nil
}

// stripFence removes a leading ```lang / trailing ``` pair together with any
// prose outside the fence.
func stripFence(raw string) (string, bool) {
	start := strings.Index(raw, "```")
	if start < 0 {
		return "", false
	}
	inner := raw[start+3:]
	// Drop an optional language tag up to the first newline.
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 {
		firstLine := strings.TrimSpace(inner[:nl])
		if firstLine != "" && !strings.ContainsAny(firstLine, "{}") {
			inner = inner[nl+1:]
		}
	}
	end := strings.Index(inner, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(inner[:end]), true
}

// braceSpan locates the first top-level balanced {...} span, tracking string
// literals and escapes so braces inside values do not confuse the count.
func braceSpan(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		ch := raw[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return raw[start : i+1], true
				}
			}
		}
	}
	return "", false
}
