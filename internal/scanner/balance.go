package scanner

import "strings"

// balancedSpan returns the index of the closing brace that matches the
// opening brace at openIdx, skipping nested pairs with a depth counter.
// Component bodies routinely contain nested braces (nested types, default
// value lists, lambda bodies), so searching for the first '}' would truncate
// the body; the counter walk is the only correct bound.
func balancedSpan(content string, openIdx int) (closeIdx int, ok bool) {
	if openIdx < 0 || openIdx >= len(content) || content[openIdx] != '{' {
		return 0, false
	}
	depth := 0
	for i := openIdx; i < len(content); i++ {
		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// bodyAfter finds the first '{' at or after start and returns the inner body
// text between it and its balanced closing brace.
func bodyAfter(content string, start int) (body string, found bool, terminated bool) {
	rel := strings.IndexByte(content[start:], '{')
	if rel < 0 {
		return "", false, false
	}
	open := start + rel
	end, ok := balancedSpan(content, open)
	if !ok {
		return "", true, false
	}
	return content[open+1 : end], true, true
}
