package completion

import (
	"strings"
	"unicode"
)

// Substitute replaces the call of the candidate's function in sourceLine with the candidate.
//
// The call must start the line or follow whitespace, '(' or ','. Its extent runs to the
// matching ')' or, for an unfinished call, to the end of the line. When the line holds no
// such call the candidate is returned unchanged.
func Substitute(sourceLine, candidate string) string {
	name := functionName(candidate)
	if name == "" {
		return candidate
	}

	start, end, ok := findCall(sourceLine, name)
	if !ok {
		return candidate
	}

	replacement := candidate
	if cStart, cEnd, ok := findCall(candidate, name); ok {
		replacement = candidate[cStart:cEnd]
	}
	return sourceLine[:start] + replacement + sourceLine[end:]
}

// functionName returns the leading word of s up to whitespace or '('.
func functionName(s string) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if i := strings.IndexFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == '(' }); i >= 0 {
		return s[:i]
	}
	return s
}

// findCall locates the first call of name in s and returns its byte span.
func findCall(s, name string) (start, end int, ok bool) {
	for offset := 0; offset < len(s); {
		i := strings.Index(s[offset:], name)
		if i < 0 {
			return 0, 0, false
		}
		start = offset + i
		after := start + len(name)
		offset = start + 1

		if start > 0 && !isCallPrefix(s[start-1]) {
			continue
		}
		if after < len(s) && isIdentByte(s[after]) {
			continue
		}
		return start, callEnd(s, after), true
	}
	return 0, 0, false
}

// callEnd returns the end of the argument list starting at or after pos.
func callEnd(s string, pos int) int {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t') {
		pos++
	}
	if pos >= len(s) || s[pos] != '(' {
		return len(s)
	}

	depth := 0
	for i := pos; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(s)
}

func isCallPrefix(b byte) bool {
	return b == ' ' || b == '\t' || b == '(' || b == ','
}

func isIdentByte(b byte) bool {
	return b == '_' || b >= '0' && b <= '9' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}
