package completion

import (
	"bufio"
	"bytes"
	"strings"

	"github.com/grafana/regexp"
)

var (
	// completionLine matches "COMPLETION: name : [#ret#]name(<#a#>, <#b#>)".
	// RE2 has no backreferences, so the equality of both names is checked in code.
	completionLine = regexp.MustCompile(`^COMPLETION: ([^ ]+) : \[#([^#]+)#\]([^ (]+)\((<#[^#]+#>(?:, <#[^#]+#>)*)\)`)
	placeholder    = regexp.MustCompile(`<#([^#]+)#>`)
)

// Filter turns raw clang completion output into editor candidates of the form
// "name(`<a>`, `<b>`)". Lines that are not function completions with typed
// placeholders are dropped.
func Filter(output []byte) []string {
	var candidates []string
	scanner := bufio.NewScanner(bytes.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if c, ok := formatLine(scanner.Text()); ok {
			candidates = append(candidates, c)
		}
	}
	return candidates
}

// First returns the first candidate in output.
func First(output []byte) (string, bool) {
	candidates := Filter(output)
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[0], true
}

func formatLine(line string) (string, bool) {
	m := completionLine.FindStringSubmatch(line)
	if m == nil || m[1] != m[3] {
		return "", false
	}

	params := placeholder.FindAllStringSubmatch(m[4], -1)
	rendered := make([]string, 0, len(params))
	for _, p := range params {
		rendered = append(rendered, "`<"+p[1]+">`")
	}
	return m[1] + "(" + strings.Join(rendered, ", ") + ")", true
}
