// Package emit renders the generated JavaScript: the shared setup module
// and one mocha test file per request.
package emit

import "strings"

// escapeSteps run strictly in order. Backslashes must double first:
// every later step introduces backslashes that a re-run of the first
// step would corrupt.
var escapeSteps = []struct{ old, new string }{
	{`\`, `\\`},
	{`'`, `\'`},
	{`"`, `\"`},
	{"\n", `\n`},
	{"\r", `\r`},
	{"\t", `\t`},
	{"`", "\\`"},
	{"${", `\${`},
}

// EscapeJS makes a string safe to interpolate into a generated string
// literal. Every emission path goes through this one function, names,
// paths, header keys and values alike, so the escape order holds
// uniformly.
func EscapeJS(s string) string {
	for _, step := range escapeSteps {
		s = strings.ReplaceAll(s, step.old, step.new)
	}
	return s
}

// indentLines prefixes every non-empty line of s.
func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
