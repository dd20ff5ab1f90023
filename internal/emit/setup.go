package emit

import (
	"fmt"
	"strings"
)

// Setup renders the shared setup module every generated test file
// imports. The env binding is always present: a literal object when an
// environment was provided, the null literal when not.
func Setup(baseURL string, env map[string]string) string {
	var b strings.Builder
	b.WriteString("// Generated by suitegen. Do not edit by hand.\n")
	b.WriteString("const supertest = require('supertest');\n\n")
	fmt.Fprintf(&b, "const baseURL = '%s';\n", EscapeJS(baseURL))
	b.WriteString("const request = supertest(baseURL);\n")
	b.WriteString("const env = " + envLiteral(env) + ";\n\n")
	b.WriteString("module.exports = { request, baseURL, env };\n")
	return b.String()
}

// envLiteral renders the environment map as an object literal with
// stable key order, or null when the environment is absent.
func envLiteral(env map[string]string) string {
	if env == nil {
		return "null"
	}
	data, err := marshalNoEscapeIndent(env, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}
