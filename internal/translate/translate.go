// Package translate rewrites embedded pm.* assertion scripts into
// mocha/chai assertion code.
//
// The source vocabulary is not parsed into a syntax tree. Translation is
// a fixed, ordered table of pattern/replacement pairs applied as one
// pass: each rule rewrites the whole text once, in table order, and the
// output of the table is never re-scanned. A rule's replacement text must
// therefore never match an earlier rule's pattern.
package translate

import (
	"regexp"
	"strings"
)

// Result is the outcome of translating one script. UsedFallback is true
// when no rule fired, which tells the emitter to substitute a default
// assertion for the untranslatable script.
type Result struct {
	Text         string
	UsedFallback bool
}

// rule is one rewrite step. replaceFunc wins over replace when set.
type rule struct {
	name        string
	pattern     *regexp.Regexp
	replace     string
	replaceFunc func(match string) string
}

func (r rule) apply(s string) string {
	if r.replaceFunc != nil {
		return r.pattern.ReplaceAllStringFunc(s, r.replaceFunc)
	}
	return r.pattern.ReplaceAllString(s, r.replace)
}

var headerGet = regexp.MustCompile(`pm\.response\.headers\.get\(\s*["']([^"']*)["']\s*\)`)

// rules is evaluated strictly in slice order. The order is an invariant,
// not a tuning choice: the test-declaration and qualified status rewrites
// anchor on the pm. prefix that the generic expect rewrite strips, so
// they must fire first.
var rules = []rule{
	{
		name:    "test-declaration",
		pattern: regexp.MustCompile(`pm\.test\s*\(`),
		replace: "it(",
	},
	{
		name:    "status-equality",
		pattern: regexp.MustCompile(`pm\.expect\s*\(\s*pm\.response\.code\s*\)\s*\.to\.equal\(\s*(\d+)\s*\)`),
		replace: "expect(response.status).to.equal(${1})",
	},
	{
		name:    "status-have",
		pattern: regexp.MustCompile(`pm\.response\.to\.have\.status\(\s*(\d+)\s*\)`),
		replace: "expect(response.status).to.equal(${1})",
	},
	{
		name:    "status-access",
		pattern: regexp.MustCompile(`pm\.response\.code`),
		replace: "response.status",
	},
	{
		name:    "header-lookup",
		pattern: headerGet,
		replaceFunc: func(m string) string {
			// Header keys are case-sensitive in the source but the target
			// exposes them lower-cased.
			sub := headerGet.FindStringSubmatch(m)
			return "response.headers['" + strings.ToLower(sub[1]) + "']"
		},
	},
	{
		name:    "body-access",
		pattern: regexp.MustCompile(`pm\.response\.json\(\)`),
		replace: "response.body",
	},
	{
		name:    "expect-prefix",
		pattern: regexp.MustCompile(`pm\.expect\s*\(`),
		replace: "expect(",
	},
	{
		name:    "response-time",
		pattern: regexp.MustCompile(`pm\.response\.responseTime`),
		replace: "0 /* responseTime not captured by supertest */",
	},
}

// Translate rewrites a test script into the target assertion vocabulary.
// An empty script yields an empty result with UsedFallback set. A
// non-empty script that no rule touches is returned unchanged, also with
// UsedFallback set.
func Translate(script string) Result {
	if script == "" {
		return Result{Text: "", UsedFallback: true}
	}
	out := script
	for _, r := range rules {
		out = r.apply(out)
	}
	return Result{Text: out, UsedFallback: out == script}
}
