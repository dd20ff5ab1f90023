package emit

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/suitegen/suitegen/internal/collection"
	"github.com/suitegen/suitegen/internal/layout"
	"github.com/suitegen/suitegen/internal/translate"
)

// DefaultTimeBudgetMs bounds the enhanced-mode response time assertion.
const DefaultTimeBudgetMs = 5000

// Options select the emission mode. Mode changes the emitted call shape
// and import line only, never translation or layout.
type Options struct {
	// Enhanced wraps the request in timing capture and adds generic
	// success and time-budget assertions.
	Enhanced bool
	// TimeBudgetMs overrides the enhanced-mode response time budget.
	TimeBudgetMs int
}

func (o Options) budget() int {
	if o.TimeBudgetMs > 0 {
		return o.TimeBudgetMs
	}
	return DefaultTimeBudgetMs
}

// TestFile renders the generated test file for one request. The first
// line is always the setup require at the entry's relative depth.
func TestFile(req *collection.Request, ent layout.Entry, tr translate.Result, opts Options) string {
	var b strings.Builder
	if opts.Enhanced {
		fmt.Fprintf(&b, "const { request, baseURL } = require('%s');\n", ent.ImportPath())
	} else {
		fmt.Fprintf(&b, "const { request } = require('%s');\n", ent.ImportPath())
	}
	b.WriteString("const { expect } = require('chai');\n")
	b.WriteString("// Generated by suitegen. Do not edit by hand.\n\n")

	fmt.Fprintf(&b, "describe('%s', function () {\n", EscapeJS(SuiteName(ent.Parent, req.Name)))
	if opts.Enhanced {
		writeEnhancedBody(&b, req, tr, opts)
	} else {
		writePlainBody(&b, req, tr)
	}
	b.WriteString("});\n")
	return b.String()
}

// SuiteName joins the enclosing group name and request name the way the
// generated suite titles read: "Users - Get All".
func SuiteName(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + " - " + name
}

func writePlainBody(b *strings.Builder, req *collection.Request, tr translate.Result) {
	b.WriteString("  let response;\n\n")
	b.WriteString("  before(async function () {\n")
	b.WriteString("    response = await request\n")
	writeCallChain(b, req, "      ")
	b.WriteString("  });\n\n")
	writeAssertions(b, tr, false)
}

func writeEnhancedBody(b *strings.Builder, req *collection.Request, tr translate.Result, opts Options) {
	budget := opts.budget()
	fmt.Fprintf(b, "  this.timeout(%d);\n\n", 2*budget)
	b.WriteString("  let response;\n")
	b.WriteString("  let elapsedMs;\n\n")
	b.WriteString("  before(async function () {\n")
	b.WriteString("    const started = Date.now();\n")
	b.WriteString("    try {\n")
	b.WriteString("      response = await request\n")
	writeCallChain(b, req, "        ")
	b.WriteString("    } catch (err) {\n")
	fmt.Fprintf(b, "      console.error('request failed:', baseURL + '%s', err.message);\n", EscapeJS(requestPath(req.URL)))
	b.WriteString("      throw err;\n")
	b.WriteString("    } finally {\n")
	b.WriteString("      elapsedMs = Date.now() - started;\n")
	b.WriteString("    }\n")
	b.WriteString("  });\n\n")
	b.WriteString("  it('responds without a server error', function () {\n")
	b.WriteString("    expect(response.status).to.be.below(500);\n")
	b.WriteString("  });\n\n")
	b.WriteString("  it('responds within the time budget', function () {\n")
	fmt.Fprintf(b, "    expect(elapsedMs).to.be.below(%d);\n", budget)
	b.WriteString("  });\n\n")
	writeAssertions(b, tr, true)
}

// writeCallChain renders the verb call plus one .set per enabled header
// and a .send when a body was extracted, each on its own line.
func writeCallChain(b *strings.Builder, req *collection.Request, indent string) {
	lines := []string{indent + verbCall(req)}
	for _, h := range req.Headers {
		if h.Disabled {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s.set('%s', '%s')", indent, EscapeJS(h.Key), EscapeJS(h.Value)))
	}
	if body, ok := renderBody(req.Body, indent); ok {
		lines = append(lines, indent+".send("+body+")")
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString(";\n")
}

func verbCall(req *collection.Request) string {
	method := strings.ToLower(req.Method)
	if method == "" {
		method = "get"
	}
	return fmt.Sprintf(".%s('%s')", method, EscapeJS(requestPath(req.URL)))
}

var pathFallback = regexp.MustCompile(`/[^/\s]\S*`)

// requestPath reduces a request URL to the path the bound client takes:
// host stripped, query kept. URLs that do not parse as absolute, such as
// ones built from {{variable}} templates, fall back to the first
// /-prefixed run, then to "/".
func requestPath(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		p := u.EscapedPath()
		if p == "" {
			p = "/"
		}
		if u.RawQuery != "" {
			p += "?" + u.RawQuery
		}
		return p
	}
	if m := pathFallback.FindString(raw); m != "" {
		return m
	}
	return "/"
}

// renderBody renders a raw-mode body for a .send() argument. Raw text
// that parses as JSON becomes a pretty-printed literal; anything else
// becomes an escaped string literal. Other body modes are not
// interpreted here.
func renderBody(body *collection.RawBody, indent string) (string, bool) {
	if body == nil || body.Mode != "raw" || body.Raw == "" {
		return "", false
	}
	var v interface{}
	if err := json.Unmarshal([]byte(body.Raw), &v); err == nil {
		if data, merr := marshalNoEscapeIndent(v, indent, "  "); merr == nil {
			return string(data), true
		}
	}
	return "'" + EscapeJS(body.Raw) + "'", true
}

// writeAssertions inserts the translated script, or the default success
// assertion when translation recognized nothing.
func writeAssertions(b *strings.Builder, tr translate.Result, enhanced bool) {
	if tr.UsedFallback {
		b.WriteString("  it('responds successfully', function () {\n")
		if enhanced {
			b.WriteString("    expect(response.status).to.equal(200);\n")
		} else {
			b.WriteString("    expect([200, 201, 204]).to.include(response.status);\n")
		}
		b.WriteString("  });\n")
		return
	}
	b.WriteString(indentLines(tr.Text, "  "))
	b.WriteString("\n")
}
