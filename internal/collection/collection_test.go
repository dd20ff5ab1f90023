package collection

import (
	"strings"
	"testing"
)

const sampleCollection = `{
  "info": {
    "name": "Demo API",
    "schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"
  },
  "item": [
    {
      "name": "Users",
      "item": [
        {
          "name": "Get All",
          "request": {
            "method": "GET",
            "url": "https://api.example.com/users",
            "header": [
              {"key": "Accept", "value": "application/json"},
              {"key": "X-Debug", "value": "1", "disabled": true}
            ]
          },
          "event": [
            {"listen": "prerequest", "script": {"exec": ["console.log('before');"]}},
            {"listen": "test", "script": {"exec": ["pm.test(\"is 200\", function () {", "  pm.expect(pm.response.code).to.equal(200);", "});"]}}
          ]
        }
      ]
    }
  ]
}`

func TestParse_ResolvesTree(t *testing.T) {
	col, err := Parse([]byte(sampleCollection))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if col.Info.Name != "Demo API" {
		t.Errorf("Info.Name = %q, want %q", col.Info.Name, "Demo API")
	}
	if !strings.Contains(col.Info.Schema, "v2.1.0") {
		t.Errorf("Info.Schema = %q, want v2.1.0 schema", col.Info.Schema)
	}
	if len(col.Nodes) != 1 {
		t.Fatalf("len(Nodes) = %d, want 1", len(col.Nodes))
	}

	group, ok := col.Nodes[0].(*Group)
	if !ok {
		t.Fatalf("Nodes[0] = %T, want *Group", col.Nodes[0])
	}
	if group.Name != "Users" {
		t.Errorf("group.Name = %q, want %q", group.Name, "Users")
	}
	if len(group.Children) != 1 {
		t.Fatalf("len(group.Children) = %d, want 1", len(group.Children))
	}

	req, ok := group.Children[0].(*Request)
	if !ok {
		t.Fatalf("Children[0] = %T, want *Request", group.Children[0])
	}
	if req.Name != "Get All" {
		t.Errorf("req.Name = %q, want %q", req.Name, "Get All")
	}
	if req.Method != "GET" {
		t.Errorf("req.Method = %q, want %q", req.Method, "GET")
	}
	if req.URL != "https://api.example.com/users" {
		t.Errorf("req.URL = %q, want %q", req.URL, "https://api.example.com/users")
	}
	if len(req.Headers) != 2 {
		t.Fatalf("len(req.Headers) = %d, want 2", len(req.Headers))
	}
	if req.Headers[0].Key != "Accept" || req.Headers[0].Disabled {
		t.Errorf("Headers[0] = %+v, want enabled Accept header", req.Headers[0])
	}
	if !req.Headers[1].Disabled {
		t.Error("Headers[1].Disabled = false, want true")
	}
}

func TestParse_JoinsTestScriptLines(t *testing.T) {
	col, err := Parse([]byte(sampleCollection))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	req := col.Nodes[0].(*Group).Children[0].(*Request)

	want := "pm.test(\"is 200\", function () {\n  pm.expect(pm.response.code).to.equal(200);\n});"
	if req.Script != want {
		t.Errorf("Script = %q, want %q", req.Script, want)
	}
}

func TestParse_URLObject(t *testing.T) {
	doc := `{
	  "info": {"name": "X"},
	  "item": [
	    {"name": "Get", "request": {"method": "GET", "url": {"raw": "https://api.example.com/a", "host": ["api", "example", "com"], "path": ["a"]}}}
	  ]
	}`

	col, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	req := col.Nodes[0].(*Request)
	if req.URL != "https://api.example.com/a" {
		t.Errorf("URL = %q, want raw field of url object", req.URL)
	}
}

func TestParse_RawBody(t *testing.T) {
	doc := `{
	  "info": {"name": "X"},
	  "item": [
	    {"name": "Create", "request": {"method": "POST", "url": "https://api.example.com/users", "body": {"mode": "raw", "raw": "{\"name\":\"Ada\"}"}}}
	  ]
	}`

	col, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	req := col.Nodes[0].(*Request)
	if req.Body == nil {
		t.Fatal("Body = nil, want raw body")
	}
	if req.Body.Mode != "raw" {
		t.Errorf("Body.Mode = %q, want %q", req.Body.Mode, "raw")
	}
	if req.Body.Raw != `{"name":"Ada"}` {
		t.Errorf("Body.Raw = %q, want %q", req.Body.Raw, `{"name":"Ada"}`)
	}
}

func TestParse_NonRawBodyKeepsMode(t *testing.T) {
	doc := `{
	  "info": {"name": "X"},
	  "item": [
	    {"name": "Upload", "request": {"method": "POST", "url": "https://api.example.com/files", "body": {"mode": "formdata", "formdata": [{"key": "f", "value": "v"}]}}}
	  ]
	}`

	col, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	req := col.Nodes[0].(*Request)
	if req.Body == nil || req.Body.Mode != "formdata" {
		t.Errorf("Body = %+v, want mode formdata preserved", req.Body)
	}
}

func TestParse_EmptyFolder(t *testing.T) {
	doc := `{"info": {"name": "X"}, "item": [{"name": "Empty", "item": []}]}`

	col, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	group, ok := col.Nodes[0].(*Group)
	if !ok {
		t.Fatalf("Nodes[0] = %T, want *Group", col.Nodes[0])
	}
	if len(group.Children) != 0 {
		t.Errorf("len(Children) = %d, want 0", len(group.Children))
	}
}

func TestParse_ItemWithoutRequestOrChildren(t *testing.T) {
	doc := `{"info": {"name": "X"}, "item": [{"name": "Odd"}]}`

	col, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// Resolves to an empty group so walks treat it as a no-op.
	group, ok := col.Nodes[0].(*Group)
	if !ok {
		t.Fatalf("Nodes[0] = %T, want *Group", col.Nodes[0])
	}
	if group.Name != "Odd" {
		t.Errorf("group.Name = %q, want %q", group.Name, "Odd")
	}
}

func TestParse_NodeKinds(t *testing.T) {
	doc := `{
	  "info": {"name": "X"},
	  "item": [
	    {"name": "Folder", "item": []},
	    {"name": "Leaf", "request": {"method": "GET", "url": "https://api.example.com"}}
	  ]
	}`

	col, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := col.Nodes[0].Kind(); got != KindGroup {
		t.Errorf("Nodes[0].Kind() = %v, want KindGroup", got)
	}
	if got := col.Nodes[1].Kind(); got != KindRequest {
		t.Errorf("Nodes[1].Kind() = %v, want KindRequest", got)
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Error("Parse() expected error for malformed document")
	}
}

func TestParse_DeeplyNested(t *testing.T) {
	doc := `{
	  "info": {"name": "X"},
	  "item": [
	    {"name": "A", "item": [
	      {"name": "B", "item": [
	        {"name": "Deep", "request": {"method": "DELETE", "url": "https://api.example.com/x"}}
	      ]}
	    ]}
	  ]
	}`

	col, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	a := col.Nodes[0].(*Group)
	b := a.Children[0].(*Group)
	req := b.Children[0].(*Request)
	if req.Name != "Deep" || req.Method != "DELETE" {
		t.Errorf("deep request = %+v, want Deep/DELETE", req)
	}
}
