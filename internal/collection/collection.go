// Package collection models a Postman collection document as a resolved
// tree of groups and requests.
//
// The source format conflates "folder" and "request" by field presence on
// a single item shape. Parse resolves that once, so every downstream
// component matches on a closed set of node kinds instead of probing
// fields.
package collection

import (
	"encoding/json"
	"strings"
)

// NodeKind discriminates the two node kinds in the collection tree.
type NodeKind int

const (
	KindGroup NodeKind = iota
	KindRequest
)

// Node is a resolved tree node: either a *Group or a *Request.
type Node interface {
	Kind() NodeKind
}

// Group is a folder of child nodes. Child order is preserved from the
// source document; base-URL extraction and file generation both walk in
// this order.
type Group struct {
	Name     string
	Children []Node
}

func (g *Group) Kind() NodeKind { return KindGroup }

// Request is a leaf node describing one HTTP request.
type Request struct {
	Name    string
	Method  string
	URL     string
	Body    *RawBody
	Headers []Header
	Script  string // test script source, "" when absent
}

func (r *Request) Kind() NodeKind { return KindRequest }

// Header is one request header entry.
type Header struct {
	Key      string
	Value    string
	Disabled bool
}

// RawBody is a request body. Only mode "raw" is interpreted by the
// emitter; other modes are carried through but treated as "no body".
type RawBody struct {
	Mode string
	Raw  string
}

// Info is the collection metadata.
type Info struct {
	Name   string
	Schema string
}

// Collection is the resolved model of one input document.
type Collection struct {
	Info  Info
	Nodes []Node
}

// Wire shapes of the v2.1 document. Slices deliberately stay nil when the
// field is absent so presence checks work.

type rawCollection struct {
	Info *rawInfo  `json:"info"`
	Item []rawItem `json:"item"`
}

type rawInfo struct {
	Name   string `json:"name"`
	Schema string `json:"schema"`
}

type rawItem struct {
	Name    string      `json:"name"`
	Item    []rawItem   `json:"item"`
	Request *rawRequest `json:"request"`
	Event   []rawEvent  `json:"event"`
}

type rawRequest struct {
	Method string      `json:"method"`
	URL    rawURL      `json:"url"`
	Body   *rawBody    `json:"body"`
	Header []rawHeader `json:"header"`
}

type rawHeader struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled"`
}

type rawBody struct {
	Mode string `json:"mode"`
	Raw  string `json:"raw"`
}

type rawEvent struct {
	Listen string    `json:"listen"`
	Script rawScript `json:"script"`
}

type rawScript struct {
	Exec []string `json:"exec"`
}

// rawURL accepts both encodings of a request URL: a plain string or an
// object carrying a raw field.
type rawURL struct {
	Raw string
}

func (u *rawURL) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &u.Raw)
	}
	var obj struct {
		Raw string `json:"raw"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	u.Raw = obj.Raw
	return nil
}

// Parse resolves a collection document into the typed tree. Callers are
// expected to run Validate first; Parse itself only fails on malformed
// JSON.
func Parse(data []byte) (*Collection, error) {
	var raw rawCollection
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	col := &Collection{}
	if raw.Info != nil {
		col.Info = Info{Name: raw.Info.Name, Schema: raw.Info.Schema}
	}
	col.Nodes = resolveItems(raw.Item)
	return col, nil
}

func resolveItems(items []rawItem) []Node {
	nodes := make([]Node, 0, len(items))
	for _, it := range items {
		nodes = append(nodes, resolveItem(it))
	}
	return nodes
}

// resolveItem decides folder versus request by field presence: a nested
// item array makes a group, a request object makes a request. An item
// with neither becomes an empty group, which every walk treats as a
// no-op.
func resolveItem(it rawItem) Node {
	if it.Item != nil {
		return &Group{Name: it.Name, Children: resolveItems(it.Item)}
	}
	if it.Request != nil {
		req := &Request{
			Name:   it.Name,
			Method: it.Request.Method,
			URL:    it.Request.URL.Raw,
			Script: testScript(it.Event),
		}
		if it.Request.Body != nil {
			req.Body = &RawBody{Mode: it.Request.Body.Mode, Raw: it.Request.Body.Raw}
		}
		for _, h := range it.Request.Header {
			req.Headers = append(req.Headers, Header{Key: h.Key, Value: h.Value, Disabled: h.Disabled})
		}
		return req
	}
	return &Group{Name: it.Name}
}

// testScript joins the exec lines of the first event listening on "test".
func testScript(events []rawEvent) string {
	for _, ev := range events {
		if ev.Listen == "test" {
			return strings.Join(ev.Script.Exec, "\n")
		}
	}
	return ""
}
