package compiler

import (
	"net/url"

	"github.com/suitegen/suitegen/internal/collection"
)

// PlaceholderBaseURL stands in when no request URL in the collection
// parses as absolute.
const PlaceholderBaseURL = "https://api.example.com"

// BaseURL walks the tree depth-first and returns scheme://host of the
// first request URL that parses as absolute. The walk order matches
// file generation order, so the choice is stable for a given document.
// Template URLs such as {{baseUrl}}/users have no host and are skipped.
func BaseURL(nodes []collection.Node) (string, bool) {
	for _, n := range nodes {
		switch node := n.(type) {
		case *collection.Request:
			if u, err := url.Parse(node.URL); err == nil && u.Scheme != "" && u.Host != "" {
				return u.Scheme + "://" + u.Host, true
			}
		case *collection.Group:
			if base, ok := BaseURL(node.Children); ok {
				return base, true
			}
		}
	}
	return "", false
}
