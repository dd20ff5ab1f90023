// Package layout maps collection tree positions to output file paths and
// import depths.
package layout

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/suitegen/suitegen/internal/collection"
)

// FileExt is the extension of every generated test file.
const FileExt = ".test.js"

// Entry assigns one request an output path relative to the output root.
type Entry struct {
	Request *collection.Request
	Parent  string // enclosing group name, "" at the root
	Path    string // slash-separated, relative to the output root
	Depth   int    // directory depth below the output root
}

// ImportPath is the relative module path from this entry's file to the
// shared setup module at the output root.
func (e Entry) ImportPath() string {
	if e.Depth == 0 {
		return "./setup"
	}
	return strings.Repeat("../", e.Depth) + "setup"
}

// Plan is the full output layout for one collection. Entries keep the
// tree's generation order, so a later sibling that collides on a path
// overwrites an earlier one on disk. Dirs lists every directory that must
// exist before its files are written, parents always before children.
type Plan struct {
	Entries  []Entry
	Dirs     []string
	Folders  int
	Warnings []string
}

// Options control path planning.
type Options struct {
	// Flatten drops all directory nesting: groups are still walked for
	// their requests but contribute no path segment.
	Flatten bool
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug converts a node name to its filesystem-safe form: lower-cased,
// with runs of non-alphanumeric characters collapsed to single hyphens
// and no hyphens at either end. A name with nothing left after that
// becomes "unnamed" rather than an empty path segment.
func Slug(name string) string {
	s := nonAlnum.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "unnamed"
	}
	return s
}

// PlanTree walks the tree pre-order and assigns every request an output
// path and import depth. The folder count tallies visited groups that
// have children, whether or not those children ever produce a file.
func PlanTree(nodes []collection.Node, opts Options) *Plan {
	p := &Plan{}
	seenPath := make(map[string]bool)
	seenDir := make(map[string]bool)
	var segs []string

	addDirs := func() {
		for i := range segs {
			dir := strings.Join(segs[:i+1], "/")
			if !seenDir[dir] {
				seenDir[dir] = true
				p.Dirs = append(p.Dirs, dir)
			}
		}
	}

	var walk func(nodes []collection.Node, parent string)
	walk = func(nodes []collection.Node, parent string) {
		for _, n := range nodes {
			switch node := n.(type) {
			case *collection.Group:
				if len(node.Children) > 0 {
					p.Folders++
				}
				if opts.Flatten {
					walk(node.Children, node.Name)
					continue
				}
				segs = append(segs, Slug(node.Name))
				walk(node.Children, node.Name)
				segs = segs[:len(segs)-1]
			case *collection.Request:
				path := Slug(node.Name) + FileExt
				if len(segs) > 0 {
					path = strings.Join(segs, "/") + "/" + path
				}
				if seenPath[path] {
					p.Warnings = append(p.Warnings, fmt.Sprintf("path %s is produced by more than one request; the last one wins", path))
				}
				seenPath[path] = true
				addDirs()
				p.Entries = append(p.Entries, Entry{
					Request: node,
					Parent:  parent,
					Path:    path,
					Depth:   len(segs),
				})
			}
		}
	}
	walk(nodes, "")
	return p
}
