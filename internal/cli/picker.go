package cli

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/suitegen/suitegen/internal/errors"
)

const (
	// Directories deeper than this are not scanned.
	maxPickerDepth = 3
	// The picker never offers more than this many files.
	maxPickerResults = 25
	// Files larger than this are not probed.
	maxProbeSize = 16 << 20
)

// discoverCollections walks root for JSON files that carry both an info
// and an item member. Hidden directories, node_modules and .git are
// skipped.
func discoverCollections(root string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path == root {
				return nil
			}
			if name == "node_modules" || name == ".git" || strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			rel, err := filepath.Rel(root, path)
			if err != nil || strings.Count(filepath.ToSlash(rel), "/") >= maxPickerDepth {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(name), ".json") {
			return nil
		}
		if info, err := d.Info(); err != nil || info.Size() > maxProbeSize {
			return nil
		}
		if looksLikeCollection(path) {
			found = append(found, path)
			if len(found) >= maxPickerResults {
				return fs.SkipAll
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

// looksLikeCollection reports whether path parses as JSON with both the
// members every collection document has.
func looksLikeCollection(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var probe struct {
		Info *json.RawMessage `json:"info"`
		Item *json.RawMessage `json:"item"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return false
	}
	return probe.Info != nil && probe.Item != nil
}

func pickCollection(paths []string) (string, error) {
	if len(paths) == 1 {
		out.Info("using %s", paths[0])
		return paths[0], nil
	}
	choice := paths[0]
	err := huh.NewSelect[string]().
		Title("Pick a collection").
		Options(huh.NewOptions(paths...)...).
		Value(&choice).
		Run()
	if err != nil {
		return "", errors.Wrap(err, "collection selection aborted")
	}
	return choice, nil
}
