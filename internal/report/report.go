// Package report renders a machine-readable summary of one compile run.
package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/suitegen/suitegen/internal/compiler"
	"github.com/suitegen/suitegen/internal/fsio"
	"github.com/suitegen/suitegen/internal/output"
)

// Summary captures what one run produced. Environment values are
// deliberately reduced to a count; they may hold credentials and the
// report file is meant to be shareable.
type Summary struct {
	Collection string   `yaml:"collection" json:"collection"`
	BaseURL    string   `yaml:"base_url" json:"base_url"`
	OutputDir  string   `yaml:"output_dir" json:"output_dir"`
	Files      int      `yaml:"files" json:"files"`
	Folders    int      `yaml:"folders" json:"folders"`
	Fallbacks  int      `yaml:"fallbacks" json:"fallbacks"`
	EnvValues  int      `yaml:"env_values" json:"env_values"`
	Warnings   []string `yaml:"warnings,omitempty" json:"warnings,omitempty"`
	DurationMs int64    `yaml:"duration_ms" json:"duration_ms"`
}

// FromResult builds a Summary from a compile result.
func FromResult(res *compiler.Result, outDir string, elapsed time.Duration) *Summary {
	return &Summary{
		Collection: res.CollectionName,
		BaseURL:    res.BaseURL,
		OutputDir:  outDir,
		Files:      res.Files,
		Folders:    res.Folders,
		Fallbacks:  res.Fallbacks,
		EnvValues:  len(res.Env),
		Warnings:   res.Warnings,
		DurationMs: elapsed.Milliseconds(),
	}
}

// Render serializes the summary for the given path: .json renders JSON,
// everything else YAML.
func Render(s *Summary, path string) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to render report: %w", err)
		}
		return append(data, '\n'), nil
	}
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return data, nil
}

// WriteFile renders the summary and writes it to path.
func WriteFile(fs fsio.FS, path string, s *Summary) error {
	data, err := Render(s, path)
	if err != nil {
		return err
	}
	if err := fs.WriteFile(path, data); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// PrintTable writes the human-readable summary through w.
func PrintTable(w *output.Writer, s *Summary) {
	w.SummaryHeader("Summary")
	w.SummaryItem("collection", displayName(s.Collection))
	w.SummaryItem("base URL", s.BaseURL)
	w.SummaryItem("output", s.OutputDir)
	w.SummaryItem("test files", fmt.Sprintf("%d", s.Files))
	w.SummaryItem("folders", fmt.Sprintf("%d", s.Folders))
	if s.Fallbacks > 0 {
		w.SummaryItem("fallback assertions", fmt.Sprintf("%d", s.Fallbacks))
	}
	if s.EnvValues > 0 {
		w.SummaryItem("environment values", fmt.Sprintf("%d", s.EnvValues))
	}
	if s.DurationMs > 0 {
		w.SummaryItem("duration", fmt.Sprintf("%dms", s.DurationMs))
	}
}

func displayName(name string) string {
	if name == "" {
		return "(unnamed)"
	}
	return name
}
