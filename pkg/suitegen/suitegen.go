// Package suitegen provides public constants and an embedding entry
// point for external tools integrating with suitegen.
package suitegen

import (
	"github.com/suitegen/suitegen/internal/compiler"
	"github.com/suitegen/suitegen/internal/errors"
	"github.com/suitegen/suitegen/internal/fsio"
)

// Exit codes returned by the suitegen CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitRuntimeError indicates a runtime failure (unreadable input, etc.).
	ExitRuntimeError = 1

	// ExitValidationError indicates an invalid collection or environment document.
	ExitValidationError = 2

	// ExitEmissionError indicates a generated file could not be written.
	ExitEmissionError = 3
)

// Options controls a Compile run. The zero value matches the generate
// command's defaults.
type Options struct {
	// Flatten writes every test file directly into the output directory.
	Flatten bool
	// SkipSetup suppresses the shared setup module.
	SkipSetup bool
	// Enhanced emits timing capture and generic success assertions.
	Enhanced bool
	// Strict validates inputs against the JSON schemas before compiling.
	Strict bool
	// TimeBudgetMs is the enhanced-mode response time budget.
	TimeBudgetMs int
}

// GeneratedFile describes one emitted test file.
type GeneratedFile struct {
	Path     string
	Suite    string
	Fallback bool
}

// Result summarizes a completed Compile run.
type Result struct {
	CollectionName string
	Files          int
	Folders        int
	BaseURL        string
	Env            map[string]string
	Warnings       []string
	Generated      []GeneratedFile
	Fallbacks      int
}

// Compile turns a collection document into a test suite under outDir.
// environmentJSON may be nil. The returned error, if any, maps to an
// exit code via ExitCode.
func Compile(collectionJSON []byte, outDir string, environmentJSON []byte, opts Options) (*Result, error) {
	fs := fsio.Retry(fsio.OS{})
	res, err := compiler.New(fs, nil).Compile(collectionJSON, outDir, environmentJSON, compiler.Options{
		Flatten:      opts.Flatten,
		SkipSetup:    opts.SkipSetup,
		Enhanced:     opts.Enhanced,
		Strict:       opts.Strict,
		TimeBudgetMs: opts.TimeBudgetMs,
	})
	if err != nil {
		return nil, err
	}
	generated := make([]GeneratedFile, len(res.Generated))
	for i, f := range res.Generated {
		generated[i] = GeneratedFile{Path: f.Path, Suite: f.Suite, Fallback: f.Fallback}
	}
	return &Result{
		CollectionName: res.CollectionName,
		Files:          res.Files,
		Folders:        res.Folders,
		BaseURL:        res.BaseURL,
		Env:            res.Env,
		Warnings:       res.Warnings,
		Generated:      generated,
		Fallbacks:      res.Fallbacks,
	}, nil
}

// ExitCode maps an error returned by Compile to the exit code the CLI
// would report for it.
func ExitCode(err error) int {
	return errors.GetExitCode(err)
}
