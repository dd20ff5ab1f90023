// Package compiler drives a full run: validate the input documents,
// extract the shared base URL and environment, then emit the setup
// module and one test file per request.
//
// The driver is a linear state machine. A run moves
// Idle -> Validating -> Extracting -> Emitting -> Walking -> Done and
// enters Failed from whichever phase aborted. Every run starts from a
// fresh model; nothing carries over between invocations.
package compiler

import (
	"io"
	"path/filepath"

	"github.com/suitegen/suitegen/internal/collection"
	"github.com/suitegen/suitegen/internal/emit"
	"github.com/suitegen/suitegen/internal/errors"
	"github.com/suitegen/suitegen/internal/fsio"
	"github.com/suitegen/suitegen/internal/layout"
	"github.com/suitegen/suitegen/internal/output"
	"github.com/suitegen/suitegen/internal/schema"
	"github.com/suitegen/suitegen/internal/translate"
)

// SetupFile is the name of the shared module emitted at the output root.
const SetupFile = "setup.js"

// Phase identifies the driver's position in a run.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseExtracting
	PhaseEmitting
	PhaseWalking
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseExtracting:
		return "extracting"
	case PhaseEmitting:
		return "emitting"
	case PhaseWalking:
		return "walking"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options control one compile run.
type Options struct {
	// Flatten writes every test file directly into the output root.
	Flatten bool
	// SkipSetup suppresses the shared setup module. Generated files still
	// import it, so the caller owns providing a compatible one.
	SkipSetup bool
	// Enhanced selects the enhanced emission mode.
	Enhanced bool
	// Strict additionally validates both documents against the embedded
	// JSON schemas before the field checks.
	Strict bool
	// TimeBudgetMs overrides the enhanced-mode response time budget.
	TimeBudgetMs int
}

// GeneratedFile describes one emitted test file.
type GeneratedFile struct {
	Path  string
	Suite string
	// Fallback marks files carrying the default assertion instead of a
	// translated script.
	Fallback bool
}

// Result aggregates what one successful run produced.
type Result struct {
	CollectionName string
	Files          int // test files written, setup module excluded
	Folders        int // groups with children encountered in the walk
	BaseURL        string
	Env            map[string]string // nil when no environment document was given
	Warnings       []string
	// Generated lists every test file written, in emission order.
	Generated []GeneratedFile
	// Fallbacks counts requests whose non-empty script the translator
	// did not recognize, so the default assertion stands in.
	Fallbacks int
}

// Compiler runs the pipeline against a filesystem.
type Compiler struct {
	fs    fsio.FS
	log   *output.Writer
	phase Phase
}

// New builds a Compiler over the given filesystem. A nil log discards
// all progress output.
func New(fs fsio.FS, log *output.Writer) *Compiler {
	if log == nil {
		log = output.NewWithWriters(io.Discard, io.Discard, false)
	}
	return &Compiler{fs: fs, log: log, phase: PhaseIdle}
}

// Phase reports where the last run stopped.
func (c *Compiler) Phase() Phase { return c.phase }

func (c *Compiler) enter(p Phase) {
	c.phase = p
	c.log.PhaseHeader(p.String())
}

func (c *Compiler) fail(err *errors.SuitegenError) error {
	c.phase = PhaseFailed
	return err
}

// Compile validates collectionDoc (and envDoc, which may be nil) and
// writes the generated suite under outDir. On validation failure
// nothing is written; on a write failure everything already written
// stays in place.
func (c *Compiler) Compile(collectionDoc []byte, outDir string, envDoc []byte, opts Options) (*Result, error) {
	c.phase = PhaseIdle
	res := &Result{}

	c.enter(PhaseValidating)
	if opts.Strict {
		if err := schema.ValidateCollection(collectionDoc); err != nil {
			return nil, c.fail(errors.Structural("collection failed schema validation", schema.Problems(err)))
		}
		if !collection.IsAbsent(envDoc) {
			if err := schema.ValidateEnvironment(envDoc); err != nil {
				return nil, c.fail(errors.Environment("environment failed schema validation", schema.Problems(err)))
			}
		}
	}
	report := collection.Validate(collectionDoc)
	res.Warnings = append(res.Warnings, report.Warnings...)
	if !report.Ok() {
		return nil, c.fail(errors.Structural("collection is invalid", report.Errors))
	}
	envReport := collection.ValidateEnvironment(envDoc)
	res.Warnings = append(res.Warnings, envReport.Warnings...)
	if !envReport.Ok() {
		return nil, c.fail(errors.Environment("environment is invalid", envReport.Errors))
	}

	col, err := collection.Parse(collectionDoc)
	if err != nil {
		return nil, c.fail(errors.Structural("collection document is malformed", []string{err.Error()}))
	}
	env, err := collection.ParseEnvironment(envDoc)
	if err != nil {
		return nil, c.fail(errors.Environment("environment document is malformed", []string{err.Error()}))
	}
	res.CollectionName = col.Info.Name

	c.enter(PhaseExtracting)
	baseURL, found := BaseURL(col.Nodes)
	if !found {
		baseURL = PlaceholderBaseURL
		res.Warnings = append(res.Warnings, "no request URL could be parsed; using placeholder "+PlaceholderBaseURL)
	}
	res.BaseURL = baseURL
	res.Env = env.Map()
	c.log.Debug("base URL: %s", baseURL)
	if res.Env != nil {
		c.log.Debug("environment: %d values", len(res.Env))
	}

	c.enter(PhaseEmitting)
	if err := c.fs.EnsureDir(outDir); err != nil {
		return nil, c.fail(errors.WrapEmission(err, outDir, "failed to create output directory"))
	}
	if !opts.SkipSetup {
		src := emit.Setup(baseURL, res.Env)
		if err := c.fs.WriteFile(filepath.Join(outDir, SetupFile), []byte(src)); err != nil {
			return nil, c.fail(errors.WrapEmission(err, SetupFile, "failed to write setup module"))
		}
		c.log.FileCreated(SetupFile)
	}

	c.enter(PhaseWalking)
	plan := layout.PlanTree(col.Nodes, layout.Options{Flatten: opts.Flatten})
	res.Folders = plan.Folders
	res.Warnings = append(res.Warnings, plan.Warnings...)
	for _, dir := range plan.Dirs {
		if err := c.fs.EnsureDir(filepath.Join(outDir, filepath.FromSlash(dir))); err != nil {
			return nil, c.fail(errors.WrapEmission(err, dir, "failed to create directory"))
		}
	}
	emitOpts := emit.Options{Enhanced: opts.Enhanced, TimeBudgetMs: opts.TimeBudgetMs}
	for _, ent := range plan.Entries {
		tr := translate.Translate(ent.Request.Script)
		if tr.UsedFallback && ent.Request.Script != "" {
			res.Fallbacks++
		}
		src := emit.TestFile(ent.Request, ent, tr, emitOpts)
		if err := c.fs.WriteFile(filepath.Join(outDir, filepath.FromSlash(ent.Path)), []byte(src)); err != nil {
			return nil, c.fail(errors.WrapEmission(err, ent.Path, "failed to write test file"))
		}
		c.log.FileCreated(ent.Path)
		res.Generated = append(res.Generated, GeneratedFile{
			Path:     ent.Path,
			Suite:    emit.SuiteName(ent.Parent, ent.Request.Name),
			Fallback: tr.UsedFallback,
		})
		res.Files++
	}

	c.enter(PhaseDone)
	return res, nil
}
