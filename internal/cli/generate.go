package cli

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/suitegen/suitegen/internal/compiler"
	"github.com/suitegen/suitegen/internal/config"
	"github.com/suitegen/suitegen/internal/errors"
	"github.com/suitegen/suitegen/internal/fsio"
	"github.com/suitegen/suitegen/internal/report"
)

func newGenerateCmd() *cobra.Command {
	var (
		input      string
		outDir     string
		envPath    string
		flatten    bool
		enhanced   bool
		noSetup    bool
		strict     bool
		reportPath string
		timeBudget int
	)

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate a test suite from a collection",
		Long: `Generate compiles a collection document into one test file per
request plus a shared setup module. Without --input, and when run from a
terminal, collection files found under the working directory are offered
in a picker.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range []string{"input", "output", "environment", "flatten", "enhanced", "strict", "time-budget", "report"} {
				_ = viper.BindPFlag(name, cmd.Flags().Lookup(name))
			}

			cfg, err := config.FromViper(viper.GetViper())
			if err != nil {
				return errors.Wrap(err, "invalid configuration")
			}
			for _, w := range config.UnknownKeys(viper.GetViper()) {
				out.Warning("%s", w)
			}
			warnings, err := config.Validate(cfg)
			for _, w := range warnings {
				out.Warning("%s", w)
			}
			if err != nil {
				return errors.Wrap(err, "invalid configuration")
			}

			opts := compiler.Options{
				Flatten:      cfg.Flatten,
				SkipSetup:    noSetup,
				Enhanced:     cfg.Enhanced,
				Strict:       cfg.Strict,
				TimeBudgetMs: cfg.TimeBudget,
			}
			return runGenerate(cfg.Input, cfg.Output, cfg.Environment, cfg.Report, opts)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "collection document to compile")
	cmd.Flags().StringVarP(&outDir, "output", "o", config.DefaultOutput, "directory the suite is written to")
	cmd.Flags().StringVarP(&envPath, "environment", "e", "", "environment document baked into the setup module")
	cmd.Flags().BoolVar(&flatten, "flatten", false, "write all test files directly into the output directory")
	cmd.Flags().BoolVar(&enhanced, "enhanced", false, "emit timing capture and generic success assertions")
	cmd.Flags().BoolVar(&noSetup, "no-setup", false, "do not write the shared setup module")
	cmd.Flags().BoolVar(&strict, "strict", false, "validate inputs against the JSON schemas as well")
	cmd.Flags().StringVar(&reportPath, "report", "", "write a run summary to this file (.json or YAML)")
	cmd.Flags().IntVar(&timeBudget, "time-budget", 0, "enhanced-mode response time budget in milliseconds")

	return cmd
}

func runGenerate(input, outDir, envPath, reportPath string, opts compiler.Options) error {
	fs := fsio.Retry(fsio.OS{})

	input, err := resolveInput(input)
	if err != nil {
		return err
	}

	collectionDoc, err := fs.ReadFile(input)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to read collection %s", input))
	}

	var envDoc []byte
	if envPath != "" {
		envDoc, err = fs.ReadFile(envPath)
		if err != nil {
			return errors.Wrap(err, fmt.Sprintf("failed to read environment %s", envPath))
		}
	}

	out.Action("Compiling %s", input)
	started := time.Now()
	res, err := compiler.New(fs, out).Compile(collectionDoc, outDir, envDoc, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(started)

	for _, w := range res.Warnings {
		out.Warning("%s", w)
	}

	if out.Verbose() && len(res.Generated) > 0 {
		rows := make([][]string, 0, len(res.Generated))
		for _, f := range res.Generated {
			assertions := "script"
			if f.Fallback {
				assertions = "default"
			}
			rows = append(rows, []string{f.Path, f.Suite, assertions})
		}
		out.Section("Generated files")
		out.Table([]string{"FILE", "SUITE", "ASSERTIONS"}, rows)
	}

	summary := report.FromResult(res, outDir, elapsed)
	if summary.Collection == "" {
		summary.Collection = titleFromPath(input)
	}
	report.PrintTable(out, summary)

	if reportPath != "" {
		if err := report.WriteFile(fs, reportPath, summary); err != nil {
			return errors.Wrap(err, "failed to write report")
		}
		out.Info("report written to %s", reportPath)
	}

	out.Success("Generated %d test files in %s", res.Files, outDir)
	return nil
}

// resolveInput returns the collection path to compile: the explicit flag
// value when given, otherwise an interactive pick from files discovered
// under the working directory.
func resolveInput(input string) (string, error) {
	if input != "" {
		return input, nil
	}
	if !stdinIsTerminal() {
		return "", errors.New("no collection given; pass --input")
	}

	candidates, err := discoverCollections(".")
	if err != nil {
		return "", errors.Wrap(err, "failed to scan for collections")
	}
	if len(candidates) == 0 {
		return "", errors.New("no collection files found under the working directory; pass --input")
	}
	return pickCollection(candidates)
}

// titleFromPath derives a display name from a collection file name, for
// collections whose info block carries no name. Postman's export suffix
// is stripped first: user-service.postman_collection.json reads as
// "User Service".
func titleFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSuffix(base, ".postman_collection")
	base = strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(base)
	return cases.Title(language.English).String(base)
}
