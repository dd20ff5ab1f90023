package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suitegen/suitegen/internal/collection"
	"github.com/suitegen/suitegen/internal/compiler"
	"github.com/suitegen/suitegen/internal/errors"
	"github.com/suitegen/suitegen/internal/fsio"
	"github.com/suitegen/suitegen/internal/layout"
	"github.com/suitegen/suitegen/internal/schema"
)

func newValidateCmd() *cobra.Command {
	var (
		input   string
		envPath string
		strict  bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a collection without generating anything",
		Long: `Validate runs the same checks generate runs, reports every problem
found rather than stopping at the first, and writes no files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(input, envPath, strict)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "collection document to check")
	cmd.Flags().StringVarP(&envPath, "environment", "e", "", "environment document to check alongside")
	cmd.Flags().BoolVar(&strict, "strict", false, "check against the JSON schemas as well")

	return cmd
}

func runValidate(input, envPath string, strict bool) error {
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

	out.Action("Validating %s", input)

	if strict {
		if err := schema.ValidateCollection(collectionDoc); err != nil {
			out.ProblemList(schema.Problems(err))
			return errors.Structural("collection failed schema validation", nil)
		}
		if !collection.IsAbsent(envDoc) {
			if err := schema.ValidateEnvironment(envDoc); err != nil {
				out.ProblemList(schema.Problems(err))
				return errors.Environment("environment failed schema validation", nil)
			}
		}
	}

	rep := collection.Validate(collectionDoc)
	for _, w := range rep.Warnings {
		out.Warning("%s", w)
	}
	if !rep.Ok() {
		out.ProblemList(rep.Errors)
		if !strict {
			out.Hint("re-run with --strict to also check the JSON schemas")
		}
		return errors.Structural("collection is invalid", nil)
	}

	envRep := collection.ValidateEnvironment(envDoc)
	for _, w := range envRep.Warnings {
		out.Warning("%s", w)
	}
	if !envRep.Ok() {
		out.ProblemList(envRep.Errors)
		return errors.Environment("environment is invalid", nil)
	}

	if out.Verbose() {
		if col, perr := collection.Parse(collectionDoc); perr == nil {
			paths := []string{compiler.SetupFile}
			for _, ent := range layout.PlanTree(col.Nodes, layout.Options{}).Entries {
				paths = append(paths, ent.Path)
			}
			out.Section("Files generate would write")
			out.List(paths)
		}
	}

	out.ValidationSuccess("%s is valid", input)
	return nil
}
