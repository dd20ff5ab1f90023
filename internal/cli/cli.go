// Package cli provides command-line interface functionality for suitegen.
package cli

import (
	stderrors "errors"

	"github.com/suitegen/suitegen/internal/errors"
	"github.com/suitegen/suitegen/internal/output"
)

// out is the shared output writer for CLI commands.
var out = output.New()

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	root := NewRootCmd()
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		out.ErrorPrefix("%v", err)
		var serr *errors.SuitegenError
		if stderrors.As(err, &serr) && serr.Cause != nil {
			out.Errorln("  %v", serr.Cause)
		}
		return errors.GetExitCode(err)
	}
	return errors.ExitSuccess
}
