package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/charmbracelet/huh"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"

	"github.com/suitegen/suitegen/internal/errors"
	"github.com/suitegen/suitegen/internal/version"
)

// releaseRepo is the GitHub repository upgrade checks against.
const releaseRepo = "suitegen/suitegen"

func newUpgradeCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Upgrade suitegen to the latest release",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpgrade(yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "upgrade without asking")

	return cmd
}

func runUpgrade(yes bool) error {
	if !version.IsRelease() {
		out.Info("development build; upgrade is not supported")
		return nil
	}

	latest, found, err := selfupdate.DetectLatest(releaseRepo)
	if err != nil {
		return errors.Wrap(err, "failed to check for releases")
	}

	current, err := semver.Parse(strings.TrimPrefix(version.Version, "v"))
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("cannot parse current version %q", version.Version))
	}

	if !found || latest.Version.LTE(current) {
		out.Success("suitegen %s is up to date", version.Version)
		return nil
	}

	out.Info("new release available: %s", latest.Version)
	if !yes {
		confirmed := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Upgrade to %s?", latest.Version)).
			Value(&confirmed).
			Run()
		if err != nil {
			return errors.Wrap(err, "upgrade aborted")
		}
		if !confirmed {
			return nil
		}
	}

	exe, err := os.Executable()
	if err != nil {
		return errors.Wrap(err, "could not locate the running executable")
	}
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return errors.Wrap(err, "failed to apply the update")
	}

	out.Success("upgraded to %s", latest.Version)
	return nil
}
