package cli

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/suitegen/suitegen/internal/config"
	"github.com/suitegen/suitegen/internal/errors"
	"github.com/suitegen/suitegen/internal/version"
)

// NewRootCmd builds the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	var (
		cfgFile string
		quiet   bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "suitegen",
		Short: "Compile Postman collections into supertest suites",
		Long: `suitegen reads a Postman collection and emits a runnable
mocha + chai + supertest test suite: one test file per request plus a
shared setup module that binds the base URL and environment.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if quiet && verbose {
				return errors.New("--quiet and --verbose are mutually exclusive")
			}
			out.SetQuiet(quiet)
			out.SetVerbose(verbose)
			loadDotenv()
			initConfig(cfgFile)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default .suitegen.yaml in the working directory)")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "minimal output (errors only)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "maximum detail")

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newUpgradeCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// loadDotenv loads a .env file when one exists; a missing file is fine.
func loadDotenv() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		out.Warning("failed to load .env file: %v", err)
	}
}

// initConfig wires viper to the optional .suitegen.yaml file and to
// SUITEGEN_* environment variables.
func initConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".suitegen")
	}

	viper.SetDefault("output", config.DefaultOutput)
	viper.SetEnvPrefix("SUITEGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// stdinIsTerminal reports whether stdin is attached to a terminal, which
// gates every interactive prompt.
func stdinIsTerminal() bool {
	if fi, _ := os.Stdin.Stat(); fi != nil {
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}
