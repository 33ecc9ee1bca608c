// Package commands implements the dontsee CLI.
package commands

import (
	"github.com/spf13/cobra"

	"github.com/mecodix/dontsee/internal/logger"
	"github.com/mecodix/dontsee/pkg/config"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile  string
	logLevel string

	// cfg is loaded once before any command runs.
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dontsee",
	Short: "DontSee - hide short messages inside images",
	Long: `DontSee conceals a short secret text inside a raster image by perturbing
the least-significant bits of its color channels, and recovers it later.
Payloads are encrypted and authenticated (AES-256-GCM under a PBKDF2 key),
scattered across the carrier, and detectable by a 16-bit signature without
revealing their content.

Carriers must be lossless: output is always PNG, and recompressing a
carrier as JPEG destroys the payload.

Use "dontsee [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		return logger.Init(logger.Config{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
			Output: cfg.Logging.Output,
		})
	},
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo records the build metadata printed by `dontsee version`.
func SetVersionInfo(version, commit, date string) {
	Version, Commit, Date = version, commit, date
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/dontsee/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(concealCmd)
	rootCmd.AddCommand(revealCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(capacityCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// PrintErr prints an error message to stderr.
func PrintErr(format string, args ...any) {
	rootCmd.PrintErrf(format+"\n", args...)
}
