package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "logview [flags] FILE [FILE ...]",
	Short: "Colorized viewer for CI log archives",
	Long: `Logview inspects downloaded CI log zip archives and prints a
colorized, filtered view of their contents plus a summary of matched
lines (errors, warnings, failures).

Each FILE is either a TOML configuration file or a log/zip file. A
configuration file switches the effective configuration for the files
after it.

Examples:
  logview logs_42.zip
  logview project.toml logs_42.zip
  logview --auto-locate-logfile project.toml
  logview --combined-summary logs_41.zip logs_42.zip`,
	Args:         cobra.MinimumNArgs(1),
	RunE:         runScan,
	SilenceUsage: true,
}

// Execute is called by main.main(). It runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "TOML config file applied before the FILE arguments")
	rootCmd.Flags().Bool("auto-locate-logfile", false, "locate the newest matching archive using the config criteria")
	rootCmd.Flags().Bool("combined-summary", false, "render one summary across all inputs instead of one per input")
	rootCmd.Flags().String("color", "auto", "colorize output (auto, always, never)")

	_ = viper.BindPFlag("color", rootCmd.Flags().Lookup("color"))
	_ = viper.BindPFlag("combined_summary", rootCmd.Flags().Lookup("combined-summary"))
}

func initConfig() {
	viper.SetEnvPrefix("LOGVIEW")
	viper.AutomaticEnv()

	viper.SetDefault("color", "auto")
	viper.SetDefault("combined_summary", false)
}
