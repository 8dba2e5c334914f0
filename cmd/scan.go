package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bailrook/logview/internal/archive"
	"github.com/bailrook/logview/internal/config"
	"github.com/bailrook/logview/internal/scan"
	"github.com/bailrook/logview/internal/style"
	"github.com/bailrook/logview/internal/summary"
)

// runScan walks the FILE arguments in order. A .toml argument switches
// the effective configuration for the arguments after it; anything else
// is scanned. Failures are scoped to the single input: a diagnostic is
// printed and processing continues, with a non-zero exit when any
// input failed.
func runScan(cmd *cobra.Command, args []string) error {
	autoLocate, _ := cmd.Flags().GetBool("auto-locate-logfile")
	combined := viper.GetBool("combined_summary")
	mode := style.ParseMode(viper.GetString("color"))

	out := cmd.OutOrStdout()
	colorize := style.Enabled(mode, out)
	if colorize {
		style.Force()
	}

	cfg := config.Default()
	job, err := scan.NewJob(cfg, out, colorize)
	if err != nil {
		return err
	}

	// attempted counts every input actually processed, including an
	// auto-located archive that never appeared on the command line.
	attempted := 0
	failed := 0
	fail := func(path string, err error) {
		fmt.Fprintf(cmd.ErrOrStderr(), "logview: %s: %v\n", path, err)
		failed++
	}

	applyConfig := func(path string) error {
		override, err := config.Load(path)
		if err != nil {
			return err
		}
		merged := config.Merge(config.Default(), override)
		next, err := scan.NewJob(merged, out, colorize)
		if err != nil {
			return err
		}
		cfg = merged
		job = next
		fmt.Fprintln(out, "read config from", path)
		return nil
	}

	if cfgFile != "" {
		if err := applyConfig(cfgFile); err != nil {
			return err
		}
	}

	var shared *summary.Accumulator
	if combined {
		shared = summary.New()
	}

	inputs := args
	if autoLocate {
		// With auto-locate, a leading .toml argument supplies the
		// search criteria.
		if strings.HasSuffix(inputs[0], ".toml") {
			attempted++
			if err := applyConfig(inputs[0]); err != nil {
				fail(inputs[0], err)
			}
			inputs = inputs[1:]
		}
		attempted++
		located, err := archive.Locate(cfg.LogFileDirectory, cfg.Archives, cfg.Repository, cfg.ContainsMember)
		if err != nil {
			fail(filepath.Join(cfg.LogFileDirectory, cfg.Archives), err)
		} else {
			fmt.Fprintln(out, "log file directory=", cfg.LogFileDirectory)
			if err := job.Scan(located, shared); err != nil {
				fail(located, err)
			}
		}
	}

	for _, path := range inputs {
		attempted++
		if strings.HasSuffix(path, ".toml") {
			if err := applyConfig(path); err != nil {
				fail(path, err)
			}
			continue
		}
		if err := job.Scan(path, shared); err != nil {
			fail(path, err)
		}
	}

	if shared != nil {
		fmt.Fprintln(out)
		job.RenderSummary(shared)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs failed", failed, attempted)
	}
	return nil
}
