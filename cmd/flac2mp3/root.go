package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"flac2mp3/internal/config"
	"flac2mp3/internal/convert"
	"flac2mp3/internal/deps"
	"flac2mp3/internal/model"
)

func newRootCommand() *cobra.Command {
	var (
		vbrFlag      bool
		cbrFlag      bool
		newDirFlag   bool
		targetFlag   string
		forceFlag    bool
		playlistFlag bool
		dryRunFlag   bool
		verboseFlag  bool
		flacBinFlag  string
		lameBinFlag  string
	)

	rootCmd := &cobra.Command{
		Use:           "flac2mp3 [flags] <path>",
		Short:         "Convert FLAC files to MP3 with lame, keeping tags and artwork",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := config.DefaultSettings()
			if vbrFlag {
				settings.Mode = model.ModeVBR
			}
			if cbrFlag {
				settings.Mode = model.ModeCBR
			}
			if newDirFlag || targetFlag != "" {
				settings.Placement = model.PlacementNewDir
			}
			settings.TargetParent = targetFlag
			settings.Force = forceFlag
			settings.CreatePlaylist = playlistFlag
			settings.DryRun = dryRunFlag
			settings.Verbose = verboseFlag
			if flacBinFlag != "" {
				settings.FlacBinary = flacBinFlag
			}
			if lameBinFlag != "" {
				settings.LameBinary = lameBinFlag
			}
			return run(cmd, settings, args[0])
		},
	}

	rootCmd.Flags().BoolVar(&vbrFlag, "vbr", false, "Encode with the V0 variable bitrate preset")
	rootCmd.Flags().BoolVar(&cbrFlag, "cbr", false, "Encode with a constant bitrate of 320 kbps")
	rootCmd.Flags().BoolVar(&newDirFlag, "new", false, "Write output into a new directory next to the source")
	rootCmd.Flags().StringVar(&targetFlag, "target", "", "Parent directory for the new output directory (implies --new)")
	rootCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Overwrite existing output MP3s")
	rootCmd.Flags().BoolVar(&playlistFlag, "playlist", false, "Write an M3U playlist after converting")
	rootCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Print the conversion plan without touching any files")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Print per-step detail")
	rootCmd.Flags().StringVar(&flacBinFlag, "flac-bin", "", "Path to the flac binary")
	rootCmd.Flags().StringVar(&lameBinFlag, "lame-bin", "", "Path to the lame binary")

	rootCmd.MarkFlagsOneRequired("vbr", "cbr")
	rootCmd.MarkFlagsMutuallyExclusive("vbr", "cbr")

	return rootCmd
}

func run(cmd *cobra.Command, settings *config.Settings, path string) error {
	ctx := cmd.Context()
	logger := newLogger(settings.Verbose)

	if !settings.DryRun {
		statuses := deps.CheckBinaries(deps.Converter(settings.FlacBinary, settings.LameBinary))
		if missing := deps.Missing(statuses); len(missing) > 0 {
			details := make([]string, 0, len(missing))
			for _, status := range missing {
				details = append(details, status.Detail)
			}
			return fmt.Errorf("missing required tools: %s", strings.Join(details, "; "))
		}
	}

	printer := &eventPrinter{out: cmd.OutOrStdout(), verbose: settings.Verbose}
	manager := convert.NewManager(settings, logger, printer.print)

	plan, err := manager.Plan(ctx, path)
	if err != nil {
		return err
	}

	if settings.DryRun {
		fmt.Fprint(cmd.OutOrStdout(), renderPlanSummary(plan, settings))
		return nil
	}

	var stopPolling func()
	if !settings.Verbose && isatty.IsTerminal(os.Stderr.Fd()) && plan.Actionable() > 0 {
		printer.bar = newProgressBar(plan.Actionable())
		stopPolling = watchProgress(manager, printer.bar)
	}

	runErr := manager.Run(ctx)

	if printer.bar != nil {
		stopPolling()
		if runErr == nil {
			_ = printer.bar.Finish()
		} else {
			_ = printer.bar.Exit()
		}
		printer.bar = nil
	}
	return runErr
}

// newLogger builds the diagnostic logger. Events carry the user-facing
// narrative; slog carries debug detail such as exact command lines, so the
// level stays at warn unless --verbose asks for more.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}))
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Converting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionClearOnFinish(),
	)
}

// watchProgress feeds the manager's completion counter into the bar until
// the returned stop function is called.
func watchProgress(manager *convert.Manager, bar *progressbar.ProgressBar) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(150 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				completed, _ := manager.GetProgress()
				_ = bar.Set(int(completed))
			}
		}
	}()
	return func() {
		close(done)
		completed, _ := manager.GetProgress()
		_ = bar.Set(int(completed))
	}
}
