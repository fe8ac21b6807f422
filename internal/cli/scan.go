package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/fgaudit/internal/config"
	"github.com/vvka-141/fgaudit/internal/export"
	"github.com/vvka-141/fgaudit/internal/logging"
	"github.com/vvka-141/fgaudit/internal/report"
	"github.com/vvka-141/fgaudit/internal/scan"
	"github.com/vvka-141/fgaudit/pkg/fgaudit"
)

var scanCmd = &cobra.Command{
	Use:   "scan [roots...]",
	Short: "Audit one or more module directories",
	Long: `Scan walks each module directory, builds one record per regular file
(filesystem metadata, content line statistics, git status) and prints a
per-root summary with a preview of the first 20 records.

Roots are resolved in order from: command-line arguments, fgaudit.yaml,
the FGAUDIT_ROOTS environment variable (a .env file in the working
directory is honored), then the default '` + fgaudit.DefaultRoot + `'.

Invalid roots are skipped with a diagnostic; the scan fails only when no
supplied root is a valid directory.

Examples:
  # Scan the default module directory
  fgaudit scan

  # Scan two modules and write the combined table as Parquet
  fgaudit scan orders.4gm invoice.4gm -o audit.parquet

  # Skip repository-status resolution and noisy files
  fgaudit scan orders.4gm --no-git --exclude '**/*.log'`,
	Args: cobra.ArbitraryArgs,
	RunE: runScan,
}

type scanFlagValues struct {
	out       string
	noGit     bool
	excludes  []string
	configDir string
}

var scanFlags scanFlagValues

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&scanFlags.out, "out", "o", "",
		"Output filename; a .parquet or .pq suffix writes Parquet\n"+
			"(falls back to CSV on error), anything else writes CSV")
	scanCmd.Flags().BoolVar(&scanFlags.noGit, "no-git", false,
		"Disable repository-status resolution entirely")
	scanCmd.Flags().StringArrayVar(&scanFlags.excludes, "exclude", nil,
		"Glob pattern (doublestar) of files to skip, relative to each root;\n"+
			"may be repeated")
	scanCmd.Flags().StringVar(&scanFlags.configDir, "config", ".",
		"Directory containing fgaudit.yaml")
}

func runScan(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	settings, err := resolveScanSettings(args)
	if err != nil {
		return err
	}
	logger.Verbose("scanning %d root(s), no-git=%v", len(settings.roots), settings.noGit)

	scanner := scan.New(logger, scan.Options{
		NoGit:    settings.noGit,
		Excludes: settings.excludes,
	})
	logger.Verbose("scan id: %s", scanner.ScanID())

	printer := report.NewPrinter(os.Stdout)
	var results []fgaudit.ScanResult
	total := 0

	for _, root := range settings.roots {
		result, err := scanner.ScanRoot(root)
		if err != nil {
			logger.Error("root directory not found or not a directory: %s (%v)", root, err)
			continue
		}
		printer.RootSummary(result)
		results = append(results, result)
		total += len(result.Records)
	}

	if len(results) == 0 {
		return fmt.Errorf("no valid modules scanned: %w", fgaudit.ErrNoValidRoots)
	}

	if settings.out != "" {
		written, err := export.Write(settings.out, results, logger)
		if err != nil {
			return err
		}
		printer.Wrote(written)
	}

	printer.Total(total)
	return nil
}

// scanSettings is the flag/config/env layering result for one invocation.
type scanSettings struct {
	roots    []string
	out      string
	noGit    bool
	excludes []string
}

// resolveScanSettings layers configuration sources: flags and arguments
// override fgaudit.yaml, which overrides environment defaults.
func resolveScanSettings(args []string) (scanSettings, error) {
	_ = godotenv.Load()

	var cfg *config.ProjectConfig
	loaded, err := config.Load(scanFlags.configDir)
	switch {
	case err == nil:
		cfg = loaded
	case errors.Is(err, config.ErrConfigNotFound):
		cfg = &config.ProjectConfig{}
	default:
		return scanSettings{}, fmt.Errorf("failed to load %s: %v: %w",
			config.ConfigFileName, err, fgaudit.ErrInvalidConfig)
	}

	settings := scanSettings{
		roots:    args,
		out:      scanFlags.out,
		noGit:    scanFlags.noGit || cfg.NoGit,
		excludes: append(append([]string{}, scanFlags.excludes...), cfg.Exclude...),
	}

	if len(settings.roots) == 0 {
		settings.roots = cfg.Roots
	}
	if len(settings.roots) == 0 {
		settings.roots = config.RootsFromEnv()
	}
	if len(settings.roots) == 0 {
		settings.roots = []string{fgaudit.DefaultRoot}
	}

	if settings.out == "" {
		settings.out = cfg.Out
	}
	if settings.out == "" {
		settings.out = config.OutFromEnv()
	}

	return settings, nil
}
