package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/finddups/finddups/pkg/config"
	"github.com/finddups/finddups/pkg/expression"
	"github.com/finddups/finddups/pkg/finder"
	"github.com/finddups/finddups/pkg/hasher"
	"github.com/finddups/finddups/pkg/logger"
	"github.com/finddups/finddups/pkg/reporter"
	"github.com/finddups/finddups/pkg/scanner"
)

func FindCommand() *cobra.Command {
	var (
		flagMinSize  int64
		flagMaxSize  int64
		flagSymlinks bool
		flagGlob     string
		flagFilters  []string
		flagWorkers  int
	)

	command := &cobra.Command{
		Use:   "find [flags] DIR...",
		Short: "Find duplicate files",
		Long: `Recurse into the given directories and find all the duplicate files,
files that have the same contents, but not necessarily the same filename.`,
		Example: `  finddups find ~/photos
  finddups find --glob '*.jpg' -v ~/photos /mnt/backup`,

		Args: cobra.MinimumNArgs(1),
	}

	command.Flags().Int64VarP(&flagMinSize, "min-size", "m", 1, "Ignore files smaller than this many bytes")
	command.Flags().Int64VarP(&flagMaxSize, "max-size", "M", 0, "Ignore files larger than this many bytes (0 = unbounded)")
	command.Flags().BoolVarP(&flagSymlinks, "symlinks", "s", false, "Follow and include symlinks")
	command.Flags().StringVarP(&flagGlob, "glob", "g", "*", "Limit matches to glob pattern")
	command.Flags().StringSliceVar(&flagFilters, "filter", nil, "Filter expression a file must match (repeatable)")
	command.Flags().IntVar(&flagWorkers, "workers", 0, "Hashing worker pool size (0 = auto)")

	command.RunE = func(cmd *cobra.Command, args []string) error {
		initCore()
		log := logger.GetLogger("find")

		cfg, err := config.Load(FlagConfigFile)
		if err != nil {
			log.WithError(err).Fatal("Failed loading configuration")
		}

		// explicit flags win over config file values
		if cmd.Flags().Changed("min-size") {
			cfg.MinSize = flagMinSize
		}
		if cmd.Flags().Changed("max-size") {
			cfg.MaxSize = flagMaxSize
		}
		if cmd.Flags().Changed("symlinks") {
			cfg.Symlinks = flagSymlinks
		}
		if cmd.Flags().Changed("glob") {
			cfg.Glob = flagGlob
		}
		if cmd.Flags().Changed("filter") {
			cfg.Filters = flagFilters
		}
		if cmd.Flags().Changed("workers") {
			cfg.Workers = flagWorkers
		}

		filters, err := expression.Compile(cfg.Filters)
		if err != nil {
			log.WithError(err).Fatal("Failed compiling filter expressions")
		}

		scan, err := scanner.New(cfg, filters)
		if err != nil {
			log.WithError(err).Fatal("Failed initializing scanner")
		}

		f := finder.New(scan, hasher.New(cfg.Workers), reporter.New(os.Stdout))

		if _, err := f.Find(cmd.Context(), args); err != nil {
			return err
		}

		return nil
	}

	return command
}
