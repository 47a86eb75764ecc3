package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/rlol/internal/config"
	"github.com/pfrederiksen/rlol/internal/logger"
	"github.com/pfrederiksen/rlol/internal/site"
	"github.com/pfrederiksen/rlol/internal/source"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configPath string
	envFile    string
	format     string
	logLevel   string
	rankPolicy string
	today      string
	verbose    bool
}

// runtime is what a subcommand works with once flags are resolved.
type runtime struct {
	cfg     *config.Config
	format  OutputFormat
	log     *logger.Logger
	fetcher *source.Fetcher
	now     func() time.Time
	out     io.Writer
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "rlol",
		Short: "Fetch and present RLOL league data",
		Long: `A CLI tool for the RLOL league site.
Reads the league's published spreadsheet exports (teams, schedule, standings,
player stats) and prints them, builds the static site, serves a live preview,
or exports a workbook or calendar feed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file (.yaml, .yml or .toml)")
	pf.StringVar(&flags.envFile, "env-file", ".env", "Environment file loaded before the config")
	pf.StringVar(&flags.format, "format", "text", "Output format: text or json")
	pf.StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&flags.rankPolicy, "rank-policy", "", "Standings rank policy: wins, points or sheet")
	pf.StringVar(&flags.today, "today", "", "Treat this date (YYYY-MM-DD) as today")
	pf.BoolVar(&flags.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newHubCmd(flags),
		newTeamsCmd(flags),
		newScheduleCmd(flags),
		newStandingsCmd(flags),
		newStatsCmd(flags),
		newBuildCmd(flags),
		newServeCmd(flags),
		newExportCmd(flags),
		newCalendarCmd(flags),
		newParseCmd(flags),
	)

	return cmd
}

// setup loads configuration and wires the logger and fetcher.
func (f *rootFlags) setup(cmd *cobra.Command) (*runtime, error) {
	format, err := ParseFormat(f.format)
	if err != nil {
		return nil, err
	}

	if err := config.LoadEnvFile(f.envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.rankPolicy != "" {
		cfg.League.RankPolicy = f.rankPolicy
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	level, err := logger.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if f.verbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, cmd.ErrOrStderr())
	logger.SetDefault(log)

	now := time.Now
	if f.today != "" {
		day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(f.today), time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid --today %q: use YYYY-MM-DD", f.today)
		}
		// Noon keeps the league's local date the same in any zone.
		day = day.Add(12 * time.Hour)
		now = func() time.Time { return day }
	}

	log.Debug("Configuration loaded", logger.Fields{
		"config":      f.configPath,
		"rank_policy": cfg.League.RankPolicy,
		"format":      string(format),
	})

	return &runtime{
		cfg:     cfg,
		format:  format,
		log:     log,
		fetcher: source.New(cfg.HTTP, source.WithLogger(log)),
		now:     now,
		out:     cmd.OutOrStdout(),
	}, nil
}

func (r *runtime) loader(opts ...site.LoaderOption) *site.Loader {
	opts = append([]site.LoaderOption{site.WithNow(r.now)}, opts...)
	return site.NewLoader(r.fetcher, r.cfg, opts...)
}

// load fetches the sheets behind pages and logs fetch metrics when done.
func (r *runtime) load(ctx context.Context, pages []site.Page, opts ...site.LoaderOption) (*site.Data, error) {
	data, err := r.loader(opts...).Load(ctx, pages...)
	r.log.Debug("Fetch metrics", r.fetcher.Metrics().Snapshot().Fields())
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", pageNames(pages), err)
	}
	return data, nil
}

func pageNames(pages []site.Page) string {
	names := make([]string, len(pages))
	for i, p := range pages {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

func newHubCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "hub",
		Short: "Show the next match night and the top of the standings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			data, err := rt.load(cmd.Context(), []site.Page{site.PageHub})
			if err != nil {
				return err
			}
			return writeHub(rt.out, *data.Hub, rt.format)
		},
	}
}

func newTeamsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List teams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			data, err := rt.load(cmd.Context(), []site.Page{site.PageTeams})
			if err != nil {
				return err
			}
			return writeTeams(rt.out, data.Teams, rt.format)
		},
	}
}

// Execute runs the CLI
func Execute() {
	ctx := context.Background()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
