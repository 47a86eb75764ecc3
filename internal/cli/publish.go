package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/rlol/internal/calendar"
	"github.com/pfrederiksen/rlol/internal/logger"
	"github.com/pfrederiksen/rlol/internal/server"
	"github.com/pfrederiksen/rlol/internal/site"
	"github.com/pfrederiksen/rlol/internal/tabular"
	"github.com/pfrederiksen/rlol/internal/workbook"
)

func newBuildCmd(flags *rootFlags) *cobra.Command {
	var (
		outDir  string
		from    string
		baseURL string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the static site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			src, err := site.ParseStatsSource(from)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = rt.cfg.Site.OutputDir
			}

			data, err := rt.load(cmd.Context(), site.Pages, site.WithStatsSource(src))
			if err != nil {
				return err
			}
			written, err := site.Build(outDir, data, calendarOptions(rt, baseURL))
			if err != nil {
				return err
			}

			if rt.format == FormatJSON {
				return writeJSON(rt.out, map[string]interface{}{"dir": outDir, "files": written})
			}
			for _, f := range written {
				fmt.Fprintf(rt.out, "wrote %s\n", f)
			}
			fmt.Fprintf(rt.out, "\nBuilt %d files in %s\n", len(written), outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (default from config site.output_dir)")
	cmd.Flags().StringVar(&from, "stats-source", "game", "Stats sheet: game or season")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Public site URL linked from calendar events")

	return cmd
}

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a live preview of the site",
		Long: `Serve a live preview of the site.
Every request re-fetches the sheets it needs, so edits to the spreadsheet
show up on reload.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				rt.cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(rt.cfg, rt.fetcher,
				server.WithLogger(rt.log),
				server.WithClock(rt.now),
			)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config server.addr)")

	return cmd
}

func newExportCmd(flags *rootFlags) *cobra.Command {
	var (
		outPath string
		from    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export standings, schedule and stats to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			src, err := site.ParseStatsSource(from)
			if err != nil {
				return err
			}
			pages := []site.Page{site.PageStandings, site.PageSchedule, site.PageStats}
			data, err := rt.load(cmd.Context(), pages, site.WithStatsSource(src))
			if err != nil {
				return err
			}
			if err := workbook.Save(outPath, data); err != nil {
				return err
			}
			fmt.Fprintf(rt.out, "wrote %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "rlol.xlsx", "Workbook path")
	cmd.Flags().StringVar(&from, "stats-source", "game", "Stats sheet: game or season")

	return cmd
}

func newCalendarCmd(flags *rootFlags) *cobra.Command {
	var (
		outPath string
		baseURL string
	)

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Write the schedule as an iCalendar feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := flags.setup(cmd)
			if err != nil {
				return err
			}
			data, err := rt.load(cmd.Context(), []site.Page{site.PageSchedule})
			if err != nil {
				return err
			}
			ics := calendar.GenerateICS(data.Schedule, calendarOptions(rt, baseURL))

			if outPath == "" || outPath == "-" {
				_, err := io.WriteString(rt.out, ics)
				return err
			}
			if err := os.WriteFile(outPath, []byte(ics), 0644); err != nil {
				return fmt.Errorf("writing calendar: %w", err)
			}
			rt.log.Info("Calendar written", logger.Fields{"path": outPath, "matches": len(data.Schedule)})
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Public site URL linked from calendar events")

	return cmd
}

func calendarOptions(rt *runtime, baseURL string) calendar.Options {
	opts := calendar.Options{
		Name:     rt.cfg.Site.Title,
		Now:      rt.now(),
		Location: rt.cfg.League.TimeLocation(),
	}
	if baseURL != "" {
		opts.URL = strings.TrimRight(baseURL, "/") + "/" + site.PageSchedule.Path()
	}
	return opts
}

func newParseCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file.csv|->",
		Short: "Decode a local CSV export and print its rows",
		Long: `Decode a local CSV export with the same tolerant decoder used for the
published sheets and print its rows. Use "-" to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := flags.setup(cmd)
			if err != nil {
				return err
			}

			var raw []byte
			if args[0] == "-" {
				raw, err = io.ReadAll(cmd.InOrStdin())
			} else {
				raw, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			table, err := tabular.Parse(string(raw))
			if err != nil {
				return fmt.Errorf("decoding %s: %w", args[0], err)
			}
			return writeTable(rt.out, table, rt.format)
		},
	}
}
