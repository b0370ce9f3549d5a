package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/course-ical/internal/calendar"
	"github.com/pfrederiksen/course-ical/internal/config"
	"github.com/pfrederiksen/course-ical/internal/logger"
	"github.com/pfrederiksen/course-ical/internal/scraper"
	"github.com/pfrederiksen/course-ical/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitSkipped = 2
)

// errSkipped marks a run that wrote a calendar but left out failed pages.
var errSkipped = errors.New("some pages were skipped")

type options struct {
	configPath  string
	outputDir   string
	timezone    string
	format      string
	concurrency int
	verbose     bool
	skipInvalid bool
	stdout      bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "course-ical [flags] <urls...>",
		Short: "Export Berkeley class schedule pages to an iCalendar file",
		Long: `A CLI tool to export classes from the Berkeley class schedule to your
calendar in iCal (.ics) format. Each URL must point at one class page; every
class becomes a weekly recurring event starting on its first meeting.`,
		Version:       "1.0.0",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.outputDir, "output", "o", "", "Output directory for the .ics file (default: current directory)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "", "TZID for event times (default: America/Los_Angeles)")
	cmd.Flags().StringVar(&opts.format, "format", string(FormatText), "Summary format: text or json")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "Maximum pages fetched at once")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.Flags().BoolVar(&opts.skipInvalid, "skip-invalid", false, "Skip pages that fail instead of aborting")
	cmd.Flags().BoolVar(&opts.stdout, "stdout", false, "Print the calendar to stdout instead of writing a file")

	return cmd
}

// loadConfig layers explicitly set flags over the config file and environment.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputDir = opts.outputDir
	}
	if cmd.Flags().Changed("timezone") {
		cfg.Timezone = opts.timezone
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = opts.concurrency
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts *options, urls []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}

	level := logger.LevelWarn
	if opts.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, os.Stderr))

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	// One malformed URL rejects the whole run.
	for _, u := range urls {
		if err := scraper.ValidateURL(u); err != nil {
			return err
		}
	}

	var store *storage.Storage
	if !opts.stdout {
		if store, err = storage.New(cfg.OutputDir); err != nil {
			return fmt.Errorf("initializing output: %w", err)
		}
	}

	if opts.verbose {
		fmt.Fprintf(stderr, "Fetching %d course page(s) with concurrency %d\n", len(urls), cfg.Concurrency)
	}

	sc := scraper.New(scraper.Options{
		UserAgent:   cfg.UserAgent,
		Timeout:     cfg.Timeout,
		Concurrency: cfg.Concurrency,
	})
	results, err := sc.FetchAll(cmd.Context(), urls, !opts.skipInvalid, func(done, total int, r scraper.Result) {
		fmt.Fprintf(stderr, "Progress [%d/%d] %s\n", done, total, r.URL)
	})
	if err != nil {
		return err
	}

	result := &OutputResult{GeneratedAt: time.Now().UTC()}
	events := make([]*calendar.Event, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			result.Skipped = append(result.Skipped, Failure{URL: r.URL, Error: r.Err.Error()})
			continue
		}
		evt := calendar.NewEvent(r.Record, cfg.Timezone)
		events = append(events, evt)

		summary, err := summarize(r.URL, evt)
		if err != nil {
			return err
		}
		result.Courses = append(result.Courses, summary)
	}
	result.CourseCount = len(result.Courses)

	if len(events) == 0 {
		return errors.New("no course could be extracted")
	}

	doc := calendar.GenerateCalendar(events)
	if n, err := calendar.Verify(doc); err != nil {
		return fmt.Errorf("generated calendar is invalid: %w", err)
	} else if n != len(events) {
		return fmt.Errorf("generated calendar holds %d events, want %d", n, len(events))
	}

	summaryOut := stdout
	if opts.stdout {
		fmt.Fprintln(stdout, doc)
		summaryOut = stderr
	} else {
		path, err := store.WriteCalendar(cfg.FilePrefix, doc, time.Now())
		if err != nil {
			return err
		}
		result.File = path
	}

	if err := WriteOutput(summaryOut, result, format, opts.verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	if opts.verbose {
		writeMetrics(stderr)
	}

	if len(result.Skipped) > 0 {
		return errSkipped
	}
	return nil
}

func writeMetrics(w io.Writer) {
	data, err := json.MarshalIndent(logger.GetMetricsSnapshot(), "", "  ")
	if err != nil {
		return
	}
	fmt.Fprintf(w, "Metrics: %s\n", data)
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := NewRootCmd().ExecuteContext(ctx)
	switch {
	case err == nil:
		return
	case errors.Is(err, errSkipped):
		stop()
		os.Exit(ExitSkipped)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(ExitError)
	}
}
