package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/oussamac10/redirect-checker/internal/banner"
	"github.com/oussamac10/redirect-checker/internal/checker"
	"github.com/oussamac10/redirect-checker/internal/config"
	"github.com/oussamac10/redirect-checker/internal/httpclient"
	"github.com/oussamac10/redirect-checker/internal/input"
	"github.com/oussamac10/redirect-checker/internal/model"
	"github.com/oussamac10/redirect-checker/internal/report"
	"github.com/oussamac10/redirect-checker/internal/runner"
	"github.com/oussamac10/redirect-checker/internal/statuscolor"
)

type options struct {
	inputFile   string
	configFile  string
	timeout     time.Duration
	workers     int
	rateLimit   int
	userAgent   string
	cookie      string
	headers     []string
	proxy       string
	insecure    bool
	metaRefresh bool
	outputCSV   string
	outputJSONL string
	verbose     bool
	silent      bool
}

func main() {
	var opts options

	rootCmd := &cobra.Command{
		Use:   "redirectcheck",
		Short: "Verify that source URLs redirect to their expected targets",
		Long: "redirectcheck takes a CSV of source/target URL pairs and verifies that\n" +
			"each source's redirect chain ends at the expected target.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.silent {
				banner.PrintBanner()
			}
			return run(cmd, opts)
		},
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.inputFile, "file", "f", "", "Input CSV with source and target columns")
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML config file")
	flags.DurationVar(&opts.timeout, "timeout", config.DefaultTimeout, "Per-request timeout")
	flags.IntVarP(&opts.workers, "workers", "t", config.DefaultWorkers, "Concurrent checks")
	flags.IntVar(&opts.rateLimit, "rl", 0, "Global rate limit (requests per second, 0 = unlimited)")
	flags.StringVar(&opts.userAgent, "user-agent", "", "Custom User-Agent header")
	flags.StringVar(&opts.cookie, "cookie", "", "Cookie header")
	flags.StringArrayVarP(&opts.headers, "header", "H", nil, "Extra HTTP header (repeatable, \"Key: Value\")")
	flags.StringVar(&opts.proxy, "proxy", "", "HTTP(S) proxy URL")
	flags.BoolVar(&opts.insecure, "insecure", false, "Skip TLS verification")
	flags.BoolVar(&opts.metaRefresh, "meta-refresh", false, "Follow meta-refresh redirects on fallback GETs")
	flags.StringVar(&opts.outputCSV, "csv", "", "Write broken redirects to this CSV file")
	flags.StringVarP(&opts.outputJSONL, "output", "o", "", "Write all results to this JSONL file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print every result, not only broken ones")
	flags.BoolVar(&opts.silent, "silent", false, "Suppress banner and progress output")
	_ = rootCmd.MarkFlagRequired("file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "[-] Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, opts options) error {
	cfg, err := buildConfig(cmd, opts)
	if err != nil {
		return err
	}

	headerMap, err := toHeader(opts.headers)
	if err != nil {
		return err
	}

	var proxyFunc func(*http.Request) (*url.URL, error)
	if opts.proxy != "" {
		proxyURL, perr := url.Parse(opts.proxy)
		if perr != nil {
			return fmt.Errorf("invalid proxy URL: %w", perr)
		}
		proxyFunc = http.ProxyURL(proxyURL)
	}

	pairs, err := input.PairsFromFile(opts.inputFile)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return errors.New("no source-target pairs found in input")
	}

	client := httpclient.New(httpclient.Config{
		Timeout:   cfg.Timeout,
		Proxy:     proxyFunc,
		Headers:   headerMap,
		UserAgent: cfg.UserAgent,
		Cookie:    opts.cookie,
		Insecure:  cfg.Insecure,
	})
	chk := checker.New(client)
	chk.FollowMetaRefresh = cfg.FollowMetaRefresh

	runr, err := runner.New(runner.Config{Workers: cfg.Workers, RateLimit: cfg.RateLimit}, chk)
	if err != nil {
		return err
	}

	if opts.verbose {
		fmt.Fprintf(os.Stderr, "[config] pairs=%d workers=%d timeout=%s rate-limit=%d meta-refresh=%t\n",
			len(pairs), cfg.Workers, cfg.Timeout, cfg.RateLimit, cfg.FollowMetaRefresh)
	}
	fmt.Printf("Found %d source-target pairs. Checking redirects...\n", len(pairs))

	progress := make(chan model.Progress)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for ev := range progress {
			if opts.silent {
				continue
			}
			fmt.Printf("\rChecking... %d/%d (%d%%)", ev.Completed, ev.Total, ev.Percent)
		}
		if !opts.silent {
			fmt.Println()
		}
	}()

	results := runr.Run(context.Background(), pairs, progress)
	<-drained

	_, broken := report.Classify(results)
	summary := report.BuildSummary(results)

	printConsole(results, broken, summary, opts)

	if opts.outputCSV != "" {
		if err := writeCSVFile(opts.outputCSV, broken, opts.verbose); err != nil {
			return err
		}
	}
	if opts.outputJSONL != "" {
		if err := writeJSONLFile(opts.outputJSONL, results, opts.verbose); err != nil {
			return err
		}
	}
	return nil
}

// buildConfig loads the config file (when given) and overlays any flags the
// user set explicitly.
func buildConfig(cmd *cobra.Command, opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		loaded, err := config.Load(opts.configFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if flags.Changed("workers") {
		cfg.Workers = opts.workers
	}
	if flags.Changed("rl") {
		cfg.RateLimit = opts.rateLimit
	}
	if flags.Changed("user-agent") {
		cfg.UserAgent = opts.userAgent
	}
	if opts.insecure {
		cfg.Insecure = true
	}
	if opts.metaRefresh {
		cfg.FollowMetaRefresh = true
	}
	return cfg, cfg.Validate()
}

func toHeader(raw []string) (http.Header, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	h := http.Header{}
	for _, entry := range raw {
		key, value, ok := strings.Cut(entry, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid header %q (want \"Key: Value\")", entry)
		}
		h.Add(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return h, nil
}

func printConsole(results, broken []model.CheckResult, summary report.Summary, opts options) {
	if opts.verbose {
		for _, r := range results {
			fmt.Println(statuscolor.Line(r))
		}
	} else {
		for _, r := range broken {
			fmt.Println(statuscolor.Line(r))
		}
	}

	if summary.Broken() == 0 {
		fmt.Println(statuscolor.Wrap(
			fmt.Sprintf("All %d redirects resolve correctly.", summary.Total), model.StatusOK))
		return
	}
	fmt.Println(statuscolor.Wrap(
		fmt.Sprintf("%d of %d redirects broken (%d wrong destination, %d HTTP errors, %d transport errors)",
			summary.Broken(), summary.Total, summary.WrongDestination, summary.HTTPError, summary.TransportError),
		model.StatusWrongDestination))
}

func writeCSVFile(path string, broken []model.CheckResult, verbose bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output: %w", err)
	}
	defer f.Close()
	if err := report.WriteCSV(f, broken); err != nil {
		return fmt.Errorf("write csv output: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "[out] wrote %d broken redirects to %s\n", len(broken), path)
	}
	return nil
}

func writeJSONLFile(path string, results []model.CheckResult, verbose bool) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create jsonl output: %w", err)
	}
	defer f.Close()

	w := report.NewJSONLWriter(f)
	for _, r := range results {
		if err := w.Write(r); err != nil {
			return fmt.Errorf("write jsonl output: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("flush jsonl output: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "[out] wrote %d results to %s\n", len(results), path)
	}
	return nil
}
