package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"boothx/internal/browser"
	"boothx/internal/config"
	"boothx/internal/export"
	"boothx/internal/formatter"
	"boothx/internal/logging"
	"boothx/internal/sales"
	"boothx/internal/scraper"
	"boothx/internal/sites/booth"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

var (
	outputFormat string
	outputFile   string
	headers      []string
	waitFor      string
	waitTarget   string
	timeout      time.Duration
	site         string
	showUI       bool
	button       bool
	proxyURL     string
	userDataDir  string
	configPath   string
	logLevel     string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "boothx [URL | YYYY/M | FILE.html]",
		Short:   "Export BOOTH monthly sales orders as a bookkeeping spreadsheet",
		Version: version,
		Long: `boothx reads the order summary panels of a BOOTH seller sales page
(/sales/<year>/<month>) and writes them as an .xlsx workbook with one income
row and one fee row per order, ready for bookkeeping import.

The page can be fetched live through Chromium, read from an HTML file saved
from the browser, or exported interactively with an in-page button (--button).`,
		Example: `  # Export a saved sales page next to it
  boothx -o ./exports sales-2023-01.html

  # Fetch a month live using a logged-in browser profile
  boothx --user-data-dir ~/.boothx/profile 2023/1

  # Open a browser window with the export button and click it on each month
  boothx --button --user-data-dir ~/.boothx/profile 2023/1

  # Inspect the rows as markdown instead of writing a workbook
  boothx -f markdown sales-2023-01.html`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !button {
				cmd.Help()
				os.Exit(0)
			}
			return cobra.MaximumNArgs(1)(cmd, args)
		},
		RunE:         run,
		SilenceUsage: true,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&outputFormat, "format", "f", "", "Output format (xlsx, csv, json, markdown, text, html)")
	flags.StringVarP(&outputFile, "output", "o", "", "Output file or directory (format inferred from extension if -f not specified)")
	flags.StringSliceVarP(&headers, "header", "H", []string{}, "Extra request headers, e.g. \"Cookie: ...\" (can be used multiple times)")
	flags.StringVarP(&waitFor, "wait-for", "w", "load", "Wait strategy (load, element, time)")
	flags.StringVarP(&waitTarget, "wait-target", "T", "", "Wait target (selector for 'element' strategy, milliseconds for 'time' strategy)")
	flags.DurationVarP(&timeout, "timeout", "t", 30*time.Second, "Page load timeout")
	flags.StringVar(&site, "site", "booth", "Export mode: booth (every order panel) or booth.single (first panel only)")
	flags.BoolVar(&showUI, "showui", false, "Show browser UI (disable headless mode)")
	flags.BoolVar(&button, "button", false, "Open a browser window with an export button instead of exporting once")
	flags.StringVarP(&proxyURL, "proxy", "p", "", "Proxy URL (e.g. http://127.0.0.1:7890), defaults to BOOTHX_PROXY env var")
	flags.StringVar(&userDataDir, "user-data-dir", "", "Chromium profile directory holding the seller login")
	flags.StringVarP(&configPath, "config", "c", "", "YAML config file")
	flags.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	return rootCmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrEnv(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(cmd, cfg)

	logger, err := logging.New(cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// If output file is specified but format is not, infer format from file extension
	if outputFile != "" && !cmd.Flags().Changed("format") {
		if inferred := inferFormatFromExtension(outputFile); inferred != "" {
			cfg.Output.Format = inferred
		}
	}

	if err := validateFlags(cfg); err != nil {
		return err
	}

	target := ""
	if len(args) > 0 {
		target = resolveTarget(args[0], cfg.Site.BaseURL)
	}

	opts := scraper.Options{
		Headers:     parseHeaders(headers),
		WaitFor:     waitFor,
		WaitTarget:  waitTarget,
		Timeout:     cfg.Browser.Timeout,
		ShowUI:      !cfg.Browser.Headless,
		ProxyURL:    cfg.Browser.ProxyURL,
		UserDataDir: cfg.Browser.UserDataDir,
		Logger:      logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	notifier := export.StderrNotifier()

	if button {
		if target == "" {
			target = strings.TrimRight(cfg.Site.BaseURL, "/") + "/sales"
		}
		return runButton(ctx, target, opts, cfg, logger)
	}

	s, ok := scraper.Get(site)
	if !ok {
		return fmt.Errorf("unknown site: %s", site)
	}

	logger.Debug("scraping", zap.String("site", s.Name()), zap.String("target", target))
	content, err := s.Scrape(ctx, target, opts)
	if err != nil {
		if notice, ok := sales.Notice(err); ok {
			logger.Debug("nothing to export", zap.Error(err))
			notifier.Notify(notice)
			return nil
		}
		return fmt.Errorf("failed to scrape: %w", err)
	}

	data, err := formatter.Format(content, cfg.Output.Format)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if outputFile == "" && cfg.Output.Format != "xlsx" {
		fmt.Println(string(data))
		return nil
	}

	dir, name := outputLocation(outputFile, cfg.Output.Dir, content.Title(), cfg.Output.Format)
	saver := export.DiskSaver{Dir: dir}
	if err := saver.Save(data, name); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Output written to: %s\n", saver.Path(name))
	return nil
}

// runButton keeps a headed browser open and exports the current page on every button click.
func runButton(ctx context.Context, target string, opts scraper.Options, cfg *config.Config, logger *zap.Logger) error {
	b, err := browser.New(browser.Config{
		ProxyURL:    opts.ProxyURL,
		Headless:    false,
		UserDataDir: opts.UserDataDir,
	})
	if err != nil {
		return fmt.Errorf("failed to create browser: %w", err)
	}
	defer b.Close()

	saver := export.DiskSaver{Dir: cfg.Output.Dir}
	exporter := &export.Exporter{
		Writer: booth.DefaultWriter,
		Saver:  saver,
		Sheet:  sales.SheetName,
		Ext:    sales.WorkbookSuffix,
	}
	single := strings.EqualFold(site, "booth.single")

	fmt.Fprintf(os.Stderr, "Browser opened at %s; press Ctrl+C to quit\n", target)
	return booth.NewClient(b, logger).Serve(ctx, target, opts, func(p *booth.Page) (string, error) {
		content, err := booth.Collect(p, single, exporter.Writer)
		if err != nil {
			return "", err
		}
		name, err := exporter.Export(content.Rows(), content.Title())
		if err != nil {
			return "", err
		}
		path := saver.Path(name)
		logger.Info("workbook saved", zap.String("path", path), zap.Int("records", len(content.Records())))
		fmt.Fprintf(os.Stderr, "Output written to: %s\n", path)
		return "保存しました: " + path, nil
	})
}

// applyFlags lets explicitly set flags override the loaded configuration.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("format") {
		cfg.Output.Format = outputFormat
	}
	if changed("timeout") {
		cfg.Browser.Timeout = timeout
	}
	if changed("showui") {
		cfg.Browser.Headless = !showUI
	}
	if changed("proxy") {
		cfg.Browser.ProxyURL = proxyURL
	}
	if changed("user-data-dir") {
		cfg.Browser.UserDataDir = userDataDir
	}
	if changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = "xlsx"
	}
}

func validateFlags(cfg *config.Config) error {
	validFormats := map[string]bool{}
	for _, f := range formatter.Formats {
		validFormats[f] = true
	}
	if !validFormats[cfg.Output.Format] {
		return fmt.Errorf("invalid output format: %s", cfg.Output.Format)
	}

	validStrategies := map[string]bool{
		"load":    true,
		"element": true,
		"time":    true,
	}
	if !validStrategies[waitFor] {
		return fmt.Errorf("invalid wait strategy: %s", waitFor)
	}

	if waitFor == "element" && waitTarget == "" {
		return fmt.Errorf("--wait-target is required when using 'element' wait strategy")
	}

	if waitFor == "time" && waitTarget == "" {
		return fmt.Errorf("--wait-target is required when using 'time' wait strategy")
	}

	if cfg.Browser.Timeout <= 0 {
		return fmt.Errorf("--timeout must be positive")
	}

	if _, ok := scraper.Get(site); !ok {
		return fmt.Errorf("unknown site: %s (available: %s)", site, strings.Join(scraper.Names(), ", "))
	}

	return nil
}

// inferFormatFromExtension infers output format from file extension
func inferFormatFromExtension(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xlsx":
		return "xlsx"
	case ".md", ".markdown":
		return "markdown"
	case ".json":
		return "json"
	case ".html", ".htm":
		return "html"
	case ".txt":
		return "text"
	case ".csv":
		return "csv"
	default:
		return ""
	}
}

// outputLocation splits the destination into directory and file name. Without an explicit
// file name the page title plus the format's extension is used.
func outputLocation(output, defaultDir, title, format string) (dir, name string) {
	derived := title + formatter.Extension(format)
	if output == "" {
		return defaultDir, derived
	}
	if strings.HasSuffix(output, string(os.PathSeparator)) || strings.HasSuffix(output, "/") {
		return output, derived
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return output, derived
	}
	return filepath.Dir(output), filepath.Base(output)
}

// parseHeaders parses request header parameters
func parseHeaders(headerSlice []string) map[string]string {
	headersMap := make(map[string]string)
	for _, h := range headerSlice {
		parts := strings.SplitN(h, ":", 2)
		if len(parts) == 2 {
			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])
			if key != "" {
				headersMap[key] = value
			}
		}
	}
	return headersMap
}

var monthShorthandRe = regexp.MustCompile(`^(\d{4})/(\d{1,2})$`)

// resolveTarget turns the positional argument into a file path or a sales page URL.
// "2023/1" expands to <baseURL>/sales/2023/1.
func resolveTarget(arg, baseURL string) string {
	arg = strings.TrimSpace(arg)
	if booth.IsLocalFile(arg) {
		return arg
	}
	if m := monthShorthandRe.FindStringSubmatch(arg); m != nil {
		return strings.TrimRight(baseURL, "/") + "/sales/" + m[1] + "/" + m[2]
	}
	return normalizeURL(arg)
}

// normalizeURL adds https:// if no protocol prefix
func normalizeURL(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return rawURL
	}
	lower := strings.ToLower(rawURL)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		return "https://" + rawURL
	}
	return rawURL
}
