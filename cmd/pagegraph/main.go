package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pagegraph"
	"github.com/fwojciec/pagegraph/analyze"
	"github.com/fwojciec/pagegraph/cache"
	"github.com/fwojciec/pagegraph/goquery"
	pghttp "github.com/fwojciec/pagegraph/http"
	"github.com/fwojciec/pagegraph/rod"
	pgslog "github.com/fwojciec/pagegraph/slog"
	"github.com/fwojciec/pagegraph/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database, opened when --db is set.
	DB *sqlite.DB

	// Provider overrides the --engine choice. Set before calling Run() for
	// end-to-end testing; Run does not close it.
	Provider pagegraph.Provider

	// Cache overrides the per-process in-memory cache.
	Cache pagegraph.AnalysisCache

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pagegraph"),
		kong.Description("Turn web pages into scored content graphs and bounded text extracts"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pagegraph --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	deps.Logger = newLogger(stderr, cli.Verbose)

	c := m.Cache
	if c == nil {
		c = cache.New()
	}
	deps.Cache = pgslog.NewLoggingCache(c, deps.Logger)

	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PAGEGRAPH_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		m.closers = append(m.closers, m.DB.Close)
		deps.Store = sqlite.NewDocumentStore(m.DB)
	}

	if needsProvider(kongCtx.Command()) {
		provider := m.Provider
		if provider == nil {
			if provider, err = openProvider(cli.Engine, cli.Timeout, deps.Logger); err != nil {
				if cli.Engine != EngineHTTP {
					fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --engine http")
				}
				return err
			}
			m.closers = append(m.closers, provider.Close)
		}

		deps.Analyzer = pgslog.NewLoggingAnalyzer(&analyze.Analyzer{
			Provider:    pgslog.NewLoggingProvider(provider, deps.Logger),
			Cache:       deps.Cache,
			Store:       deps.Store,
			Fingerprint: cli.Fingerprint,
		}, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// Engine names accepted by --engine.
const (
	EngineBrowser  = "browser"
	EngineRendered = "rendered"
	EngineHTTP     = "http"
)

func openProvider(engine string, timeout time.Duration, logger *slog.Logger) (pagegraph.Provider, error) {
	switch engine {
	case EngineBrowser:
		p, err := rod.NewProvider(rod.WithFetchTimeout(timeout))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return p, nil
	case EngineRendered:
		f, err := rod.NewFetcher(rod.WithFetchTimeout(timeout))
		if err != nil {
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		return goquery.NewProvider(pgslog.NewLoggingFetcher(f, logger)), nil
	case EngineHTTP:
		f := pghttp.NewFetcher(pghttp.WithTimeout(timeout))
		return goquery.NewProvider(pgslog.NewLoggingFetcher(f, logger)), nil
	default:
		return nil, pagegraph.Errorf(pagegraph.EINVALID, "unknown engine %q", engine)
	}
}

// needsProvider reports whether a kong command path analyses pages.
func needsProvider(command string) bool {
	name, _, _ := strings.Cut(command, " ")
	switch name {
	case "history", "forget":
		return false
	}
	return true
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
