package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tomtejakt"
	"github.com/fwojciec/tomtejakt/gemini"
	tjhttp "github.com/fwojciec/tomtejakt/http"
	tjslog "github.com/fwojciec/tomtejakt/slog"
	"github.com/fwojciec/tomtejakt/sqlite"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ListingService tomtejakt.ListingService
	ScrapeLog      tomtejakt.ScrapeLogService

	// Fetcher override for end-to-end testing. When nil, scrape builds
	// the real HTTP fetcher.
	Fetcher tomtejakt.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
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
		kong.Name("tomtejakt"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tomtejakt --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Global flags may precede the command, so the command name comes
	// from the parsed context rather than the raw arguments.
	var cmd string
	if node := kongCtx.Selected(); node != nil {
		cmd = node.Name
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set TOMTEJAKT_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
		Level: logLevel(cli.Verbose),
	}))

	m.ListingService = sqlite.NewListingService(m.DB)
	m.ScrapeLog = sqlite.NewScrapeLogService(m.DB)
	deps.DB = m.DB
	deps.Listings = tjslog.NewLoggingListingService(m.ListingService, logger)
	deps.Log = m.ScrapeLog

	if cmd == "scrape" {
		fetcher := m.Fetcher
		if fetcher == nil {
			fetcher = tjhttp.NewFetcher()
		}
		defer fetcher.Close()
		deps.Fetcher = tjslog.NewLoggingFetcher(fetcher, logger)
	}

	if cmd == "search" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		deps.Translator = gemini.NewTranslator(client)
	}

	return kongCtx.Run(deps)
}

func logLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelInfo
	}
	return slog.LevelWarn
}

func defaultDBPath() string {
	if path := os.Getenv("TOMTEJAKT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "tomtejakt.db"
	}
	dir := filepath.Join(home, ".tomtejakt")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "tomtejakt.db")
}
