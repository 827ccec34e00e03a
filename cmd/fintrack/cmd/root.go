package cmd

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rustyeddy/fintrack/config"
	"github.com/rustyeddy/fintrack/finance"
	"github.com/rustyeddy/fintrack/ledger"
	"github.com/rustyeddy/fintrack/portfolio"
	"github.com/rustyeddy/fintrack/quote"
	"github.com/rustyeddy/fintrack/report"
	"github.com/rustyeddy/fintrack/store"
)

var rootCmd = &cobra.Command{
	Use:   "fintrack",
	Short: "A personal finance ledger and stock portfolio tracker",
	Long: `Fintrack records income and expense transactions and simple equity
trades against a local SQLite ledger.

It provides tools for:
  - Recording, editing and deleting income/expense transactions
  - Deriving running balances and monthly summaries
  - Buying and selling stocks with weighted-average cost tracking
  - Valuing the portfolio against live market prices

Complete documentation is available at https://github.com/rustyeddy/fintrack`,
	SilenceUsage: true,
}

var (
	cfgFile  string
	dbPath   string
	username string
	verbose  bool
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the SQLite database (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&username, "user", "u", "", "account username")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// app bundles the opened store, engines and report writer for one
// command invocation.
type app struct {
	cfg       *config.Config
	store     *store.SQLite
	ledger    *ledger.Engine
	portfolio *portfolio.Engine
	report    *report.Writer
	log       zerolog.Logger
}

func openApp() (*app, error) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	cfg := config.Default()
	if cfgFile != "" {
		var err error
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, err
		}
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}

	s, err := store.Open(cfg.Database.Path, log)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		store:     s,
		ledger:    ledger.NewEngine(s),
		portfolio: portfolio.NewEngine(s, cfg.Market.Suffix),
		report:    report.NewWriter(cfg.Market.Currency),
		log:       log,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Error().Err(err).Msg("close store")
	}
}

// account resolves the --user flag to an account.
func (a *app) account(ctx context.Context) (finance.Account, error) {
	if username == "" {
		return finance.Account{}, fmt.Errorf("--user is required")
	}
	return a.store.AccountByUsername(ctx, username)
}

// quoteSource builds the live price source from the configuration.
func (a *app) quoteSource() quote.Source {
	timeout, err := a.cfg.Quote.ParseTimeout()
	if err != nil {
		timeout = 10 * time.Second
	}
	return quote.NewYahoo(a.cfg.Quote.Endpoint, timeout, a.log)
}

// promptPassword reads a secret from the terminal without echo.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	secret, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(secret), nil
}
