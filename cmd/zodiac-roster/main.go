package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/zodiac-roster/internal/config"
	"github.com/ajitpratap0/zodiac-roster/internal/models"
	"github.com/ajitpratap0/zodiac-roster/internal/roster"
	"github.com/ajitpratap0/zodiac-roster/internal/store"
)

var (
	cfg     *config.Config
	cfgFile string
	version = "dev"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := newRootCmd()
	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "zodiac-roster",
		Short:   "A validated people roster with derived zodiac signs",
		Long:    "Keeps a roster of people with validated names, emails and birth dates, and derives age, adulthood, western sun sign, chinese zodiac sign and birthday-today from each birth date.",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.LoadFile(cfgFile)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.zodiac-roster/config.yaml)")

	rootCmd.AddCommand(
		listCmd(),
		addCmd(),
		deleteCmd(),
		setCmd(),
		signCmd(),
		statsCmd(),
		exportCmd(),
		mcpCmd(),
	)
	return rootCmd
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		switch strings.ToLower(cfg.Logging.Level) {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newStore() (*store.FileStore, error) {
	return store.NewFileStore(cfg.Store.Path, store.Format(cfg.Store.Format))
}

// openRoster loads the configured roster, generating it on first use.
func openRoster(logger *slog.Logger) (*roster.Roster, error) {
	st, err := newStore()
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	logger.Debug("opening roster", "path", st.Path(), "format", string(st.Format()))
	return roster.Open(st,
		roster.WithLogger(logger),
		roster.WithSeedSize(cfg.Roster.SeedSize),
		roster.WithRevalidateOnLoad(cfg.Roster.RevalidateOnLoad),
	)
}

// applyView sets the filter and sort used to number rows.
func applyView(r *roster.Roster, filter, sortKey string) error {
	r.SetFilter(filter)
	if err := r.SortBy(sortKey); err != nil {
		return fmt.Errorf("sorting by %q: %w", sortKey, err)
	}
	return nil
}

// rowAt resolves a 1-based row number in the current view.
func rowAt(r *roster.Roster, arg string) (*models.Person, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("row %q is not a number", arg)
	}
	view := r.View()
	if n < 1 || n > len(view) {
		return nil, fmt.Errorf("row %d out of range (1-%d)", n, len(view))
	}
	return view[n-1], nil
}

// viewFlags registers the --filter and --sort flags shared by row commands.
func viewFlags(cmd *cobra.Command, filter, sortKey *string) {
	cmd.Flags().StringVar(filter, "filter", "", "case-insensitive text matched against names, email and signs")
	cmd.Flags().StringVar(sortKey, "sort", "", "field to sort by (first_name, last_name, email, birth_date, is_adult, sun_sign, chinese_sign, is_birthday)")
}

func display(p *models.Person, f models.Field) string {
	v, ok := p.Lookup(f)
	if !ok {
		return "-"
	}
	return v
}
