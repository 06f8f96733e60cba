package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/zodiac-roster/internal/roster"
	"github.com/ajitpratap0/zodiac-roster/internal/zodiac"
)

func statsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show roster statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			r, err := openRoster(logger)
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}
			stats := r.Stats()
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(stats); err != nil {
					return fmt.Errorf("stats: encoding JSON: %w", err)
				}
			case "text":
				printStats(out, stats)
			default:
				return fmt.Errorf("stats: unsupported format %q (want text or json)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	return cmd
}

func printStats(w io.Writer, s roster.Stats) {
	fmt.Fprintf(w, "People:          %d\n", s.Total)
	fmt.Fprintf(w, "Adults:          %d\n", s.Adults)
	fmt.Fprintf(w, "Minors:          %d\n", s.Minors)
	fmt.Fprintf(w, "Birthdays today: %d\n", s.BirthdaysToday)
	fmt.Fprintf(w, "Without email:   %d\n", s.MissingEmail)

	fmt.Fprintln(w, "\nBy sun sign:")
	for _, sign := range zodiac.Signs() {
		if n := s.BySunSign[string(sign)]; n > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", sign, n)
		}
	}
	fmt.Fprintln(w, "\nBy chinese sign:")
	for _, sign := range zodiac.ChineseSigns() {
		if n := s.ByChineseSign[string(sign)]; n > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", sign, n)
		}
	}
}
