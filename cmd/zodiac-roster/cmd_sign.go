package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/zodiac-roster/internal/zodiac"
	"github.com/ajitpratap0/zodiac-roster/pkg/civil"
)

func signCmd() *cobra.Command {
	var asOf string

	cmd := &cobra.Command{
		Use:   "sign YYYY-MM-DD",
		Short: "Show age, adulthood, sun sign, chinese sign and birthday flag for a birth date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			birth, err := civil.Parse(args[0])
			if err != nil {
				return fmt.Errorf("sign: %w", err)
			}
			today := civil.DateOf(time.Now())
			if asOf != "" {
				today, err = civil.Parse(asOf)
				if err != nil {
					return fmt.Errorf("sign: --today: %w", err)
				}
			}
			if zodiac.IsFutureDate(birth, today) {
				return fmt.Errorf("sign: %s is after %s", birth, today)
			}

			prof := zodiac.Derive(birth, today)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Birth date:   %s\n", birth)
			fmt.Fprintf(out, "Age:          %d\n", prof.Age)
			fmt.Fprintf(out, "Adult:        %t\n", prof.IsAdult)
			fmt.Fprintf(out, "Sun sign:     %s\n", prof.SunSign)
			fmt.Fprintf(out, "Chinese sign: %s\n", prof.ChineseSign)
			fmt.Fprintf(out, "Birthday:     %t\n", prof.IsBirthday)
			return nil
		},
	}

	cmd.Flags().StringVar(&asOf, "today", "", "evaluate as of this date instead of today (YYYY-MM-DD)")
	return cmd
}
