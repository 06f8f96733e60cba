package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/zodiac-roster/internal/models"
)

func setCmd() *cobra.Command {
	var (
		filter  string
		sortKey string
	)

	cmd := &cobra.Command{
		Use:   "set N FIELD VALUE",
		Short: "Edit one field of the person on row N",
		Long: `Edit first_name, last_name, email or birth_date of the person on row N.
Derived fields (is_adult, sun_sign, chinese_sign, is_birthday) follow the birth date.
An invalid value is rejected with a warning and the previous value is kept.
An empty VALUE clears the email.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			r, err := openRoster(logger)
			if err != nil {
				return fmt.Errorf("set: %w", err)
			}
			if err := applyView(r, filter, sortKey); err != nil {
				return fmt.Errorf("set: %w", err)
			}
			p, err := rowAt(r, args[0])
			if err != nil {
				return fmt.Errorf("set: %w", err)
			}

			if err := r.SetField(p, args[1], args[2]); err != nil {
				var verr *models.ValidationError
				if errors.As(err, &verr) {
					fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", verr)
				}
				return fmt.Errorf("set: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s: %s=%s (sun sign %s, chinese sign %s, adult %s)\n",
				p, args[1], args[2],
				display(p, models.FieldSunSign), display(p, models.FieldChineseSign), display(p, models.FieldIsAdult))
			return nil
		},
	}

	viewFlags(cmd, &filter, &sortKey)
	return cmd
}
