package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/zodiac-roster/internal/models"
	"github.com/ajitpratap0/zodiac-roster/pkg/civil"
)

func addCmd() *cobra.Command {
	var (
		first string
		last  string
		email string
		birth string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a person (the default New User when no flags are given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			r, err := openRoster(logger)
			if err != nil {
				return fmt.Errorf("add: %w", err)
			}

			flags := cmd.Flags()
			var p *models.Person
			if !flags.Changed("first") && !flags.Changed("last") && !flags.Changed("email") && !flags.Changed("birth") {
				p, err = r.AddPerson()
				if err != nil {
					return fmt.Errorf("add: %w", err)
				}
			} else {
				var birthDate *civil.Date
				if birth != "" {
					d, parseErr := civil.Parse(birth)
					if parseErr != nil {
						return fmt.Errorf("add: %w", &models.ValidationError{Field: models.FieldBirthDate, Value: birth, Err: models.ErrInvalidDate})
					}
					birthDate = &d
				}
				var emailPtr *string
				if email != "" {
					emailPtr = &email
				}
				p, err = r.NewPerson(first, last, emailPtr, birthDate)
				if err != nil {
					return fmt.Errorf("add: %w", err)
				}
				if err := r.Add(p); err != nil {
					return fmt.Errorf("add: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s, %s, born %s)\n",
				p, display(p, models.FieldSunSign), display(p, models.FieldChineseSign), display(p, models.FieldBirthDate))
			return nil
		},
	}

	cmd.Flags().StringVar(&first, "first", "", "first name")
	cmd.Flags().StringVar(&last, "last", "", "last name")
	cmd.Flags().StringVar(&email, "email", "", "email address (optional)")
	cmd.Flags().StringVar(&birth, "birth", "", "birth date (YYYY-MM-DD)")
	return cmd
}
