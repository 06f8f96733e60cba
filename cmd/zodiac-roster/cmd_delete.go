package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	var (
		filter  string
		sortKey string
	)

	cmd := &cobra.Command{
		Use:   "delete N",
		Short: "Delete the person on row N of the (filtered, sorted) list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			r, err := openRoster(logger)
			if err != nil {
				return fmt.Errorf("delete: %w", err)
			}
			if err := applyView(r, filter, sortKey); err != nil {
				return fmt.Errorf("delete: %w", err)
			}
			p, err := rowAt(r, args[0])
			if err != nil {
				return fmt.Errorf("delete: %w", err)
			}
			if err := r.Select(p); err != nil {
				return fmt.Errorf("delete: %w", err)
			}
			if err := r.DeleteSelected(); err != nil {
				return fmt.Errorf("delete: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", p)
			return nil
		},
	}

	viewFlags(cmd, &filter, &sortKey)
	return cmd
}
