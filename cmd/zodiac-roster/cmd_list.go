package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/zodiac-roster/internal/models"
)

func listCmd() *cobra.Command {
	var (
		filter  string
		sortKey string
		format  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List people in the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			r, err := openRoster(logger)
			if err != nil {
				return fmt.Errorf("list: %w", err)
			}
			if err := applyView(r, filter, sortKey); err != nil {
				return fmt.Errorf("list: %w", err)
			}
			view := r.View()
			out := cmd.OutOrStdout()

			switch format {
			case "json":
				rows := make([]models.Record, len(view))
				for i, p := range view {
					rows[i] = p.Record()
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(rows); err != nil {
					return fmt.Errorf("list: encoding JSON: %w", err)
				}
			case "table":
				if len(view) == 0 {
					fmt.Fprintln(out, "No people found.")
					return nil
				}
				if err := writeTable(out, view); err != nil {
					return fmt.Errorf("list: %w", err)
				}
				fmt.Fprintf(out, "\n%d of %d shown\n", len(view), r.Len())
			default:
				return fmt.Errorf("list: unsupported format %q (want table or json)", format)
			}
			return nil
		},
	}

	viewFlags(cmd, &filter, &sortKey)
	cmd.Flags().StringVar(&format, "format", "table", "output format: table or json")
	return cmd
}

func writeTable(w io.Writer, people []*models.Person) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tFIRST\tLAST\tEMAIL\tBIRTH DATE\tADULT\tSUN SIGN\tCHINESE SIGN\tBIRTHDAY")
	for i, p := range people {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			display(p, models.FieldFirstName),
			display(p, models.FieldLastName),
			display(p, models.FieldEmail),
			display(p, models.FieldBirthDate),
			display(p, models.FieldIsAdult),
			display(p, models.FieldSunSign),
			display(p, models.FieldChineseSign),
			display(p, models.FieldIsBirthday),
		)
	}
	return tw.Flush()
}
