package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/zodiac-roster/internal/models"
)

func exportCmd() *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all people to JSON or CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			r, err := openRoster(logger)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			people := r.All()

			var w io.Writer
			if output == "" || output == "-" {
				w = cmd.OutOrStdout()
			} else {
				f, createErr := os.Create(output)
				if createErr != nil {
					return fmt.Errorf("export: creating output file: %w", createErr)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			switch format {
			case "json":
				records := make([]models.Record, len(people))
				for i, p := range people {
					records[i] = p.Record()
				}
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if encErr := enc.Encode(records); encErr != nil {
					return fmt.Errorf("export: encoding JSON: %w", encErr)
				}
			case "csv":
				cw := csv.NewWriter(w)
				headers := make([]string, len(models.ValidFields))
				for i, f := range models.ValidFields {
					headers[i] = string(f)
				}
				if writeErr := cw.Write(headers); writeErr != nil {
					return fmt.Errorf("export: writing CSV header: %w", writeErr)
				}
				for _, p := range people {
					row := make([]string, len(models.ValidFields))
					for i, f := range models.ValidFields {
						row[i], _ = p.Lookup(f)
					}
					if writeErr := cw.Write(row); writeErr != nil {
						return fmt.Errorf("export: writing CSV row: %w", writeErr)
					}
				}
				cw.Flush()
				if flushErr := cw.Error(); flushErr != nil {
					return fmt.Errorf("export: flushing CSV: %w", flushErr)
				}
			default:
				return fmt.Errorf("export: unsupported format %q (want json or csv)", format)
			}

			if output != "" && output != "-" {
				logger.Info("export complete", "count", len(people), "path", output)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "json", "output format: json or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
